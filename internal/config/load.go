package config

import (
	"fmt"
)

// Load reads and resolves a YAML configuration file
func Load(path string) (*Config, error) {
	raw, err := Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return resolveLoaded(raw)
}

// LoadBytes parses and resolves YAML configuration data
func LoadBytes(data []byte) (*Config, error) {
	raw, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return resolveLoaded(raw)
}

func resolveLoaded(raw *RawConfig) (*Config, error) {
	cfg, err := Resolve(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config: %w", err)
	}
	return cfg, nil
}
