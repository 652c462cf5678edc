package config

// RawSourceConfig describes the simulated source behind a workload metric
type RawSourceConfig struct {
	Type *string `yaml:"type,omitempty"`
	Min  *int    `yaml:"min,omitempty"`
	Max  *int    `yaml:"max,omitempty"`
}
