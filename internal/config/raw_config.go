package config

import "time"

// RawConfig represents unparsed YAML structure
type RawConfig struct {
	Export   RawExportConfig   `yaml:"export"`
	Workload RawWorkloadConfig `yaml:"workload"`
	Settings RawSettingsConfig `yaml:"settings"`
}

// RawWorkloadConfig holds the simulated metrics driven by the generator
type RawWorkloadConfig struct {
	Interval time.Duration     `yaml:"interval,omitempty"`
	Metrics  []RawMetricConfig `yaml:"metrics,omitempty"`
}
