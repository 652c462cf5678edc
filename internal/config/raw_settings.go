package config

import "time"

// RawSettingsConfig holds general application settings
type RawSettingsConfig struct {
	InternalMetrics RawInternalMetricsConfig `yaml:"internal_metrics"`
	Monitor         RawMonitorConfig         `yaml:"monitor"`
}

// RawInternalMetricsConfig controls the agent's self-monitoring metrics
type RawInternalMetricsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// RawMonitorConfig controls the process resource monitor
type RawMonitorConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval,omitempty"`
}
