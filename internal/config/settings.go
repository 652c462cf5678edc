package config

import (
	"fmt"
	"time"
)

// SettingsConfig holds general application settings.
type SettingsConfig struct {
	InternalMetrics InternalMetricsConfig
	Monitor         MonitorConfig
}

// InternalMetricsConfig controls the agent's self-monitoring metrics.
type InternalMetricsConfig struct {
	Enabled bool
}

// MonitorConfig controls the process resource monitor.
type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Validate applies defaults and validates settings configuration.
func (s *SettingsConfig) Validate() error {
	if s.Monitor.Interval == 0 {
		s.Monitor.Interval = DefaultMonitorInterval
	}
	if s.Monitor.Interval < 0 {
		return fmt.Errorf("monitor interval must be positive")
	}
	return nil
}
