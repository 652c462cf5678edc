package config

import "time"

// RawExportConfig defines how metrics are exposed
type RawExportConfig struct {
	OpenMetrics *RawOpenMetricsExportConfig `yaml:"openmetrics,omitempty"`
	Prometheus  *RawPrometheusExportConfig  `yaml:"prometheus,omitempty"`
	OTEL        *RawOTELExportConfig        `yaml:"otel,omitempty"`
	File        *RawFileExportConfig        `yaml:"file,omitempty"`
}

// RawOpenMetricsExportConfig defines the native OpenMetrics endpoint
type RawOpenMetricsExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// RawPrometheusExportConfig defines Prometheus pull endpoint settings
type RawPrometheusExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// RawOTELExportConfig defines OTEL push settings
type RawOTELExportConfig struct {
	Enabled   bool              `yaml:"enabled"`
	Transport string            `yaml:"transport"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	Interval  time.Duration     `yaml:"interval"`
	Resource  map[string]string `yaml:"resource,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
}

// RawFileExportConfig defines the periodic file sink
type RawFileExportConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Path     string        `yaml:"path"`
	Interval time.Duration `yaml:"interval"`
}
