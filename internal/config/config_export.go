package config

import (
	"fmt"
	"time"
)

// ExportConfig defines how metrics are exposed.
type ExportConfig struct {
	OpenMetrics *OpenMetricsExportConfig
	Prometheus  *PrometheusExportConfig
	OTEL        *OTELExportConfig
	File        *FileExportConfig
}

// Validate applies defaults and validates export configuration.
func (e *ExportConfig) Validate() error {
	// Default to the native endpoint if no exporters configured
	if e.OpenMetrics == nil && e.Prometheus == nil && e.OTEL == nil && e.File == nil {
		e.OpenMetrics = &OpenMetricsExportConfig{
			Enabled: true,
			Port:    DefaultOpenMetricsPort,
			Path:    DefaultOpenMetricsPath,
		}
		return nil
	}

	// Validate individual exporters
	if e.OpenMetrics != nil {
		if err := e.OpenMetrics.Validate(); err != nil {
			return err
		}
	}
	if e.Prometheus != nil {
		if err := e.Prometheus.Validate(); err != nil {
			return err
		}
	}
	if e.OTEL != nil {
		if err := e.OTEL.Validate(); err != nil {
			return err
		}
	}
	if e.File != nil {
		if err := e.File.Validate(); err != nil {
			return err
		}
	}

	// Verify at least one exporter enabled
	if !e.OpenMetricsEnabled() && !e.PrometheusEnabled() && !e.OTELEnabled() && !e.FileEnabled() {
		return fmt.Errorf("at least one exporter must be enabled")
	}

	// Pull endpoints cannot share a port
	if e.OpenMetricsEnabled() && e.PrometheusEnabled() && e.OpenMetrics.Port == e.Prometheus.Port {
		return fmt.Errorf("openmetrics and prometheus exporters cannot share port %d", e.OpenMetrics.Port)
	}

	return nil
}

// OpenMetricsEnabled reports whether the native endpoint is enabled.
func (e *ExportConfig) OpenMetricsEnabled() bool {
	return e.OpenMetrics != nil && e.OpenMetrics.Enabled
}

// PrometheusEnabled reports whether the Prometheus exporter is enabled.
func (e *ExportConfig) PrometheusEnabled() bool {
	return e.Prometheus != nil && e.Prometheus.Enabled
}

// OTELEnabled reports whether the OTEL exporter is enabled.
func (e *ExportConfig) OTELEnabled() bool {
	return e.OTEL != nil && e.OTEL.Enabled
}

// FileEnabled reports whether the file sink is enabled.
func (e *ExportConfig) FileEnabled() bool {
	return e.File != nil && e.File.Enabled
}

// OpenMetricsExportConfig defines the native OpenMetrics endpoint.
type OpenMetricsExportConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// Validate applies defaults and validates OpenMetrics configuration.
func (c *OpenMetricsExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Port == 0 {
		c.Port = DefaultOpenMetricsPort
	}
	if c.Path == "" {
		c.Path = DefaultOpenMetricsPath
	}
	return validateEndpoint("openmetrics", c.Port, c.Path)
}

// PrometheusExportConfig defines Prometheus pull endpoint settings.
type PrometheusExportConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// Validate applies defaults and validates Prometheus configuration.
func (c *PrometheusExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Port == 0 {
		c.Port = DefaultPrometheusPort
	}
	if c.Path == "" {
		c.Path = DefaultPrometheusPath
	}
	return validateEndpoint("prometheus", c.Port, c.Path)
}

func validateEndpoint(name string, port int, path string) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid %s port: %d", name, port)
	}
	if path[0] != '/' {
		return fmt.Errorf("invalid %s path: %q (must start with /)", name, path)
	}
	return nil
}

// OTELExportConfig defines OTEL push settings.
type OTELExportConfig struct {
	Enabled   bool
	Transport string
	Host      string
	Port      int
	Interval  time.Duration
	Resource  map[string]string
	Headers   map[string]string
}

// Validate applies defaults and validates OTEL configuration.
func (c *OTELExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	// Apply transport default
	if c.Transport == "" {
		c.Transport = DefaultOTELTransport
	}

	// Validate transport
	if c.Transport != "grpc" && c.Transport != "http" {
		return fmt.Errorf("invalid transport: %s (must be grpc or http)", c.Transport)
	}

	// Apply host default
	if c.Host == "" {
		c.Host = DefaultOTELHost
	}

	// Apply port default based on transport
	if c.Port == 0 {
		if c.Transport == "grpc" {
			c.Port = DefaultOTELPortGRPC
		} else {
			c.Port = DefaultOTELPortHTTP
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid otel port: %d", c.Port)
	}

	// Apply interval default
	if c.Interval == 0 {
		c.Interval = DefaultOTELPushInterval
	}
	if c.Interval < 0 {
		return fmt.Errorf("otel interval must be positive")
	}

	// Apply resource defaults
	if c.Resource == nil {
		c.Resource = make(map[string]string)
	}
	if _, exists := c.Resource["service.name"]; !exists {
		c.Resource["service.name"] = DefaultServiceName
	}
	if _, exists := c.Resource["service.version"]; !exists {
		c.Resource["service.version"] = DefaultServiceVersion
	}

	return nil
}

// GetEndpoint returns the full endpoint address.
func (c *OTELExportConfig) GetEndpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FileExportConfig defines the periodic file sink. Path "-" writes to
// standard output.
type FileExportConfig struct {
	Enabled  bool
	Path     string
	Interval time.Duration
}

// Validate applies defaults and validates file sink configuration.
func (c *FileExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Path == "" {
		return fmt.Errorf("file exporter path cannot be empty")
	}
	if c.Interval == 0 {
		c.Interval = DefaultFileInterval
	}
	if c.Interval < 0 {
		return fmt.Errorf("file exporter interval must be positive")
	}
	return nil
}
