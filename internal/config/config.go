package config

import "time"

const (
	// OpenMetrics defaults
	DefaultOpenMetricsPort = 9464
	DefaultOpenMetricsPath = "/metrics"

	// Prometheus defaults
	DefaultPrometheusPort = 9090
	DefaultPrometheusPath = "/metrics"

	// OTEL defaults
	DefaultOTELPushInterval = 10 * time.Second
	DefaultOTELTransport    = "grpc"
	DefaultOTELHost         = "localhost"
	DefaultOTELPortGRPC     = 4317
	DefaultOTELPortHTTP     = 4318
	DefaultServiceName      = "fixedmetrics"
	DefaultServiceVersion   = "dev"

	// File sink defaults
	DefaultFileInterval = 15 * time.Second

	// Workload and monitor defaults
	DefaultWorkloadInterval = 1 * time.Second
	DefaultMonitorInterval  = 5 * time.Second

	// ReservedMetricPrefix names the agent's own metrics
	ReservedMetricPrefix = "fixedmetrics_"
)

// Config holds the complete resolved application configuration.
type Config struct {
	Export   ExportConfig
	Workload WorkloadConfig
	Settings SettingsConfig
}

// WorkloadConfig defines the simulated metrics and how often they change.
type WorkloadConfig struct {
	Interval time.Duration
	Metrics  []MetricConfig
}
