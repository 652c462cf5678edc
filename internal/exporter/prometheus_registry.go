package exporter

import (
	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// createPrometheusRegistry creates and populates a Prometheus registry.
func createPrometheusRegistry(registry *metric.Registry, runtimeMetrics bool) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Create and register collector
	promRegistry.MustRegister(newCollector(registry))

	if runtimeMetrics {
		promRegistry.MustRegister(collectors.NewGoCollector())
	}

	return promRegistry
}
