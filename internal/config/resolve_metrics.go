package config

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"
)

// resolveWorkload resolves the workload section
func (r *Resolver) resolveWorkload() (WorkloadConfig, error) {
	result := WorkloadConfig{Interval: r.raw.Workload.Interval}
	if result.Interval == 0 {
		result.Interval = DefaultWorkloadInterval
	}
	if result.Interval < 0 {
		return WorkloadConfig{}, fmt.Errorf("workload interval must be positive")
	}

	metrics, err := r.resolveMetrics()
	if err != nil {
		return WorkloadConfig{}, err
	}
	result.Metrics = metrics
	return result, nil
}

// resolveMetrics resolves final metrics from raw config
func (r *Resolver) resolveMetrics() ([]MetricConfig, error) {
	var metrics []MetricConfig

	slog.Debug("resolving metrics", "count", len(r.raw.Workload.Metrics))

	for i := range r.raw.Workload.Metrics {
		raw := &r.raw.Workload.Metrics[i]
		ctx := resolveContext{}.push("metric", raw.Name)

		if err := r.registerName(raw.Name, i); err != nil {
			return nil, err
		}

		metric, err := r.resolveMetric(raw, ctx)
		if err != nil {
			return nil, err
		}

		metrics = append(metrics, metric)
		slog.Debug("resolved metric", "metric", metric)
	}

	return metrics, nil
}

// resolveMetric resolves a single metric
func (r *Resolver) resolveMetric(raw *RawMetricConfig, ctx resolveContext) (MetricConfig, error) {
	result := MetricConfig{
		Name: raw.Name,
		Type: MetricType(raw.Type),
		Help: raw.Help,
		Unit: raw.Unit,
	}

	if !IsValidMetricName(result.Name) {
		return MetricConfig{}, ctx.error("invalid metric name")
	}
	if strings.HasPrefix(result.Name, ReservedMetricPrefix) {
		return MetricConfig{}, ctx.error(fmt.Sprintf("metric name prefix %q is reserved for internal metrics", ReservedMetricPrefix))
	}
	if result.Unit != "" && !strings.HasSuffix(result.Name, "_"+result.Unit) {
		return MetricConfig{}, ctx.error(fmt.Sprintf("unit %q must be a suffix of the metric name (%s_%s)", result.Unit, result.Name, result.Unit))
	}
	if !result.Type.IsValid() {
		return MetricConfig{}, ctx.error(fmt.Sprintf("invalid type: %s (must be counter, gauge, histogram or summary)", result.Type))
	}

	// Labels are sorted by name for a stable exposition order
	for _, name := range slices.Sorted(maps.Keys(raw.Labels)) {
		if !IsValidLabelName(name) {
			return MetricConfig{}, ctx.error(fmt.Sprintf("invalid label name %q", name))
		}
		result.Labels = append(result.Labels, LabelConfig{Name: name, Value: raw.Labels[name]})
	}

	buckets, err := resolveBuckets(&raw.Buckets, result.Type, ctx)
	if err != nil {
		return MetricConfig{}, err
	}
	result.Buckets = buckets

	source, err := resolveSource(&raw.Source, result.Type, ctx.push("source", raw.Name))
	if err != nil {
		return MetricConfig{}, err
	}
	result.Source = source

	return result, nil
}

// resolveBuckets expands and validates histogram bucket bounds
func resolveBuckets(raw *RawBucketsConfig, typ MetricType, ctx resolveContext) ([]float64, error) {
	if typ != MetricTypeHistogram {
		if !raw.IsZero() {
			return nil, ctx.error("buckets are only valid for histograms")
		}
		return nil, nil
	}

	var bounds []float64
	switch {
	case raw.Linear != nil:
		l := raw.Linear
		if l.Count <= 0 || l.Width <= 0 {
			return nil, ctx.error("linear buckets require positive count and width")
		}
		for i := range l.Count {
			bounds = append(bounds, l.Start+float64(i)*l.Width)
		}
	case raw.Exponent != nil:
		x := raw.Exponent
		if x.Count <= 0 || x.Start <= 0 || x.Factor <= 1 {
			return nil, ctx.error("exponential buckets require positive count and start, and factor > 1")
		}
		for i := range x.Count {
			bounds = append(bounds, x.Start*math.Pow(x.Factor, float64(i)))
		}
	default:
		bounds = slices.Clone(raw.Explicit)
	}

	if len(bounds) == 0 {
		return nil, ctx.error("histogram requires at least one bucket")
	}
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, ctx.error(fmt.Sprintf("bucket %d is not finite", i))
		}
		if i > 0 && b <= bounds[i-1] {
			return nil, ctx.error(fmt.Sprintf("buckets must be strictly ascending (bucket %d: %v <= %v)", i, b, bounds[i-1]))
		}
	}
	return bounds, nil
}

// resolveSource applies source defaults and validates the range
func resolveSource(raw *RawSourceConfig, typ MetricType, ctx resolveContext) (SourceConfig, error) {
	result := SourceConfig{
		Type: SourceTypeRandomInt,
		Min:  0,
		Max:  10,
	}
	if raw.Type != nil {
		result.Type = *raw.Type
	}
	if raw.Min != nil {
		result.Min = *raw.Min
	}
	if raw.Max != nil {
		result.Max = *raw.Max
	}

	if result.Type != SourceTypeRandomInt {
		return SourceConfig{}, ctx.error(fmt.Sprintf("unknown source type: %s", result.Type))
	}
	if result.Min > result.Max {
		return SourceConfig{}, ctx.error(fmt.Sprintf("min %d greater than max %d", result.Min, result.Max))
	}
	if typ == MetricTypeCounter && result.Min < 0 {
		return SourceConfig{}, ctx.error("counter source cannot produce negative values")
	}
	return result, nil
}

// resolveExport converts raw export config to resolved export config
func resolveExport(raw *RawExportConfig) (ExportConfig, error) {
	result := ExportConfig{}

	if raw.OpenMetrics != nil {
		result.OpenMetrics = &OpenMetricsExportConfig{
			Enabled: raw.OpenMetrics.Enabled,
			Port:    raw.OpenMetrics.Port,
			Path:    raw.OpenMetrics.Path,
		}
	}

	if raw.Prometheus != nil {
		result.Prometheus = &PrometheusExportConfig{
			Enabled: raw.Prometheus.Enabled,
			Port:    raw.Prometheus.Port,
			Path:    raw.Prometheus.Path,
		}
	}

	if raw.OTEL != nil {
		result.OTEL = &OTELExportConfig{
			Enabled:   raw.OTEL.Enabled,
			Transport: raw.OTEL.Transport,
			Host:      raw.OTEL.Host,
			Port:      raw.OTEL.Port,
			Interval:  raw.OTEL.Interval,
			Resource:  copyStringMap(raw.OTEL.Resource),
			Headers:   copyStringMap(raw.OTEL.Headers),
		}
	}

	if raw.File != nil {
		result.File = &FileExportConfig{
			Enabled:  raw.File.Enabled,
			Path:     raw.File.Path,
			Interval: raw.File.Interval,
		}
	}

	// Validate converted config
	if err := result.Validate(); err != nil {
		return ExportConfig{}, err
	}

	return result, nil
}

// resolveSettings converts raw settings config to resolved settings config
func resolveSettings(raw *RawSettingsConfig) (SettingsConfig, error) {
	result := SettingsConfig{
		InternalMetrics: InternalMetricsConfig{Enabled: true},
		Monitor: MonitorConfig{
			Enabled:  raw.Monitor.Enabled,
			Interval: raw.Monitor.Interval,
		},
	}
	if raw.InternalMetrics.Enabled != nil {
		result.InternalMetrics.Enabled = *raw.InternalMetrics.Enabled
	}

	// Validate converted config
	if err := result.Validate(); err != nil {
		return SettingsConfig{}, err
	}

	return result, nil
}

// copyStringMap creates a copy of a string map (handles nil)
func copyStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	maps.Copy(dst, src)
	return dst
}
