package config

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	metricNameRegex = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
	labelNameRegex  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// MetricConfig defines a fully resolved workload metric
type MetricConfig struct {
	Name    string
	Type    MetricType
	Help    string
	Unit    string
	Labels  []LabelConfig // sorted by name
	Buckets []float64     // histogram only
	Source  SourceConfig
}

// LabelConfig is a static label attached to a metric
type LabelConfig struct {
	Name  string
	Value string
}

// LogValue implements slog.LogValuer for structured logging
func (m MetricConfig) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", m.Name),
		slog.String("type", string(m.Type)),
		slog.Int("labels", len(m.Labels)),
	}
	if m.Type == MetricTypeHistogram {
		attrs = append(attrs, slog.Int("buckets", len(m.Buckets)))
	}
	attrs = append(attrs, slog.Any("source", m.Source))
	return slog.GroupValue(attrs...)
}

// MetricType defines the semantic type of a metric
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
	MetricTypeSummary   MetricType = "summary"
)

// IsValid reports whether t is a supported metric type
func (t MetricType) IsValid() bool {
	switch t {
	case MetricTypeCounter, MetricTypeGauge, MetricTypeHistogram, MetricTypeSummary:
		return true
	default:
		return false
	}
}

// IsValidMetricName checks if a metric name is a valid exposition name
func IsValidMetricName(name string) bool {
	return metricNameRegex.MatchString(name)
}

// IsValidLabelName checks if a label name follows conventions
func IsValidLabelName(name string) bool {
	if len(name) == 0 {
		return false
	}
	if strings.HasPrefix(name, "__") {
		return false
	}
	return labelNameRegex.MatchString(name)
}
