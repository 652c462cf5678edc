package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadBytes([]byte("{}"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Export.OpenMetrics)
	assert.True(t, cfg.Export.OpenMetricsEnabled())
	assert.Equal(t, DefaultOpenMetricsPort, cfg.Export.OpenMetrics.Port)
	assert.Equal(t, DefaultOpenMetricsPath, cfg.Export.OpenMetrics.Path)
	assert.False(t, cfg.Export.PrometheusEnabled())
	assert.False(t, cfg.Export.OTELEnabled())
	assert.False(t, cfg.Export.FileEnabled())

	assert.Equal(t, DefaultWorkloadInterval, cfg.Workload.Interval)
	assert.Empty(t, cfg.Workload.Metrics)
	assert.True(t, cfg.Settings.InternalMetrics.Enabled)
	assert.False(t, cfg.Settings.Monitor.Enabled)
	assert.Equal(t, DefaultMonitorInterval, cfg.Settings.Monitor.Interval)
}

func TestLoadFull(t *testing.T) {
	data := `
export:
  openmetrics:
    enabled: true
  prometheus:
    enabled: true
    port: 9100
  otel:
    enabled: true
    transport: http
    resource:
      service.name: edge
  file:
    enabled: true
    path: /tmp/metrics.txt
workload:
  interval: 250ms
  metrics:
    - name: jobs
      type: counter
      help: Jobs processed.
      labels:
        zone: b
        app: demo
      source: {min: 1, max: 3}
    - name: latency_seconds
      type: histogram
      description: Request latency.
      unit: seconds
      buckets: [0.1, 0.5, 1]
    - name: queue
      type: gauge
      help: Queue depth.
      attributes:
        queue: main
      source: {min: -5, max: 5}
settings:
  internal_metrics:
    enabled: false
  monitor:
    enabled: true
    interval: 2s
`
	cfg, err := LoadBytes([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultPrometheusPath, cfg.Export.Prometheus.Path)
	assert.Equal(t, DefaultOpenMetricsPort, cfg.Export.OpenMetrics.Port)

	otel := cfg.Export.OTEL
	assert.Equal(t, "http", otel.Transport)
	assert.Equal(t, DefaultOTELPortHTTP, otel.Port)
	assert.Equal(t, "localhost:4318", otel.GetEndpoint())
	assert.Equal(t, DefaultOTELPushInterval, otel.Interval)
	assert.Equal(t, "edge", otel.Resource["service.name"])
	assert.Equal(t, DefaultServiceVersion, otel.Resource["service.version"])

	assert.Equal(t, "/tmp/metrics.txt", cfg.Export.File.Path)
	assert.Equal(t, DefaultFileInterval, cfg.Export.File.Interval)

	assert.Equal(t, 250*time.Millisecond, cfg.Workload.Interval)
	require.Len(t, cfg.Workload.Metrics, 3)

	jobs := cfg.Workload.Metrics[0]
	assert.Equal(t, MetricTypeCounter, jobs.Type)
	assert.Equal(t, []LabelConfig{{Name: "app", Value: "demo"}, {Name: "zone", Value: "b"}}, jobs.Labels)
	assert.Equal(t, SourceConfig{Type: SourceTypeRandomInt, Min: 1, Max: 3}, jobs.Source)

	lat := cfg.Workload.Metrics[1]
	assert.Equal(t, "Request latency.", lat.Help)
	assert.Equal(t, "seconds", lat.Unit)
	assert.Equal(t, []float64{0.1, 0.5, 1}, lat.Buckets)
	assert.Equal(t, SourceConfig{Type: SourceTypeRandomInt, Min: 0, Max: 10}, lat.Source)

	queue := cfg.Workload.Metrics[2]
	assert.Equal(t, []LabelConfig{{Name: "queue", Value: "main"}}, queue.Labels)
	assert.Equal(t, -5, queue.Source.Min)

	assert.False(t, cfg.Settings.InternalMetrics.Enabled)
	assert.True(t, cfg.Settings.Monitor.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Settings.Monitor.Interval)
}

func TestBucketLayouts(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []float64
	}{
		{
			name: "linear",
			yaml: "linear: {start: 1, width: 2, count: 3}",
			want: []float64{1, 3, 5},
		},
		{
			name: "exponential",
			yaml: "exponential: {start: 1, factor: 10, count: 3}",
			want: []float64{1, 10, 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "workload:\n  metrics:\n    - name: h\n      type: histogram\n      help: h\n      buckets: {" + tt.yaml + "}\n"
			cfg, err := LoadBytes([]byte(data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Workload.Metrics[0].Buckets)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing_name",
			yaml:    "workload:\n  metrics:\n    - type: counter\n      help: h\n",
			wantErr: "name cannot be empty",
		},
		{
			name:    "missing_help",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: counter\n",
			wantErr: "help cannot be empty",
		},
		{
			name:    "help_and_description",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: counter\n      help: h\n      description: d\n",
			wantErr: "cannot specify both 'help' and 'description'",
		},
		{
			name:    "invalid_type",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: meter\n      help: h\n",
			wantErr: "invalid type: meter",
		},
		{
			name:    "invalid_name",
			yaml:    "workload:\n  metrics:\n    - name: 1abc\n      type: counter\n      help: h\n",
			wantErr: "invalid metric name",
		},
		{
			name:    "duplicate_name",
			yaml:    "workload:\n  metrics:\n    - {name: a, type: counter, help: h}\n    - {name: a, type: gauge, help: h}\n",
			wantErr: `metric name "a" at index 1 already used at index 0`,
		},
		{
			name:    "reserved_label",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: counter\n      help: h\n      labels: {__x: y}\n",
			wantErr: `invalid label name "__x"`,
		},
		{
			name:    "descending_buckets",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: histogram\n      help: h\n      buckets: [5, 1]\n",
			wantErr: "strictly ascending",
		},
		{
			name:    "missing_buckets",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: histogram\n      help: h\n",
			wantErr: "at least one bucket",
		},
		{
			name:    "buckets_on_gauge",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: gauge\n      help: h\n      buckets: [1]\n",
			wantErr: "only valid for histograms",
		},
		{
			name:    "unit_not_name_suffix",
			yaml:    "workload:\n  metrics:\n    - {name: demo_payload, type: gauge, help: h, unit: bytes}\n",
			wantErr: `unit "bytes" must be a suffix of the metric name`,
		},
		{
			name:    "reserved_prefix",
			yaml:    "workload:\n  metrics:\n    - {name: fixedmetrics_scrapes, type: counter, help: h}\n",
			wantErr: `metric name prefix "fixedmetrics_" is reserved`,
		},
		{
			name:    "negative_counter_source",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: counter\n      help: h\n      source: {min: -1, max: 1}\n",
			wantErr: "negative values",
		},
		{
			name:    "inverted_source",
			yaml:    "workload:\n  metrics:\n    - name: a\n      type: gauge\n      help: h\n      source: {min: 5, max: 1}\n",
			wantErr: "min 5 greater than max 1",
		},
		{
			name:    "no_exporter_enabled",
			yaml:    "export:\n  openmetrics:\n    enabled: false\n",
			wantErr: "at least one exporter must be enabled",
		},
		{
			name:    "bad_transport",
			yaml:    "export:\n  otel:\n    enabled: true\n    transport: udp\n",
			wantErr: "invalid transport: udp",
		},
		{
			name:    "shared_port",
			yaml:    "export:\n  openmetrics: {enabled: true, port: 9000}\n  prometheus: {enabled: true, port: 9000}\n",
			wantErr: "cannot share port 9000",
		},
		{
			name:    "bad_path",
			yaml:    "export:\n  openmetrics: {enabled: true, path: metrics}\n",
			wantErr: "must start with /",
		},
		{
			name:    "file_without_path",
			yaml:    "export:\n  file: {enabled: true}\n",
			wantErr: "path cannot be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveErrorCarriesPath(t *testing.T) {
	_, err := LoadBytes([]byte("workload:\n  metrics:\n    - {name: a, type: gauge, help: h, source: {type: sine}}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type: sine")
	assert.Contains(t, err.Error(), `in source "a"`)
	assert.Contains(t, err.Error(), `in metric "a"`)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  file: {enabled: true, path: '-'}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Export.FileEnabled())
	assert.False(t, cfg.Export.OpenMetricsEnabled())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestIsValidLabelName(t *testing.T) {
	assert.True(t, IsValidLabelName("region"))
	assert.True(t, IsValidLabelName("_x1"))
	assert.False(t, IsValidLabelName(""))
	assert.False(t, IsValidLabelName("__name__"))
	assert.False(t, IsValidLabelName("a-b"))
	assert.False(t, IsValidLabelName("1a"))
}
