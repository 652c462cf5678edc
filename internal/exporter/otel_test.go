package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectOTEL(t *testing.T) map[string]metricdata.Metrics {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	instruments, err := registerOTELInstruments(provider.Meter(meterName), testRegistry())
	require.NoError(t, err)
	assert.Len(t, instruments, 5)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := make(map[string]metricdata.Metrics)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}
	return byName
}

func TestOTELInstruments(t *testing.T) {
	metrics := collectOTEL(t)

	t.Run("counter", func(t *testing.T) {
		sum, ok := metrics["demo_requests"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		assert.True(t, sum.IsMonotonic)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(3), sum.DataPoints[0].Value)

		region, ok := sum.DataPoints[0].Attributes.Value("region")
		require.True(t, ok)
		assert.Equal(t, "us", region.AsString())
	})

	t.Run("float gauge", func(t *testing.T) {
		gauge, ok := metrics["demo_temperature"].Data.(metricdata.Gauge[float64])
		require.True(t, ok)
		require.Len(t, gauge.DataPoints, 1)
		assert.Equal(t, 21.5, gauge.DataPoints[0].Value)
	})

	t.Run("int gauge", func(t *testing.T) {
		gauge, ok := metrics["demo_queue"].Data.(metricdata.Gauge[int64])
		require.True(t, ok)
		require.Len(t, gauge.DataPoints, 1)
		assert.Equal(t, int64(-2), gauge.DataPoints[0].Value)
	})

	t.Run("histogram", func(t *testing.T) {
		count, ok := metrics["demo_latency_count"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, count.DataPoints, 1)
		assert.Equal(t, int64(4), count.DataPoints[0].Value)

		sum, ok := metrics["demo_latency_sum"].Data.(metricdata.Sum[float64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, 30.5, sum.DataPoints[0].Value)
	})

	t.Run("summary", func(t *testing.T) {
		count, ok := metrics["demo_sizes_count"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		assert.Equal(t, int64(2), count.DataPoints[0].Value)

		sum, ok := metrics["demo_sizes_sum"].Data.(metricdata.Sum[float64])
		require.True(t, ok)
		assert.Equal(t, 2.5, sum.DataPoints[0].Value)
	})

	t.Run("nil value skipped", func(t *testing.T) {
		assert.NotContains(t, metrics, "demo_unset")
	})
}

func TestOTELResource(t *testing.T) {
	res, err := createOTELResource(context.Background(), map[string]string{
		"service.name":    "fixedmetrics",
		"service.version": "dev",
	})
	require.NoError(t, err)

	name, ok := res.Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "fixedmetrics", name.AsString())
}
