package exporter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *metric.Registry {
	var (
		requests metric.Counter
		temp     metric.Gauge
		queue    metric.IntGauge
		sizes    metric.Summary
	)
	latency := metric.NewHistogram(1, 5, 10)

	requests.Add(3)
	temp.Set(21.5)
	queue.Set(-2)
	for _, v := range []float64{0.5, 3, 7, 20} {
		latency.Observe(v)
	}
	sizes.Observe(1)
	sizes.Observe(1.5)

	r := &metric.Registry{}
	r.MustRegister(
		&metric.Desc{Name: "demo_requests", Help: "Requests handled.", Labels: []metric.Label{{Name: "region", Value: "us"}}, Value: &requests},
		&metric.Desc{Name: "demo_temperature", Help: "Room temperature.", Value: &temp},
		&metric.Desc{Name: "demo_queue", Help: "Queue delta.", Value: &queue},
		&metric.Desc{Name: "demo_latency", Help: "Request latency.", Value: latency},
		&metric.Desc{Name: "demo_sizes", Help: "Payload sizes.", Value: &sizes},
	)
	// MustRegister rejects descriptors without a value.
	r.Register(&metric.Desc{Name: "demo_unset", Help: "No value."})
	return r
}

func TestCollectorGather(t *testing.T) {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(newCollector(testRegistry()))

	expected := `
# HELP demo_requests Requests handled.
# TYPE demo_requests counter
demo_requests{region="us"} 3
# HELP demo_temperature Room temperature.
# TYPE demo_temperature gauge
demo_temperature 21.5
# HELP demo_queue Queue delta.
# TYPE demo_queue gauge
demo_queue -2
# HELP demo_latency Request latency.
# TYPE demo_latency histogram
demo_latency_bucket{le="1"} 1
demo_latency_bucket{le="5"} 2
demo_latency_bucket{le="10"} 3
demo_latency_bucket{le="+Inf"} 4
demo_latency_sum 30.5
demo_latency_count 4
# HELP demo_sizes Payload sizes.
# TYPE demo_sizes summary
demo_sizes_sum 2.5
demo_sizes_count 2
`

	err := testutil.GatherAndCompare(promRegistry, strings.NewReader(expected))
	require.NoError(t, err)
}

func TestCollectorSeesLateRegistrations(t *testing.T) {
	r := &metric.Registry{}
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(newCollector(r))

	count, err := testutil.GatherAndCount(promRegistry)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var c metric.Counter
	c.Inc()
	r.MustRegister(&metric.Desc{Name: "late_total", Help: "Registered after the bridge.", Value: &c})

	count, err = testutil.GatherAndCount(promRegistry, "late_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollectorSkipsNilValue(t *testing.T) {
	r := testRegistry()
	require.Equal(t, "demo_unset", r.First().Name)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(newCollector(r))

	count, err := testutil.GatherAndCount(promRegistry, "demo_unset")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCollectorCachesDescs(t *testing.T) {
	c := newCollector(testRegistry())
	d := c.registry.First().Next()

	assert.Same(t, c.promDesc(d), c.promDesc(d))
}

func TestPrometheusExporterHandler(t *testing.T) {
	e := NewPrometheusExporter(0, "/metrics", testRegistry(), true)

	for range 2 {
		rec := httptest.NewRecorder()
		e.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `demo_requests{region="us"} 3`)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(e.scrapesTotal))
}

func TestPrometheusExporterWithoutInternalMetrics(t *testing.T) {
	e := NewPrometheusExporter(0, "/metrics", testRegistry(), false)

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), promScrapesTotal)
	assert.NotContains(t, rec.Body.String(), "go_goroutines")
	assert.Nil(t, e.scrapesTotal)
}

// skewedHistogram reports a Count ahead of its buckets, as a histogram
// does when Observe runs between reads.
type skewedHistogram struct{ *metric.Histogram }

func (h skewedHistogram) Count() uint64 { return h.Histogram.Count() + 1 }

func TestCollectorHistogramCountFromInfBucket(t *testing.T) {
	h := metric.NewHistogram(1)
	h.Observe(0.5)
	h.Observe(3)

	r := &metric.Registry{}
	r.MustRegister(&metric.Desc{Name: "skew", Help: "Skewed.", Value: skewedHistogram{h}})

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(newCollector(r))

	expected := `
# HELP skew Skewed.
# TYPE skew histogram
skew_bucket{le="1"} 1
skew_bucket{le="+Inf"} 2
skew_sum 3.5
skew_count 2
`
	require.NoError(t, testutil.GatherAndCompare(promRegistry, strings.NewReader(expected)))
}
