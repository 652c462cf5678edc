package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Internal metric names
const (
	promScrapesTotal   = "fixedmetrics_prometheus_scrapes_total"
	promScrapeDuration = "fixedmetrics_prometheus_scrape_duration_seconds"
)

// PrometheusExporter serves a metric.Registry through the Prometheus
// client library.
type PrometheusExporter struct {
	addr         string
	path         string
	server       *http.Server
	promRegistry *prometheus.Registry

	// Internal metrics
	scrapesTotal   prometheus.Counter
	scrapeDuration prometheus.Histogram
}

// NewPrometheusExporter creates a new Prometheus HTTP exporter.
func NewPrometheusExporter(
	port int,
	path string,
	registry *metric.Registry,
	internalMetricsEnabled bool,
) *PrometheusExporter {
	addr := fmt.Sprintf(":%d", port)

	e := &PrometheusExporter{
		addr:         addr,
		path:         path,
		promRegistry: createPrometheusRegistry(registry, internalMetricsEnabled),
	}

	// Register internal metrics if enabled
	if internalMetricsEnabled {
		e.scrapesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: promScrapesTotal,
			Help: "Total number of scrape requests",
		})

		e.scrapeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    promScrapeDuration,
			Help:    "Duration of scrape requests in seconds",
			Buckets: prometheus.DefBuckets,
		})

		e.promRegistry.MustRegister(e.scrapesTotal, e.scrapeDuration)

		slog.Info("registered prometheus internal metrics",
			"scrapes_total", promScrapesTotal,
			"scrape_duration", promScrapeDuration)
	}

	e.server = createHTTPServer(addr, path, e.promRegistry, e.instrumentedHandler)
	return e
}

// instrumentedHandler wraps the Prometheus handler with internal metrics instrumentation.
func (e *PrometheusExporter) instrumentedHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if e.scrapesTotal != nil {
				e.scrapesTotal.Inc()
			}
			if e.scrapeDuration != nil {
				e.scrapeDuration.Observe(time.Since(start).Seconds())
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Gatherer returns the underlying Prometheus registry.
func (e *PrometheusExporter) Gatherer() prometheus.Gatherer {
	return e.promRegistry
}

// Handler returns the HTTP handler serving the metrics path.
func (e *PrometheusExporter) Handler() http.Handler {
	return e.server.Handler
}

// Start begins serving HTTP requests.
func (e *PrometheusExporter) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting prometheus exporter", "addr", e.addr, "path", e.path)
		if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return e.Stop()
	}
}

// Stop gracefully stops the exporter.
func (e *PrometheusExporter) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down prometheus exporter")
	return e.server.Shutdown(ctx)
}
