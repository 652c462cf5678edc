package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/neox5/fixedmetrics/internal/config"
	"github.com/neox5/fixedmetrics/internal/exporter"
	"github.com/neox5/fixedmetrics/internal/generator"
	"github.com/neox5/fixedmetrics/internal/monitor"
	"github.com/neox5/fixedmetrics/internal/selfmetrics"
	"github.com/neox5/fixedmetrics/internal/server"
	"github.com/neox5/fixedmetrics/pkg/metric"
)

// App holds initialized application components.
type App struct {
	Config             *config.Config
	Registry           *metric.Registry
	Generator          *generator.Generator
	Monitor            *monitor.Monitor
	Server             *server.Server
	PrometheusExporter *exporter.PrometheusExporter
	OTELExporter       *exporter.OTELExporter
	FileExporter       *exporter.FileExporter
}

// New initializes the application and registers every metric into
// registry. Exporters are created last so they see the full registry.
func New(ctx context.Context, cfg *config.Config, registry *metric.Registry, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Registry: registry,
	}

	gen, err := NewWorkload(cfg, registry)
	if err != nil {
		return nil, err
	}
	a.Generator = gen

	if cfg.Settings.Monitor.Enabled {
		a.Monitor, err = monitor.New(cfg.Settings.Monitor.Interval, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create monitor: %w", err)
		}
	}

	export := cfg.Export

	if export.OpenMetricsEnabled() {
		a.Server = server.New(export.OpenMetrics.Port, export.OpenMetrics.Path, registry)
	}

	if export.PrometheusEnabled() {
		a.PrometheusExporter = exporter.NewPrometheusExporter(
			export.Prometheus.Port,
			export.Prometheus.Path,
			registry,
			cfg.Settings.InternalMetrics.Enabled,
		)
	}

	if export.OTELEnabled() {
		a.OTELExporter, err = exporter.NewOTELExporter(ctx, export.OTEL, registry)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
	}

	if export.FileEnabled() {
		a.FileExporter = exporter.NewFileExporter(export.File.Path, export.File.Interval, registry)
	}

	slog.Info("application initialized", "metrics", registry.Len())
	return a, nil
}

// NewWorkload registers the self metrics, when enabled, and the workload
// metrics into registry and returns the generator driving them.
func NewWorkload(cfg *config.Config, registry *metric.Registry) (*generator.Generator, error) {
	if cfg.Settings.InternalMetrics.Enabled {
		selfmetrics.Register(registry)
	}

	gen, err := generator.New(cfg.Workload, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return gen, nil
}

// Run starts all components and blocks until ctx is cancelled or a
// component fails. Components are stopped before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	// Start generator
	a.Generator.Start()
	defer a.Generator.Stop()
	a.Generator.Run(ctx)
	defer a.Generator.Wait()

	// Start resource monitor
	if a.Monitor != nil {
		a.Monitor.Run(ctx)
		defer a.Monitor.Wait()
	}

	// Start exporters
	slog.Debug("--- Exporter Initialization ---")
	var wg sync.WaitGroup
	errChan := make(chan error, 4)

	start := func(name string, fn func(context.Context) error) {
		wg.Go(func() {
			if err := fn(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", name, err)
			}
		})
	}

	if a.Server != nil {
		start("openmetrics server", a.Server.Start)
	}
	if a.PrometheusExporter != nil {
		start("prometheus exporter", a.PrometheusExporter.Start)
	}
	if a.OTELExporter != nil {
		start("otel exporter", a.OTELExporter.Start)
	}
	if a.FileExporter != nil {
		start("file exporter", a.FileExporter.Start)
	}

	slog.Debug("--- Application Running ---")

	// Wait for shutdown or error
	var runErr error
	select {
	case runErr = <-errChan:
		slog.Error("exporter error", "error", runErr)
		stop() // Cancel context to trigger shutdown
	case <-ctx.Done():
		// Graceful shutdown triggered
	}

	slog.Debug("--- Shutdown Initiated ---")

	// The exporters' Start methods return once ctx is cancelled
	wg.Wait()

	slog.Info("shutdown complete")
	return runErr
}
