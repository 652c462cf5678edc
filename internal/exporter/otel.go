package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neox5/fixedmetrics/internal/config"
	"github.com/neox5/fixedmetrics/pkg/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName is the instrumentation scope used for all bridged metrics.
const meterName = "github.com/neox5/fixedmetrics"

// OTELExporter pushes metrics to an OTEL collector.
type OTELExporter struct {
	config        *config.OTELExportConfig
	meterProvider *sdkmetric.MeterProvider
	instruments   []instrument
}

// NewOTELExporter creates a new OTEL exporter for every descriptor
// currently held by registry.
func NewOTELExporter(ctx context.Context, cfg *config.OTELExportConfig, registry *metric.Registry) (*OTELExporter, error) {
	res, err := createOTELResource(ctx, cfg.Resource)
	if err != nil {
		return nil, err
	}

	meterProvider, err := createMeterProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}

	instruments, err := registerOTELInstruments(meterProvider.Meter(meterName), registry)
	if err != nil {
		_ = meterProvider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to register otel instruments: %w", err)
	}

	return &OTELExporter{
		config:        cfg,
		meterProvider: meterProvider,
		instruments:   instruments,
	}, nil
}

// Start blocks until ctx is cancelled, then shuts the provider down.
// The periodic reader handles pushing.
func (e *OTELExporter) Start(ctx context.Context) error {
	slog.Info("starting otel exporter",
		"transport", e.config.Transport,
		"endpoint", e.config.GetEndpoint(),
		"interval", e.config.Interval,
		"metrics", len(e.instruments),
	)

	<-ctx.Done()
	return e.Stop()
}

// Stop flushes pending data and shuts the meter provider down.
func (e *OTELExporter) Stop() error {
	slog.Info("shutting down otel exporter")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return e.meterProvider.Shutdown(ctx)
}
