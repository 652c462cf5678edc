package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neox5/fixedmetrics/pkg/metric"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// instrument pairs a registered descriptor with its observable instruments.
//
// Counters and integer gauges use ints, float gauges use floats.
// Histograms and summaries use both: ints for <name>_count and floats
// for <name>_sum.
type instrument struct {
	desc   *metric.Desc
	ints   otelmetric.Int64Observable
	floats otelmetric.Float64Observable
	attrs  otelmetric.MeasurementOption
}

// registerOTELInstruments creates instruments for every descriptor in the
// registry and registers a single callback observing them.
//
// Descriptors registered after this call are not exported.
func registerOTELInstruments(meter otelmetric.Meter, registry *metric.Registry) ([]instrument, error) {
	var instruments []instrument

	for d := registry.First(); d != nil; d = d.Next() {
		if d.Value == nil {
			continue
		}

		inst, err := newInstrument(meter, d)
		if err != nil {
			slog.Warn("skipping otel metric", "name", d.Name, "error", err)
			continue
		}
		instruments = append(instruments, inst)

		slog.Debug("registered otel metric",
			"name", d.Name,
			"type", d.Value.Kind(),
			"labels", len(d.Labels))
	}

	if err := registerOTELCallback(meter, instruments); err != nil {
		return nil, err
	}

	return instruments, nil
}

// newInstrument creates the observable instruments backing d.
func newInstrument(meter otelmetric.Meter, d *metric.Desc) (instrument, error) {
	attrs := make([]attribute.KeyValue, 0, len(d.Labels))
	for _, l := range d.Labels {
		attrs = append(attrs, attribute.String(l.Name, l.Value))
	}

	inst := instrument{
		desc:  d,
		attrs: otelmetric.WithAttributeSet(attribute.NewSet(attrs...)),
	}

	var err error
	switch v := d.Value.(type) {
	case metric.Distribution:
		inst.ints, err = meter.Int64ObservableCounter(
			d.Name+"_count",
			otelmetric.WithDescription(d.Help),
		)
		if err != nil {
			return inst, fmt.Errorf("failed to create count counter: %w", err)
		}
		inst.floats, err = meter.Float64ObservableCounter(
			d.Name+"_sum",
			otelmetric.WithDescription(d.Help),
			otelmetric.WithUnit(d.Unit),
		)
		if err != nil {
			return inst, fmt.Errorf("failed to create sum counter: %w", err)
		}

	default:
		switch {
		case v.Kind() == metric.KindCounter:
			inst.ints, err = meter.Int64ObservableCounter(
				d.Name,
				otelmetric.WithDescription(d.Help),
				otelmetric.WithUnit(d.Unit),
			)
		case v.Number().IsFloat():
			inst.floats, err = meter.Float64ObservableGauge(
				d.Name,
				otelmetric.WithDescription(d.Help),
				otelmetric.WithUnit(d.Unit),
			)
		default:
			inst.ints, err = meter.Int64ObservableGauge(
				d.Name,
				otelmetric.WithDescription(d.Help),
				otelmetric.WithUnit(d.Unit),
			)
		}
		if err != nil {
			return inst, fmt.Errorf("failed to create %s: %w", v.Kind(), err)
		}
	}

	return inst, nil
}

// registerOTELCallback registers the observation callback for all instruments.
func registerOTELCallback(meter otelmetric.Meter, instruments []instrument) error {
	// Collect all observables for callback registration
	var observables []otelmetric.Observable
	for _, inst := range instruments {
		if inst.ints != nil {
			observables = append(observables, inst.ints)
		}
		if inst.floats != nil {
			observables = append(observables, inst.floats)
		}
	}

	if len(observables) == 0 {
		return nil
	}

	_, err := meter.RegisterCallback(
		func(ctx context.Context, observer otelmetric.Observer) error {
			slog.Debug("otel push", "metrics", len(instruments))

			for _, inst := range instruments {
				observe(observer, inst)
			}
			return nil
		},
		observables...,
	)
	if err != nil {
		return fmt.Errorf("failed to register callback: %w", err)
	}

	return nil
}

// observe records the current reading of one instrument.
func observe(observer otelmetric.Observer, inst instrument) {
	if d, ok := inst.desc.Value.(metric.Distribution); ok {
		observer.ObserveInt64(inst.ints, int64(d.Count()), inst.attrs)
		observer.ObserveFloat64(inst.floats, d.Sum(), inst.attrs)
		return
	}

	n := inst.desc.Value.Number()
	if inst.ints != nil {
		observer.ObserveInt64(inst.ints, n.Int64(), inst.attrs)
		return
	}
	observer.ObserveFloat64(inst.floats, n.Float64(), inst.attrs)
}
