package generator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neox5/fixedmetrics/internal/config"
	"github.com/neox5/fixedmetrics/internal/selfmetrics"
	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/neox5/simv/clock"
	"github.com/neox5/simv/source"
	"github.com/neox5/simv/value"
)

// Generator drives workload metrics from simv values. Descriptors are
// built and registered once in New; afterwards the generator only mutates
// their values.
type Generator struct {
	interval time.Duration
	bindings []binding
	started  bool
	stopped  bool
	wg       sync.WaitGroup
}

// binding connects a simv value to the metric it feeds. Each binding owns
// its clock: a periodic clock delivers every tick to a single subscriber.
type binding struct {
	desc  *metric.Desc
	clock clock.Clock
	value *value.Value[int]
	apply func(v int)
}

// New creates a generator from configuration and registers its metrics
// into reg. The simv seed must be initialized before calling New.
func New(cfg config.WorkloadConfig, reg *metric.Registry) (*Generator, error) {
	bindings := make([]binding, 0, len(cfg.Metrics))
	for _, metricCfg := range cfg.Metrics {
		b, err := newBinding(metricCfg)
		if err != nil {
			return nil, err
		}

		// Create clock and source
		clk := clock.NewPeriodicClock(cfg.Interval)
		var src source.Publisher[int]
		switch metricCfg.Source.Type {
		case config.SourceTypeRandomInt:
			src = source.NewRandomIntSource(clk, metricCfg.Source.Min, metricCfg.Source.Max)
		default:
			return nil, fmt.Errorf("unknown source type: %s", metricCfg.Source.Type)
		}

		b.clock = clk
		b.value = value.New[int](src)
		bindings = append(bindings, b)
	}

	// Register once all descriptors are valid
	for _, b := range bindings {
		if !reg.Register(b.desc) {
			return nil, fmt.Errorf("metric %q already registered", b.desc.Name)
		}
		slog.Info("registered workload metric", "name", b.desc.Name, "type", b.desc.Value.Kind())
	}

	return &Generator{
		interval: cfg.Interval,
		bindings: bindings,
	}, nil
}

// newBinding builds the descriptor and primitive for one metric.
func newBinding(cfg config.MetricConfig) (binding, error) {
	desc := &metric.Desc{
		Name: cfg.Name,
		Help: cfg.Help,
		Unit: cfg.Unit,
	}
	for _, l := range cfg.Labels {
		desc.Labels = append(desc.Labels, metric.Label{Name: l.Name, Value: l.Value})
	}

	b := binding{desc: desc}
	switch cfg.Type {
	case config.MetricTypeCounter:
		c := &metric.Counter{}
		desc.Value = c
		b.apply = func(v int) {
			if v > 0 {
				c.Add(uint64(v))
			}
		}
	case config.MetricTypeGauge:
		g := &metric.Gauge{}
		desc.Value = g
		b.apply = func(v int) { g.Set(float64(v)) }
	case config.MetricTypeHistogram:
		h := metric.NewHistogram(cfg.Buckets...)
		desc.Value = h
		b.apply = func(v int) { h.Observe(float64(v)) }
	case config.MetricTypeSummary:
		s := &metric.Summary{}
		desc.Value = s
		b.apply = func(v int) { s.Observe(float64(v)) }
	default:
		return binding{}, fmt.Errorf("unsupported metric type: %s", cfg.Type)
	}
	return b, nil
}

// Start begins value generation. Values subscribe before their clocks
// run so no tick is lost. A stopped generator cannot be restarted.
func (g *Generator) Start() {
	if g.started {
		return
	}
	g.started = true

	for _, b := range g.bindings {
		b.value.Start()
	}
	for _, b := range g.bindings {
		b.clock.Start()
	}
}

// Stop halts value generation. Stopping a clock closes its source, which
// lets the value goroutine exit.
func (g *Generator) Stop() {
	if !g.started || g.stopped {
		return
	}
	g.stopped = true

	for _, b := range g.bindings {
		b.clock.Stop()
	}
	for _, b := range g.bindings {
		b.value.Stop()
	}
}

// Run applies the current simv values to the workload metrics on every
// interval until ctx is cancelled.
func (g *Generator) Run(ctx context.Context) {
	g.wg.Go(func() {
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Debug("generator shutdown complete")
				return
			case <-ticker.C:
				g.Tick()
			}
		}
	})
}

// Wait blocks until the Run goroutine exits.
func (g *Generator) Wait() {
	g.wg.Wait()
}

// Tick reads every simv value once and applies it to its metric.
func (g *Generator) Tick() {
	for _, b := range g.bindings {
		b.apply(b.value.Value())
	}
	selfmetrics.WorkloadTicks.Inc()
}

// Descs returns the workload descriptors in configuration order.
func (g *Generator) Descs() []*metric.Desc {
	descs := make([]*metric.Desc, len(g.bindings))
	for i, b := range g.bindings {
		descs[i] = b.desc
	}
	return descs
}
