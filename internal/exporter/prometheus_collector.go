package exporter

import (
	"log/slog"
	"math"
	"sync"

	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// collector implements prometheus.Collector by walking a metric.Registry
// on every scrape.
//
// It is an unchecked collector: Describe sends nothing because the
// registry may still grow after the collector has been registered.
type collector struct {
	registry *metric.Registry

	// descs caches one prometheus.Desc per registered descriptor.
	// Entries are never removed, matching the append-only registry.
	descs sync.Map // *metric.Desc -> *prometheus.Desc
}

// newCollector creates a collector reading from registry.
func newCollector(registry *metric.Registry) *collector {
	return &collector{registry: registry}
}

// Describe implements prometheus.Collector.
func (c *collector) Describe(chan<- *prometheus.Desc) {}

// Collect reads every registered value and sends it to the channel.
// This is called on each Prometheus scrape.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for d := c.registry.First(); d != nil; d = d.Next() {
		if d.Value == nil {
			continue
		}

		m, err := c.constMetric(d)
		if err != nil {
			slog.Debug("skipping metric for prometheus", "name", d.Name, "error", err)
			continue
		}

		ch <- m
	}
}

// constMetric converts the current reading of d into a const metric.
func (c *collector) constMetric(d *metric.Desc) (prometheus.Metric, error) {
	desc := c.promDesc(d)

	switch v := d.Value.(type) {
	case metric.Bucketed:
		var total uint64
		buckets := make(map[float64]uint64, v.NumBuckets())
		for i := range v.NumBuckets() {
			upper, count := v.Bucket(i)
			if math.IsInf(upper, 1) {
				total = count // implied by the count
				continue
			}
			buckets[upper] = count
		}
		return prometheus.NewConstHistogram(desc, total, v.Sum(), buckets)
	case metric.Distribution:
		return prometheus.NewConstSummary(desc, v.Count(), v.Sum(), nil)
	}

	valueType := prometheus.GaugeValue
	if d.Value.Kind() == metric.KindCounter {
		valueType = prometheus.CounterValue
	}
	return prometheus.NewConstMetric(desc, valueType, d.Value.Number().Float64())
}

// promDesc returns the cached prometheus.Desc for d, creating it on first
// use. Static labels become constant labels.
func (c *collector) promDesc(d *metric.Desc) *prometheus.Desc {
	if v, ok := c.descs.Load(d); ok {
		return v.(*prometheus.Desc)
	}

	var constLabels prometheus.Labels
	if len(d.Labels) > 0 {
		constLabels = make(prometheus.Labels, len(d.Labels))
		for _, l := range d.Labels {
			constLabels[l.Name] = l.Value
		}
	}

	v, _ := c.descs.LoadOrStore(d, prometheus.NewDesc(d.Name, d.Help, nil, constLabels))
	return v.(*prometheus.Desc)
}
