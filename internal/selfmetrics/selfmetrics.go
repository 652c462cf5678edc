// Package selfmetrics declares the agent's own metrics as static storage.
package selfmetrics

import (
	"sync"

	"github.com/neox5/fixedmetrics/internal/version"
	"github.com/neox5/fixedmetrics/pkg/metric"
)

var (
	Scrapes        metric.Counter
	EncodeErrors   metric.Counter
	FileWrites     metric.Counter
	WorkloadTicks  metric.Counter
	ScrapeDuration = metric.NewHistogram(0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5)

	ProcessCPU        metric.Gauge
	ProcessRSS        metric.IntGauge
	ProcessGoroutines metric.IntGauge

	buildInfo metric.IntGauge
)

var (
	scrapesDesc = metric.Desc{
		Name:  "fixedmetrics_scrapes",
		Help:  "Scrape requests served by the OpenMetrics endpoint.",
		Value: &Scrapes,
	}
	encodeErrorsDesc = metric.Desc{
		Name:  "fixedmetrics_encode_errors",
		Help:  "Encode passes aborted by a sink write error.",
		Value: &EncodeErrors,
	}
	fileWritesDesc = metric.Desc{
		Name:  "fixedmetrics_file_writes",
		Help:  "Encode passes written by the file exporter.",
		Value: &FileWrites,
	}
	workloadTicksDesc = metric.Desc{
		Name:  "fixedmetrics_workload_ticks",
		Help:  "Workload generator updates applied.",
		Value: &WorkloadTicks,
	}
	scrapeDurationDesc = metric.Desc{
		Name:  "fixedmetrics_scrape_duration_seconds",
		Help:  "Time spent encoding a scrape response.",
		Unit:  "seconds",
		Value: ScrapeDuration,
	}
	processCPUDesc = metric.Desc{
		Name:  "fixedmetrics_process_cpu_percent",
		Help:  "Process CPU usage in percent of one core.",
		Value: &ProcessCPU,
	}
	processRSSDesc = metric.Desc{
		Name:  "fixedmetrics_process_resident_memory_bytes",
		Help:  "Resident set size of the process.",
		Unit:  "bytes",
		Value: &ProcessRSS,
	}
	processGoroutinesDesc = metric.Desc{
		Name:  "fixedmetrics_process_goroutines",
		Help:  "Number of goroutines.",
		Value: &ProcessGoroutines,
	}
	buildInfoDesc = metric.Desc{
		Name:   "fixedmetrics_build_info",
		Help:   "Build information.",
		Labels: []metric.Label{{Name: "version", Value: version.String()}},
		Value:  &buildInfo,
	}
)

var once sync.Once

// Register links the self metrics into r. Only the first call has an
// effect; later calls, with any registry, do nothing.
func Register(r *metric.Registry) {
	once.Do(func() {
		buildInfo.Set(1)
		r.MustRegister(
			&buildInfoDesc,
			&processGoroutinesDesc,
			&processRSSDesc,
			&processCPUDesc,
			&scrapeDurationDesc,
			&workloadTicksDesc,
			&fileWritesDesc,
			&encodeErrorsDesc,
			&scrapesDesc,
		)
	})
}
