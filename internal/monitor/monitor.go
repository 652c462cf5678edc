package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/neox5/fixedmetrics/internal/selfmetrics"
	"github.com/shirou/gopsutil/v4/process"
)

// Monitor tracks process resource usage, logs it and publishes it through
// the static process gauges.
type Monitor struct {
	interval time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
	proc     *process.Process
}

// New creates a new monitor with specified collection interval.
func New(interval time.Duration, logger *slog.Logger) (*Monitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process handle: %w", err)
	}

	return &Monitor{
		interval: interval,
		logger:   logger,
		proc:     proc,
	}, nil
}

// Run starts the monitoring loop in a background goroutine.
// The loop exits when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.wg.Go(func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		// Immediate first collection
		m.collect(ctx)

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("monitor shutdown complete")
				return
			case <-ticker.C:
				m.collect(ctx)
			}
		}
	})
}

// Wait blocks until the monitor goroutine exits.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// collect reads current usage, updates the gauges and logs a summary.
func (m *Monitor) collect(ctx context.Context) {
	// ---- CPU ----
	processCPU, err := m.proc.CPUPercentWithContext(ctx)
	if err != nil {
		m.logger.Warn("failed to get CPU percent", "error", err)
		processCPU = 0
	}

	// ---- Memory ----
	var rss uint64
	if mem, err := m.proc.MemoryInfoWithContext(ctx); err != nil {
		m.logger.Warn("failed to get memory info", "error", err)
	} else {
		rss = mem.RSS
	}

	goroutines := runtime.NumGoroutine()

	selfmetrics.ProcessCPU.Set(processCPU)
	selfmetrics.ProcessRSS.Set(int64(rss))
	selfmetrics.ProcessGoroutines.Set(int64(goroutines))

	mb := func(b uint64) float64 {
		return float64(b) / (1024 * 1024)
	}

	m.logger.LogAttrs(
		ctx,
		slog.LevelDebug,
		"resource",
		slog.String("cpu", fmt.Sprintf("%.4f%%", processCPU)),
		slog.Int("cores", runtime.GOMAXPROCS(-1)),
		slog.Int("gor", goroutines),
		slog.String("rss", fmt.Sprintf("%.2fMB", mb(rss))),
	)
}
