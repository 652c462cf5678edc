package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/neox5/fixedmetrics/internal/selfmetrics"
	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/neox5/fixedmetrics/pkg/openmetrics"
)

// StdoutPath selects standard output as the file exporter target.
const StdoutPath = "-"

// FileExporter periodically writes one encode pass to a file or a stream.
//
// File targets are replaced atomically: each pass goes to a temporary file
// in the same directory which is then renamed over the target, so readers
// never see a partial exposition.
type FileExporter struct {
	path     string
	interval time.Duration
	registry *metric.Registry
	out      io.Writer
	enc      openmetrics.Encoder
}

// NewFileExporter creates a new file exporter. A path of "-" writes to
// standard output.
func NewFileExporter(path string, interval time.Duration, registry *metric.Registry) *FileExporter {
	e := &FileExporter{
		path:     path,
		interval: interval,
		registry: registry,
	}
	if path == StdoutPath {
		e.out = os.Stdout
	}
	return e
}

// Start writes once per interval until ctx is cancelled, then writes a
// final pass. Write failures are logged and counted but do not stop the
// exporter.
func (e *FileExporter) Start(ctx context.Context) error {
	slog.Info("starting file exporter", "path", e.path, "interval", e.interval)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := e.WriteOnce(); err != nil {
				slog.Warn("final file export failed", "path", e.path, "error", err)
			}
			slog.Info("file exporter stopped", "path", e.path)
			return nil
		case <-ticker.C:
			if err := e.WriteOnce(); err != nil {
				slog.Warn("file export failed", "path", e.path, "error", err)
			}
		}
	}
}

// WriteOnce performs a single encode pass into the target.
func (e *FileExporter) WriteOnce() error {
	var err error
	if e.out != nil {
		err = e.encodeTo(e.out)
	} else {
		err = e.replaceFile()
	}
	if err != nil {
		selfmetrics.EncodeErrors.Inc()
		return err
	}

	selfmetrics.FileWrites.Inc()
	slog.Debug("file export written", "path", e.path)
	return nil
}

// replaceFile encodes into a temporary file and renames it over the target.
func (e *FileExporter) replaceFile() error {
	tmp, err := os.CreateTemp(filepath.Dir(e.path), "."+filepath.Base(e.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := e.encodeTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, e.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", e.path, err)
	}
	return nil
}

func (e *FileExporter) encodeTo(w io.Writer) error {
	e.enc.Reset(w)
	defer e.enc.Reset(nil)

	if err := e.enc.Encode(e.registry); err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	return nil
}
