package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/neox5/fixedmetrics/internal/selfmetrics"
	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/neox5/fixedmetrics/pkg/openmetrics"
)

// Server provides the native OpenMetrics HTTP endpoint.
type Server struct {
	addr   string
	path   string
	server *http.Server
	mux    *http.ServeMux
}

// New creates a new HTTP server exposing registry on path.
func New(port int, path string, registry *metric.Registry) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, Handler(registry))

	addr := fmt.Sprintf(":%d", port)

	return &Server{
		addr: addr,
		path: path,
		mux:  mux,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving HTTP requests and blocks until ctx is cancelled
// or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting openmetrics server", "addr", s.addr, "path", s.path)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.shutdown()
	}
}

// shutdown gracefully stops the server.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down openmetrics server")
	return s.server.Shutdown(ctx)
}

// encoders recycles encoders, and their buffers, across scrapes.
var encoders = sync.Pool{
	New: func() any { return new(openmetrics.Encoder) },
}

// Handler returns an http.Handler that encodes registry on every request.
func Handler(registry *metric.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		start := time.Now()
		selfmetrics.Scrapes.Inc()
		slog.Debug("openmetrics scrape", "remote", r.RemoteAddr)

		w.Header().Set("Content-Type", openmetrics.ContentType)
		if r.Method == http.MethodHead {
			return
		}

		enc := encoders.Get().(*openmetrics.Encoder)
		enc.Reset(w)
		err := enc.Encode(registry)
		enc.Reset(nil)
		encoders.Put(enc)

		if err != nil {
			// Headers are already sent; the client sees a truncated body.
			selfmetrics.EncodeErrors.Inc()
			slog.Warn("openmetrics scrape aborted", "error", err)
			return
		}
		selfmetrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	})
}
