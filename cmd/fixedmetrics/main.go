package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neox5/fixedmetrics/internal/app"
	"github.com/neox5/fixedmetrics/internal/config"
	"github.com/neox5/fixedmetrics/internal/exporter"
	"github.com/neox5/fixedmetrics/internal/version"
	"github.com/neox5/fixedmetrics/pkg/metric"
	"github.com/neox5/fixedmetrics/pkg/openmetrics"
	"github.com/neox5/simv/seed"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "fixedmetrics",
		Usage:   "Allocation-free metrics agent with OpenMetrics, Prometheus and OTLP export",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "master seed for workload values (default: time-based)",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:  "dump",
				Usage: "write one OpenMetrics exposition and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   exporter.StdoutPath,
						Usage:   "output file, - for stdout",
					},
					&cli.IntFlag{
						Name:  "ticks",
						Value: 1,
						Usage: "workload updates to apply before writing",
					},
				},
				Action: dump,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	// Configure logging level
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initSeed seeds simv once per process. Sources panic when created
// before the seed.
func initSeed(cmd *cli.Command) {
	masterSeed := cmd.Uint64("seed")
	if !cmd.IsSet("seed") {
		masterSeed = uint64(time.Now().UnixNano())
	}
	seed.Init(masterSeed)
	slog.Info("simulation seed initialized", "seed", masterSeed)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	logger := newLogger(os.Stdout, cmd.Bool("debug"))

	slog.Info("starting fixedmetrics", "version", version.String(), "config", configPath)
	initSeed(cmd)

	// Load configuration
	slog.Debug("--- Configuration Loading ---")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("--- Application Creation ---")
	application, err := app.New(shutdownCtx, cfg, &metric.Default, logger)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	return application.Run(shutdownCtx)
}

func dump(ctx context.Context, cmd *cli.Command) error {
	// Logs go to stderr so the exposition on stdout stays clean
	newLogger(os.Stderr, cmd.Bool("debug"))
	initSeed(cmd)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	gen, err := app.NewWorkload(cfg, &metric.Default)
	if err != nil {
		return err
	}

	// Values change on the workload clock, so wait one interval per update
	gen.Start()
	ticker := time.NewTicker(cfg.Workload.Interval)
	for range cmd.Int("ticks") {
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		gen.Tick()
	}
	ticker.Stop()
	gen.Stop()

	output := cmd.String("output")
	if output == exporter.StdoutPath {
		return openmetrics.Encode(os.Stdout, &metric.Default)
	}
	return exporter.NewFileExporter(output, 0, &metric.Default).WriteOnce()
}
