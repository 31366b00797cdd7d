// Package bootstrap wires all dependencies and runs the generator.
// Configuration comes from config.LoadWithFallback plus command-line
// overrides applied by the caller.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artpar/taxid/adapters/clock"
	"github.com/artpar/taxid/adapters/idgen"
	"github.com/artpar/taxid/adapters/metrics"
	"github.com/artpar/taxid/adapters/random"
	"github.com/artpar/taxid/adapters/sink"
	"github.com/artpar/taxid/app"
	"github.com/artpar/taxid/config"
	"github.com/artpar/taxid/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// App represents the wired application.
type App struct {
	Logger    zerolog.Logger
	Config    *config.Config
	Metrics   *metrics.Collector
	Generator *app.GenerateService
}

// Options provides optional overrides for application initialization.
type Options struct {
	// LogOutput receives log lines. Defaults to os.Stderr so that stdout
	// can carry identifiers.
	LogOutput io.Writer

	// Seed makes generation reproducible when non-zero.
	Seed uint64
}

// New creates the application from a validated configuration.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	logger := setupLogger(cfg.Logging, opts.LogOutput)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewWithRegistry(reg)

	var rnd ports.RandomFactory
	if opts.Seed != 0 {
		rnd = random.SeededFactory(opts.Seed)
		logger.Debug().Uint64("seed", opts.Seed).Msg("using seeded random source")
	} else {
		rnd = random.Factory()
	}

	gen := app.NewGenerateService(app.GenerateDeps{
		Random:  rnd,
		Clock:   clock.Real{},
		IDGen:   idgen.UUID{},
		Metrics: m,
		Logger:  logger,
	}, app.GenerateConfig{
		Mode:          cfg.Generate.Mode,
		Workers:       cfg.Generate.Workers,
		BufferSize:    cfg.Generate.BufferSize,
		ProgressEvery: cfg.Generate.ProgressEvery,
	})

	return &App{
		Logger:    logger,
		Config:    cfg,
		Metrics:   m,
		Generator: gen,
	}, nil
}

// Run generates cfg.Generate.Count identifiers into the configured output,
// or into stdout when no output path is set. SIGINT and SIGTERM cancel the
// run. Metrics are exported afterwards when enabled, whatever the outcome.
func (a *App) Run(ctx context.Context, stdout io.Writer) (app.GenerateResult, error) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reject the run before an existing output file is truncated.
	if err := a.Generator.Check(a.Config.Generate.Count); err != nil {
		return app.GenerateResult{Requested: a.Config.Generate.Count}, err
	}

	out, err := a.openOutput(stdout)
	if err != nil {
		return app.GenerateResult{}, err
	}

	result, err := a.Generator.Generate(ctx, a.Config.Generate.Count, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}

	if merr := a.ExportMetrics(); merr != nil {
		a.Logger.Warn().Err(merr).Msg("failed to export metrics")
	}

	return result, err
}

func (a *App) openOutput(stdout io.Writer) (*sink.Lines, error) {
	bufSize := sink.DefaultBufferSize
	path := a.Config.Generate.Output
	if path == "" || path == "-" {
		return sink.NewLines(stdout, bufSize), nil
	}

	out, err := sink.Create(path, bufSize)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug().Str("path", path).Msg("writing identifiers to file")
	return out, nil
}

// ExportMetrics writes the metrics textfile if metrics are enabled.
func (a *App) ExportMetrics() error {
	if !a.Config.Metrics.Enabled {
		return nil
	}
	if err := a.Metrics.WriteTextfile(a.Config.Metrics.File); err != nil {
		return err
	}
	a.Logger.Debug().Str("path", a.Config.Metrics.File).Msg("metrics exported")
	return nil
}

// setupLogger builds the logger described by cfg. An empty format selects
// console output on a terminal and JSON otherwise.
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	format := cfg.Format
	if format == "" {
		format = "json"
		if isTerminal(out) {
			format = "console"
		}
	}

	if format == "console" {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
