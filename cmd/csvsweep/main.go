// Package main implements the csvsweep command, which fetches a manifest of
// CSV resources over HTTP and parses them, either one at a time or through a
// fixed-size worker pool, and reports how the two strategies compare.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csvsweep/csvsweep/internal/config"
	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/events"
	"github.com/csvsweep/csvsweep/internal/manifest"
	"github.com/csvsweep/csvsweep/internal/platform/httpfetch"
	"github.com/csvsweep/csvsweep/internal/platform/logger"
	"github.com/csvsweep/csvsweep/internal/sweep"
	"github.com/csvsweep/csvsweep/internal/tabular"
	"github.com/csvsweep/csvsweep/internal/task"
)

func main() {
	// Minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the command line flags. Zero values mean "not set"; the
// negative delay default keeps an explicit -delay=0 distinguishable.
type options struct {
	configFile   string
	manifestFile string
	mode         string
	workers      int
	delay        time.Duration
}

// parseFlags processes command line arguments. The boolean result reports
// whether the program should exit cleanly without running (for -h).
func parseFlags(args []string, output io.Writer) (*options, bool, error) {
	flagSet := flag.NewFlagSet("csvsweep", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `csvsweep - fetch and parse a manifest of CSV resources.

Usage:
  csvsweep [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	opts := &options{}
	flagSet.StringVar(&opts.configFile, "config", "", "Path to a YAML config file. Defaults to ./config.yaml when present.")
	flagSet.StringVar(&opts.manifestFile, "manifest", "", "Path to a YAML manifest of CSV URLs. Defaults to the built-in list.")
	flagSet.StringVar(&opts.mode, "mode", "", "Execution mode override: 'sequential', 'pool', or 'both'.")
	flagSet.IntVar(&opts.workers, "workers", 0, "Worker count override for pool mode.")
	flagSet.DurationVar(&opts.delay, "delay", -1, "Per-resource processing delay override (e.g. 500ms).")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return opts, false, nil
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(out io.Writer, args []string) error {
	opts, done, err := parseFlags(args, out)
	if err != nil || done {
		return err
	}

	cfg, err := config.LoadWithFile(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags override file and environment values; re-validate the result.
	if opts.mode != "" {
		cfg.Run.Mode = opts.mode
	}
	if opts.workers > 0 {
		cfg.Run.Workers = opts.workers
	}
	if opts.delay >= 0 {
		cfg.Run.ProcessingDelay = opts.delay
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	resources, err := loadManifest(opts.manifestFile)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	appLogger.Info("configuration loaded",
		"mode", cfg.Run.Mode,
		"workers", cfg.Run.Workers,
		"resources", len(resources),
		"processing_delay", cfg.Run.ProcessingDelay,
		"fetch_timeout", cfg.Fetch.Timeout)

	svc, err := buildService(cfg, appLogger)
	if err != nil {
		return err
	}

	// Interrupts cancel in-flight work; the sweep returns with whatever
	// it finished.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Run.Mode {
	case "sequential":
		_, err = svc.RunSequential(ctx, resources)
	case "pool":
		_, err = svc.RunPool(ctx, resources)
	default:
		_, err = svc.RunComparison(ctx, resources)
	}
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	return nil
}

// loadManifest returns the resources to sweep: the built-in list, or the
// contents of the given manifest file.
func loadManifest(path string) ([]domain.Resource, error) {
	if path == "" {
		return manifest.Default(), nil
	}
	return manifest.Load(path)
}

// buildService wires the fetch, parse, and event plumbing into a sweep
// service.
func buildService(cfg *config.Config, appLogger *slog.Logger) (*sweep.Service, error) {
	fetcher, err := httpfetch.NewHTTPFetcher(appLogger, cfg.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetcher: %w", err)
	}

	parser, err := tabular.NewParser(tabular.Options{
		Delimiter: cfg.Parse.Delimiter,
		Encoding:  cfg.Parse.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(sweep.NewPreviewLogHandler(appLogger))

	factory := task.NewFetchParseTaskFactory(fetcher, parser, emitter, task.TaskOptions{
		ProcessingDelay: cfg.Run.ProcessingDelay,
		PreviewColumns:  cfg.Parse.PreviewColumns,
	}, appLogger)

	svc, err := sweep.NewService(factory, emitter, cfg.Run, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build sweep service: %w", err)
	}
	return svc, nil
}
