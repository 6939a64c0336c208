package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/use-agent/urlprobe/config"
	"github.com/use-agent/urlprobe/input"
	"github.com/use-agent/urlprobe/probe"
	"github.com/use-agent/urlprobe/report"
	"github.com/use-agent/urlprobe/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── 1. Load configuration (env first, flags override) ───────────
	cfg := config.Load()

	output := flag.String("o", cfg.Output.CSVPath, "write results to a CSV file")
	timeout := flag.Float64("t", cfg.Probe.Timeout.Seconds(), "per-attempt request timeout in seconds")
	retries := flag.Int("r", cfg.Probe.Retries, "max retry attempts for retryable failures")
	delay := flag.Float64("d", cfg.Probe.Delay.Seconds(), "delay between requests in seconds; 0 disables pacing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <urls.txt>\n\nProbe every URL in the file and report status codes and page titles.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	inputPath := flag.Arg(0)

	cfg.Probe.Timeout = time.Duration(*timeout * float64(time.Second))
	cfg.Probe.Retries = *retries
	cfg.Probe.Delay = time.Duration(*delay * float64(time.Second))
	cfg.Output.CSVPath = *output

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	// ── 3. Read the URL list ────────────────────────────────────────
	lines, err := input.ReadLines(inputPath)
	if err != nil {
		slog.Error("failed to read input file", "path", inputPath, "error", err)
		return 1
	}

	// ── 4. Wire fetcher, processor and output sinks ─────────────────
	fetcher := probe.NewFetcher(cfg.Probe)
	processor := probe.NewProcessor(fetcher)

	console := report.NewConsole(os.Stdout, cfg.Output.TitleDisplayLimit)
	sinks := []report.Sink{console}

	csvEnabled := false
	if cfg.Output.CSVPath != "" {
		csvSink, err := report.NewCSVSink(cfg.Output.CSVPath)
		if err != nil {
			// Console-only mode still works; the batch goes on.
			slog.Warn("cannot open CSV output, continuing without it",
				"path", cfg.Output.CSVPath, "error", err)
		} else {
			defer csvSink.Close()
			sinks = append(sinks, csvSink)
			csvEnabled = true
		}
	}

	// ── 5. Run the batch ────────────────────────────────────────────
	r := runner.New(processor, cfg.Probe.Delay, sinks...)
	_, summary, err := r.Run(context.Background(), lines)
	if err != nil {
		slog.Error("batch run failed", "error", err)
		return 1
	}

	console.Summary(summary)
	if csvEnabled {
		slog.Info("results saved", "path", cfg.Output.CSVPath)
	}
	return 0
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
