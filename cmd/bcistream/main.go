// Command bcistream runs a simulated EEG acquisition through a stream buffer
// and prints a per-channel summary of the retained window.
//
// Usage:
//
//	bcistream [flags]
//
// Settings come from the YAML file given with -config, or built-in defaults;
// flags override both.
//
// Examples:
//
//	bcistream -duration 5s
//	bcistream -config session.yaml -boundary
//	bcistream -realtime -duration 0 -publish :8080 -metrics :9100
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/cwbudde/algo-bci/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML session file")
	seconds := flag.Float64("seconds", 0, "retention window in seconds")
	rate := flag.Float64("rate", 0, "signal sample rate in Hz")
	channels := flag.Int("channels", 0, "signal channel count")
	aux := flag.Int("aux", -1, "aux channel count (0 disables aux)")
	chunk := flag.Int("chunk", 0, "samples per written chunk")
	duration := flag.Duration("duration", -1, "simulated recording length (0 runs until interrupted)")
	boundary := flag.Bool("boundary", false, "use circular writes with a moving boundary")
	realtime := flag.Bool("realtime", false, "pace writes at the sample rate")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	publishAddr := flag.String("publish", "", "serve resampled frames over websocket on this address")
	level := flag.String("level", "", "log level: debug, info, warn, error")
	jsonLogs := flag.Bool("json", false, "log as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bcistream [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Streams simulated EEG through a bounded window and summarizes it.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["seconds"] {
		cfg.Buffer.Seconds = *seconds
	}
	if set["rate"] {
		cfg.Acquisition.SampleRate = *rate
	}
	if set["channels"] {
		cfg.Acquisition.Channels = *channels
	}
	if set["aux"] {
		cfg.Acquisition.AuxChannels = *aux
	}
	if set["chunk"] {
		cfg.Producer.ChunkSize = *chunk
	}
	if set["duration"] {
		cfg.Producer.Duration = *duration
	}
	if set["boundary"] {
		cfg.Buffer.Boundary = *boundary
	}
	if set["realtime"] {
		cfg.Producer.Realtime = *realtime
	}
	if set["metrics"] {
		cfg.Metrics.Listen = *metricsAddr
	}
	if set["publish"] {
		cfg.Publish.Listen = *publishAddr
	}
	if set["level"] {
		cfg.Logging.Level = *level
	}
	if set["json"] {
		cfg.Logging.JSON = *jsonLogs
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(&cfg)
	slog.SetDefault(logger)

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg, logger, os.Stdout); err != nil {
		logger.Error("bcistream failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Logging.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
