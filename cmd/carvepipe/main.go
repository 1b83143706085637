// Command carvepipe is the entrypoint for the content-aware video scaler.
// It parses flags, validates config, and either runs system check (--check)
// or the frame-processing pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carvekit/carvepipe/internal/check"
	"github.com/carvekit/carvepipe/internal/config"
	"github.com/carvekit/carvepipe/internal/display"
	"github.com/carvekit/carvepipe/internal/logging"
	"github.com/carvekit/carvepipe/internal/metrics"
	"github.com/carvekit/carvepipe/internal/pipeline"
	"github.com/carvekit/carvepipe/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load config: defaults, then environment, then CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "carvepipe: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "carvepipe: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "carvepipe: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carvepipe: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	// 2. If user asked for system check, run it and exit.
	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	log.Info("=== carvepipe v%s ===", config.Version)
	log.Info("In:  %s", cfg.InputPath)
	log.Info("Out: %s", cfg.OutputPath)
	log.Info("Scale: %.2fx width, %.2fx height | %d workers", cfg.ScaleX, cfg.ScaleY, cfg.Workers)

	// 3. Ensure ffmpeg/ffprobe are available; fail fast otherwise.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// 4. Cancel the run on SIGINT/SIGTERM; the pipeline flushes what it has
	// written and releases resources before returning.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := metrics.StartServer(cfg.MetricsAddr, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// 5. Compose progress reporting: the overwrite-style file is always
	// written; the terminal bar only when stdout is interactive.
	var bar *display.Bar
	tracker := pipeline.MultiTracker{pipeline.NewFileTracker(cfg.ProgressFile)}
	if cfg.ShowBar && term.IsTerminal(os.Stdout) {
		bar = display.NewBar()
		tracker = append(tracker, bar)
	}

	p := pipeline.New()
	p.Tracker = tracker

	stats, err := p.Run(ctx, &cfg, log)
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		log.Error("Pipeline failed: %v", err)
		return 1
	}

	log.Debug("Run %s finished: %d/%d frames in %s",
		stats.RunID, stats.FramesWritten, stats.TotalFrames, display.FormatDuration(stats.Elapsed))
	return 0
}
