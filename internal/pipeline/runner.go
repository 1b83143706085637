package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carvekit/carvepipe/internal/carve"
	"github.com/carvekit/carvepipe/internal/config"
	"github.com/carvekit/carvepipe/internal/display"
	"github.com/carvekit/carvepipe/internal/logging"
	"github.com/carvekit/carvepipe/internal/metrics"
	"github.com/carvekit/carvepipe/internal/video"
)

// SourceOpener opens a frame source for reading.
type SourceOpener func(ctx context.Context, path string) (video.Source, error)

// SinkOpener opens a frame sink with the given output geometry.
type SinkOpener func(ctx context.Context, path string, width, height, frameRate int) (video.Sink, error)

// Pipeline wires a source, a transform, a sink, and a progress tracker into
// the batch driving loop. The zero value is not usable; construct with [New]
// and override fields to substitute collaborators (tests inject in-memory
// sources, sinks, and trackers here).
type Pipeline struct {
	Transform  carve.Transformer
	Tracker    Tracker
	OpenSource SourceOpener
	OpenSink   SinkOpener
}

// New returns a pipeline with the ffmpeg-backed source and sink, the bundled
// bilinear transform, and no tracker (Run falls back to a file tracker on
// cfg.ProgressFile).
func New() *Pipeline {
	return &Pipeline{
		Transform: carve.Bilinear{},
		OpenSource: func(ctx context.Context, path string) (video.Source, error) {
			return video.OpenSource(ctx, path)
		},
		OpenSink: func(ctx context.Context, path string, width, height, frameRate int) (video.Sink, error) {
			return video.OpenSink(ctx, path, width, height, frameRate)
		},
	}
}

// Run executes the full pipeline: open the source, probe the first frame to
// size the sink, rewind, then stream batches through the worker pool until
// the source is exhausted. The probe frame is deliberately reprocessed in
// the streaming phase so short batches and full batches share one code path.
//
// Setup failures (unopenable source, empty stream, failed first transform,
// unopenable sink) and sink write failures are fatal. Per-frame transform
// failures only skip that frame's slot in the output. Progress write
// failures are logged and ignored.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (stats RunStats, err error) {
	stats.RunID = uuid.NewString()
	start := time.Now()
	// Elapsed is filled on every exit path, including fatal aborts.
	defer func() { stats.Elapsed = time.Since(start) }()

	tracker := p.Tracker
	if tracker == nil {
		tracker = NewFileTracker(cfg.ProgressFile)
	}

	// --- Init ---
	src, err := p.OpenSource(ctx, cfg.InputPath)
	if err != nil {
		return stats, fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	stats.TotalFrames = src.TotalFrames()
	log.Debug("Run %s: %d frames at %d fps", stats.RunID, stats.TotalFrames, src.FrameRate())

	// Initial boundary report. With an empty stream this is the only report
	// the poller ever sees: 0.00.
	reportProgress(tracker, 0, stats.TotalFrames, log)

	// --- FirstFrameProbe ---
	// One synchronous transform determines the output geometry before any
	// parallel work starts.
	first, err := src.ReadNext()
	if err != nil {
		return stats, fmt.Errorf("read first frame: %w", err)
	}

	probed, err := p.Transform.Transform(first, cfg.ScaleX, cfg.ScaleY)
	if err != nil {
		return stats, fmt.Errorf("transform first frame: %w", err)
	}

	log.Info("Resizing %s -> %s (%.1f%% width, %.1f%% height)",
		display.FormatResolution(first.Width, first.Height),
		display.FormatResolution(probed.Width, probed.Height),
		cfg.ScaleX*100, cfg.ScaleY*100)

	sink, err := p.OpenSink(ctx, cfg.OutputPath, probed.Width, probed.Height, src.FrameRate())
	if err != nil {
		return stats, fmt.Errorf("open sink: %w", err)
	}
	defer sink.Close()

	// Rewind so the probe frame flows through the normal batch path. Its
	// transform is recomputed; one redundant unit of work keeps Streaming
	// uniform.
	if err := src.Seek(0); err != nil {
		return stats, fmt.Errorf("rewind source: %w", err)
	}

	// --- Streaming ---
	pool := NewPool(cfg.Workers, p.Transform, cfg.ScaleX, cfg.ScaleY)
	if err := pool.Start(); err != nil {
		return stats, err
	}
	defer pool.Stop()

	batcher := NewBatcher(src, cfg.BatchSize)
	consumed := 0

	for {
		if ctx.Err() != nil {
			log.Warn("Interrupted, flushing output")
			break
		}

		batch, err := batcher.Next()
		if errors.Is(err, video.ErrEndOfStream) {
			break
		}
		if err != nil {
			return stats, err
		}

		batchStart := time.Now()
		results := pool.Process(batch)
		metrics.BatchDuration.Observe(time.Since(batchStart).Seconds())
		metrics.BatchesTotal.Inc()

		if err := p.writeResults(sink, results, &stats, log); err != nil {
			return stats, err
		}

		stats.Batches++
		consumed += batch.Len()
		reportProgress(tracker, consumed, stats.TotalFrames, log)
	}

	// --- Done ---
	if err := sink.Close(); err != nil {
		return stats, fmt.Errorf("finalize output: %w", err)
	}

	stats.Elapsed = time.Since(start)
	logSummary(log, &stats)
	return stats, nil
}

// writeResults writes the ordered batch results to the sink, skipping failed
// slots. A sink write failure is fatal.
func (p *Pipeline) writeResults(sink video.Sink, results []Result, stats *RunStats, log *logging.Logger) error {
	for _, r := range results {
		if !r.OK() {
			stats.FramesFailed++
			metrics.FramesProcessedTotal.WithLabelValues("failed").Inc()
			log.Warn("Skipping frame %d: %v", r.Frame.Index, r.Err)
			continue
		}
		if err := sink.Write(r.Frame); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		stats.FramesWritten++
		metrics.FramesProcessedTotal.WithLabelValues("written").Inc()
	}
	return nil
}

// reportProgress persists the completion fraction; failures are best-effort.
func reportProgress(tracker Tracker, consumed, total int, log *logging.Logger) {
	metrics.ProgressPercent.Set(Percent(consumed, total))
	if err := tracker.Report(consumed, total); err != nil {
		log.Warn("Progress report failed: %v", err)
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	if stats.FramesFailed > 0 {
		log.Warn("%d frames failed transformation and were skipped", stats.FramesFailed)
	}
	log.Success("Processing complete in %s: %d frames written across %d batches",
		display.FormatDuration(stats.Elapsed), stats.FramesWritten, stats.Batches)
	log.Info("Average: %s (%.2f s/frame)", display.FormatRate(stats.AvgFPS()), stats.AvgSPF())
}
