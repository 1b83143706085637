// Package metrics exposes Prometheus instrumentation for the frame pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carvepipe_frames_processed_total",
		Help: "Total number of frames processed, by result",
	}, []string{"result"})

	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carvepipe_batches_total",
		Help: "Total number of frame batches processed",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carvepipe_batch_duration_seconds",
		Help:    "Wall time spent transforming one batch",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	ProgressPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carvepipe_progress_percent",
		Help: "Completion percentage of the current run",
	})
)
