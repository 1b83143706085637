// Package pipeline drives batch parallel frame processing: frames are read
// sequentially from a video source, grouped into fixed-size batches, fanned
// out to a bounded worker pool for transformation, written back in original
// order, and reported to a progress tracker after every batch.
//
// The driving loop is strictly sequential: decode, transform (parallel
// inside the batch), write, report. There is no overlap between decoding
// batch N+1 and transforming batch N; the per-batch barrier keeps ordering
// and failure isolation trivial to reason about at the cost of some
// throughput.
//
// Split across batcher.go, pool.go, progress.go, runner.go, stats.go.
package pipeline
