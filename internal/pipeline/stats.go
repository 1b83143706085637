package pipeline

import "time"

// RunStats aggregates throughput counters for one pipeline run. Elapsed and
// the derived averages are computed once at termination.
type RunStats struct {
	RunID         string
	TotalFrames   int
	FramesWritten int
	FramesFailed  int
	Batches       int
	Elapsed       time.Duration
}

// AvgFPS returns frames written per second of wall time.
func (s *RunStats) AvgFPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.FramesWritten) / s.Elapsed.Seconds()
}

// AvgSPF returns seconds of wall time per written frame.
func (s *RunStats) AvgSPF() float64 {
	if s.FramesWritten == 0 {
		return 0
	}
	return s.Elapsed.Seconds() / float64(s.FramesWritten)
}
