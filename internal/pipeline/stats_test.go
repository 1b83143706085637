package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStats_Averages(t *testing.T) {
	s := RunStats{FramesWritten: 120, Elapsed: 60 * time.Second}
	assert.InDelta(t, 2.0, s.AvgFPS(), 1e-9)
	assert.InDelta(t, 0.5, s.AvgSPF(), 1e-9)
}

func TestRunStats_ZeroGuards(t *testing.T) {
	assert.Zero(t, (&RunStats{FramesWritten: 10}).AvgFPS(), "no elapsed time")
	assert.Zero(t, (&RunStats{Elapsed: time.Second}).AvgSPF(), "no frames written")
}
