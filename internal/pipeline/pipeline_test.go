package pipeline

// Shared in-memory fakes for the pipeline tests: a seekable frame source, a
// recording sink, and a recording progress tracker.

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/carvekit/carvepipe/internal/carve"
	"github.com/carvekit/carvepipe/internal/video"
)

type memSource struct {
	frames []video.Frame
	pos    int
	rate   int
	total  int

	failAt  int // 1-based read count that fails; 0 disables
	reads   int
	seeks   int
	closed  bool
	readErr error
}

func newMemSource(frames []video.Frame) *memSource {
	return &memSource{frames: frames, rate: 30, total: len(frames)}
}

func (s *memSource) FrameRate() int   { return s.rate }
func (s *memSource) TotalFrames() int { return s.total }

func (s *memSource) ReadNext() (video.Frame, error) {
	s.reads++
	if s.failAt > 0 && s.reads == s.failAt {
		return video.Frame{}, s.readErr
	}
	if s.pos >= len(s.frames) {
		return video.Frame{}, video.ErrEndOfStream
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

func (s *memSource) Seek(pos int) error {
	s.seeks++
	s.pos = pos
	return nil
}

func (s *memSource) Close() error {
	s.closed = true
	return nil
}

type memSink struct {
	width  int
	height int
	rate   int

	frames  []video.Frame
	closed  bool
	failAt  int // 1-based write count that fails; 0 disables
	writes  int
	openErr error
}

func (k *memSink) Write(f video.Frame) error {
	k.writes++
	if k.failAt > 0 && k.writes == k.failAt {
		return fmt.Errorf("disk full")
	}
	k.frames = append(k.frames, f)
	return nil
}

func (k *memSink) Close() error {
	k.closed = true
	return nil
}

type memTracker struct {
	percents []float64
}

func (t *memTracker) Report(consumed, total int) error {
	t.percents = append(t.percents, Percent(consumed, total))
	return nil
}

// makeFrames builds n RGB frames of the given size; every pixel byte holds
// the frame index so ordering is observable after transformation.
func makeFrames(n, width, height int) []video.Frame {
	frames := make([]video.Frame, n)
	for i := range frames {
		pix := make([]byte, width*height*video.BytesPerPixel)
		for j := range pix {
			pix[j] = byte(i)
		}
		frames[i] = video.Frame{Index: i, Width: width, Height: height, Pix: pix}
	}
	return frames
}

// testPipeline wires a pipeline around the given fakes.
func testPipeline(src *memSource, sink *memSink) *Pipeline {
	return &Pipeline{
		Transform: countingIdentity(nil),
		OpenSource: func(ctx context.Context, path string) (video.Source, error) {
			return src, nil
		},
		OpenSink: func(ctx context.Context, path string, width, height, rate int) (video.Sink, error) {
			if sink.openErr != nil {
				return nil, sink.openErr
			}
			sink.width, sink.height, sink.rate = width, height, rate
			return sink, nil
		},
	}
}

// countingIdentity passes frames through unchanged, counting calls when a
// counter is supplied.
func countingIdentity(calls *atomic.Int64) carve.Func {
	return func(f video.Frame, sx, sy float64) (video.Frame, error) {
		if calls != nil {
			calls.Add(1)
		}
		return f, nil
	}
}
