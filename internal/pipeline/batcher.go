package pipeline

import (
	"errors"
	"fmt"

	"github.com/carvekit/carvepipe/internal/video"
)

// Batch is an ordered run of consecutive frames. Start is the sequence index
// of Frames[0]; the final batch of a stream may hold fewer than the
// configured capacity, but never zero frames.
type Batch struct {
	Start  int
	Frames []video.Frame
}

// Len returns the number of frames in the batch.
func (b *Batch) Len() int { return len(b.Frames) }

// Batcher accumulates frames from a source into fixed-capacity batches.
type Batcher struct {
	src  video.Source
	size int
}

// NewBatcher wraps src with the given batch capacity.
func NewBatcher(src video.Source, size int) *Batcher {
	return &Batcher{src: src, size: size}
}

// Next returns the next batch. When the source is exhausted mid-accumulation
// the partial batch is returned; video.ErrEndOfStream is returned only when
// no frames were read at all. Any other read error is fatal and propagated.
func (b *Batcher) Next() (*Batch, error) {
	batch := &Batch{Frames: make([]video.Frame, 0, b.size)}

	for len(batch.Frames) < b.size {
		f, err := b.src.ReadNext()
		if err != nil {
			if errors.Is(err, video.ErrEndOfStream) {
				if len(batch.Frames) == 0 {
					return nil, video.ErrEndOfStream
				}
				return batch, nil
			}
			return nil, fmt.Errorf("read frame: %w", err)
		}
		if len(batch.Frames) == 0 {
			batch.Start = f.Index
		}
		batch.Frames = append(batch.Frames, f)
	}

	return batch, nil
}
