// Package video abstracts sequential frame I/O. A Source yields raw RGB
// frames in order with a known total count and rate; a Sink consumes frames
// of a fixed size. The ffmpeg-backed implementations decode and encode over
// rawvideo pipes so the pipeline never touches container or codec details.
package video

import "errors"

// BytesPerPixel is the packed RGB24 pixel stride used on the rawvideo pipes.
const BytesPerPixel = 3

// ErrEndOfStream is returned by Source.ReadNext once the stream is exhausted.
var ErrEndOfStream = errors.New("end of stream")

// Frame is an immutable raw RGB24 pixel buffer with its position in the
// original video. Transformations produce a new Frame; Pix is never mutated
// in place.
type Frame struct {
	Index  int
	Width  int
	Height int
	Pix    []byte // Packed RGB24, len == Width*Height*BytesPerPixel.
}

// Size returns the expected byte length of the pixel buffer.
func (f Frame) Size() int { return f.Width * f.Height * BytesPerPixel }

// Source reads frames sequentially from a video stream.
type Source interface {
	// FrameRate returns the stream frame rate in frames per second.
	FrameRate() int
	// TotalFrames returns the total frame count, or 0 when unknown.
	TotalFrames() int
	// ReadNext returns the next frame, or ErrEndOfStream when exhausted.
	ReadNext() (Frame, error)
	// Seek repositions the cursor. Only position 0 is required.
	Seek(pos int) error
	Close() error
}

// Sink writes frames sequentially to a video stream. All frames must match
// the dimensions the sink was opened with.
type Sink interface {
	Write(Frame) error
	Close() error
}
