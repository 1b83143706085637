package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// FileSource decodes a video file into sequential RGB24 frames via an
// ffmpeg rawvideo pipe. It implements Source. Seek(0) restarts the decoder
// process, which is all the pipeline needs for its first-frame probe rewind.
type FileSource struct {
	ctx  context.Context
	path string
	info StreamInfo

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer

	next int // Index of the next frame ReadNext will return.
}

// OpenSource probes path and starts the decoder. The returned source is
// positioned at frame 0.
func OpenSource(ctx context.Context, path string) (*FileSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input %q: %w", path, err)
	}

	info, err := Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	s := &FileSource{ctx: ctx, path: path, info: *info}
	if err := s.startDecoder(); err != nil {
		return nil, err
	}
	return s, nil
}

// startDecoder launches the ffmpeg process feeding the rawvideo pipe.
func (s *FileSource) startDecoder() error {
	cmd := exec.CommandContext(s.ctx, "ffmpeg",
		"-v", "error",
		"-i", s.path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("decoder stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start decoder: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	s.next = 0
	return nil
}

// FrameRate returns the probed frame rate.
func (s *FileSource) FrameRate() int { return s.info.FrameRate }

// TotalFrames returns the probed total frame count.
func (s *FileSource) TotalFrames() int { return s.info.TotalFrames }

// Width returns the source frame width.
func (s *FileSource) Width() int { return s.info.Width }

// Height returns the source frame height.
func (s *FileSource) Height() int { return s.info.Height }

// ReadNext reads one full frame from the pipe. A clean EOF maps to
// ErrEndOfStream; a truncated frame or decoder failure is a read error.
func (s *FileSource) ReadNext() (Frame, error) {
	buf := make([]byte, s.info.Width*s.info.Height*BytesPerPixel)
	_, err := io.ReadFull(s.stdout, buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, ErrEndOfStream
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, fmt.Errorf("truncated frame %d: %s", s.next, s.decoderError())
		}
		return Frame{}, fmt.Errorf("read frame %d: %w", s.next, err)
	}

	f := Frame{
		Index:  s.next,
		Width:  s.info.Width,
		Height: s.info.Height,
		Pix:    buf,
	}
	s.next++
	return f, nil
}

// Seek repositions the cursor. Only rewinding to frame 0 is supported; the
// decoder process is restarted from the top of the file.
func (s *FileSource) Seek(pos int) error {
	if pos != 0 {
		return fmt.Errorf("seek to %d not supported (only 0)", pos)
	}
	s.stopDecoder()
	return s.startDecoder()
}

// Close releases the decoder process.
func (s *FileSource) Close() error {
	s.stopDecoder()
	return nil
}

func (s *FileSource) stopDecoder() {
	if s.cmd == nil {
		return
	}
	s.stdout.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	s.cmd = nil
}

// decoderError returns the last line of ffmpeg stderr for diagnostics.
func (s *FileSource) decoderError() string {
	out := strings.TrimSpace(s.stderr.String())
	if out == "" {
		return "decoder exited early"
	}
	lines := strings.Split(out, "\n")
	return lines[len(lines)-1]
}
