package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// FileSink encodes sequential RGB24 frames into a video file via an ffmpeg
// rawvideo pipe on stdin. It implements Sink. Dimensions are fixed at open
// time; every written frame must match them.
type FileSink struct {
	width  int
	height int

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	closed bool
}

// OpenSink starts the encoder for path with the given output dimensions and
// frame rate. The container and codec follow from the output extension with
// a yuv420p pixel format for broad player compatibility.
//
// ctx gates opening only. The encoder process deliberately outlives a
// cancelled context: an interrupted run must still be able to close stdin
// and wait for the encoder to write the container trailer, otherwise the
// partial output is unplayable. Shutdown always goes through Close.
func OpenSink(ctx context.Context, path string, width, height, frameRate int) (*FileSink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid sink dimensions %dx%d", width, height)
	}
	if frameRate <= 0 {
		return nil, fmt.Errorf("invalid sink frame rate %d", frameRate)
	}

	cmd := exec.Command("ffmpeg",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(frameRate),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-y", path,
	)

	k := &FileSink{width: width, height: height, cmd: cmd}
	cmd.Stderr = &k.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encoder stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}

	k.stdin = stdin
	return k, nil
}

// Write feeds one frame to the encoder.
func (k *FileSink) Write(f Frame) error {
	if f.Width != k.width || f.Height != k.height {
		return fmt.Errorf("frame %d is %dx%d, sink expects %dx%d",
			f.Index, f.Width, f.Height, k.width, k.height)
	}
	if len(f.Pix) != f.Size() {
		return fmt.Errorf("frame %d has %d pixel bytes, want %d", f.Index, len(f.Pix), f.Size())
	}

	if _, err := k.stdin.Write(f.Pix); err != nil {
		return fmt.Errorf("write frame %d: %w: %s", f.Index, err, k.encoderError())
	}
	return nil
}

// Close flushes the pipe and waits for the encoder to finalize the file.
func (k *FileSink) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true

	k.stdin.Close()
	if err := k.cmd.Wait(); err != nil {
		return fmt.Errorf("encoder: %w: %s", err, k.encoderError())
	}
	return nil
}

// encoderError returns the last line of ffmpeg stderr for diagnostics.
func (k *FileSink) encoderError() string {
	out := strings.TrimSpace(k.stderr.String())
	if out == "" {
		return "no encoder output"
	}
	lines := strings.Split(out, "\n")
	return lines[len(lines)-1]
}
