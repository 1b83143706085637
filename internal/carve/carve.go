// Package carve defines the per-frame transformation capability. The
// pipeline treats the transform as an opaque pure function: any Transformer
// may be injected, and the content-aware seam-carving implementation plugs
// in behind the same interface. The bundled Bilinear transformer provides a
// deterministic geometric resize with the same dimension contract.
package carve

import (
	"fmt"
	"math"

	"github.com/carvekit/carvepipe/internal/video"
)

// Transformer resizes a single frame. Output dimensions are
// round(width*scaleX) x round(height*scaleY). Implementations must be safe
// for concurrent calls on independent frames and must not mutate the input.
type Transformer interface {
	Transform(f video.Frame, scaleX, scaleY float64) (video.Frame, error)
}

// Func adapts a plain function to the Transformer interface.
type Func func(f video.Frame, scaleX, scaleY float64) (video.Frame, error)

// Transform calls fn.
func (fn Func) Transform(f video.Frame, scaleX, scaleY float64) (video.Frame, error) {
	return fn(f, scaleX, scaleY)
}

// OutputDims returns the scaled dimensions for a frame of the given size.
func OutputDims(width, height int, scaleX, scaleY float64) (int, int) {
	return int(math.Round(float64(width) * scaleX)),
		int(math.Round(float64(height) * scaleY))
}

// Bilinear resizes frames by bilinear resampling. It is stateless and safe
// for concurrent use.
type Bilinear struct{}

// Transform resamples f into a new frame of the scaled dimensions.
func (Bilinear) Transform(f video.Frame, scaleX, scaleY float64) (video.Frame, error) {
	if len(f.Pix) != f.Size() {
		return video.Frame{}, fmt.Errorf("frame %d has %d pixel bytes, want %d", f.Index, len(f.Pix), f.Size())
	}

	outW, outH := OutputDims(f.Width, f.Height, scaleX, scaleY)
	if outW < 1 || outH < 1 {
		return video.Frame{}, fmt.Errorf("scaled dimensions %dx%d too small", outW, outH)
	}

	out := video.Frame{
		Index:  f.Index,
		Width:  outW,
		Height: outH,
		Pix:    make([]byte, outW*outH*video.BytesPerPixel),
	}

	xRatio := float64(f.Width-1) / float64(max(outW-1, 1))
	yRatio := float64(f.Height-1) / float64(max(outH-1, 1))

	for y := 0; y < outH; y++ {
		sy := float64(y) * yRatio
		y0 := int(sy)
		y1 := min(y0+1, f.Height-1)
		fy := sy - float64(y0)

		for x := 0; x < outW; x++ {
			sx := float64(x) * xRatio
			x0 := int(sx)
			x1 := min(x0+1, f.Width-1)
			fx := sx - float64(x0)

			for c := 0; c < video.BytesPerPixel; c++ {
				p00 := float64(f.Pix[(y0*f.Width+x0)*video.BytesPerPixel+c])
				p01 := float64(f.Pix[(y0*f.Width+x1)*video.BytesPerPixel+c])
				p10 := float64(f.Pix[(y1*f.Width+x0)*video.BytesPerPixel+c])
				p11 := float64(f.Pix[(y1*f.Width+x1)*video.BytesPerPixel+c])

				top := p00 + (p01-p00)*fx
				bottom := p10 + (p11-p10)*fx
				out.Pix[(y*outW+x)*video.BytesPerPixel+c] = byte(math.Round(top + (bottom-top)*fy))
			}
		}
	}

	return out, nil
}
