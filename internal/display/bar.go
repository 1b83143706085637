package display

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Bar renders a terminal progress bar for the frame pipeline. It satisfies
// the pipeline's progress tracker interface so it can be combined with the
// file-backed tracker.
type Bar struct {
	bar   *progressbar.ProgressBar
	total int
	out   io.Writer
}

// NewBar returns an unstarted bar; the frame total is learned on the first
// Report call.
func NewBar() *Bar {
	return newBarTo(os.Stdout)
}

func newBarTo(w io.Writer) *Bar {
	return &Bar{out: w}
}

// Report advances the bar to consumed of total frames. An unknown total
// (zero or negative, e.g. a container without a frame count) renders as a
// spinner with a running frame count instead of a fixed-width bar.
func (b *Bar) Report(consumed, total int) error {
	if b.bar == nil || b.total != total {
		b.total = total
		max := total
		if max <= 0 {
			max = -1 // spinner mode
		}
		b.bar = progressbar.NewOptions(max,
			progressbar.OptionSetDescription("Carving"),
			progressbar.OptionSetWriter(b.out),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("frames"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSpinnerType(14),
		)
	}
	return b.bar.Set(consumed)
}

// Finish completes the bar rendering.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}
