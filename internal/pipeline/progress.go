package pipeline

import (
	"errors"
	"fmt"
	"os"
)

// Tracker persists the pipeline's completion fraction. Report is called once
// per batch boundary, not per frame, so implementations may write to slow
// sinks. Report errors are treated as best-effort by the driver.
type Tracker interface {
	Report(consumed, total int) error
}

// Percent converts a consumed/total pair into a 0-100 percentage. A zero or
// unknown total reports 0 rather than dividing by it; values never exceed
// 100 even when the probed total undercounts the stream.
func Percent(consumed, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(consumed) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// FileTracker overwrites a file with a single "NN.NN\n" percentage line on
// every report, so a poller always sees only the current state.
type FileTracker struct {
	path string
}

// NewFileTracker returns a tracker writing to path.
func NewFileTracker(path string) *FileTracker {
	return &FileTracker{path: path}
}

// Report overwrites the file with the current percentage.
func (t *FileTracker) Report(consumed, total int) error {
	line := fmt.Sprintf("%.2f\n", Percent(consumed, total))
	if err := os.WriteFile(t.path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	return nil
}

// MultiTracker fans a report out to several trackers. All trackers are
// invoked even when earlier ones fail; errors are joined.
type MultiTracker []Tracker

// Report forwards to every tracker.
func (m MultiTracker) Report(consumed, total int) error {
	var errs []error
	for _, t := range m {
		if err := t.Report(consumed, total); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
