// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps verifies that ffmpeg and ffprobe are available before the
// pipeline starts. Returns the first missing-tool error.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive --check flow: prints availability and
// versions of ffmpeg and ffprobe. Informational only; it does not stop on
// failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		path, err := exec.LookPath(tool)
		if err != nil {
			log.Error("%s: not found on PATH", tool)
			continue
		}
		log.Success("%s: %s", tool, path)
		if v := toolVersion(tool); v != "" {
			log.Info("  %s", v)
		}
	}
}

// toolVersion returns the first line of `<tool> -version` output.
func toolVersion(tool string) string {
	out, err := exec.Command(tool, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}
