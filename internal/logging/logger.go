// Package logging provides the leveled, optionally colored logger used by
// every other package. The printf-style API is backed by zap with a console
// encoder; an optional file sink mirrors everything written to the terminal.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/carvekit/carvepipe/internal/config"
	"github.com/carvekit/carvepipe/internal/term"
)

// Logger wraps a zap sugared logger behind the printf-style methods the rest
// of the codebase calls.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger configures terminal colors from cfg and builds the logger.
// When cfg.LogFile is set, log lines are also appended there with ANSI
// escapes stripped, so the file stays grep-friendly even when the terminal
// output is colored. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	} else if cfg.LogLevel != "" {
		if err := level.Set(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	if term.Enabled() {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), level),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}

		fenc := zap.NewDevelopmentEncoderConfig()
		fenc.EncodeTime = enc.EncodeTime
		fenc.EncodeLevel = zapcore.CapitalLevelEncoder

		// Success colors the message text itself, not just the level, so
		// the file sink scrubs escapes at write time.
		sink := zapcore.Lock(zapcore.AddSync(&ansiStripper{w: f}))
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fenc), sink, level))
	}

	zl := zap.New(zapcore.NewTee(cores...))
	return &Logger{sugar: zl.Sugar()}, nil
}

// ansiEscape matches SGR color sequences like "\x1b[1;92m".
var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// ansiStripper removes ANSI color sequences before writing. It reports the
// original length on success so zap's accounting stays consistent.
type ansiStripper struct {
	w io.Writer
}

func (s *ansiStripper) Write(p []byte) (int, error) {
	if _, err := s.w.Write(ansiEscape.ReplaceAll(p, nil)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Close flushes buffered log entries.
func (l *Logger) Close() error {
	// Sync on stdout returns EINVAL on some platforms; not actionable.
	_ = l.sugar.Sync()
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Success logs at INFO level with green highlighting when colors are active.
func (l *Logger) Success(format string, args ...interface{}) {
	l.sugar.Infof(term.Green+format+term.NC, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Debug logs at DEBUG level; suppressed unless the level allows it.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
