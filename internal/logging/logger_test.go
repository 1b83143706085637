package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carvekit/carvepipe/internal/config"
)

func TestNewLogger_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever

	log, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer log.Close()

	// Smoke: none of these may panic.
	log.Info("info %d", 1)
	log.Success("done")
	log.Warn("warn")
	log.Debug("suppressed at info level")
}

func TestNewLogger_FileSink(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "run.log")

	log, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("hello")
	log.Close()
}

func TestNewLogger_FileSinkStripsColor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorAlways
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	log, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Success("wrote %d frames", 42)
	log.Close()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "\x1b") {
		t.Errorf("log file contains ANSI escapes: %q", data)
	}
	if !strings.Contains(string(data), "wrote 42 frames") {
		t.Errorf("log file missing message, got %q", data)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "loud"
	if _, err := NewLogger(&cfg); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error("dropped")
	if err := log.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
