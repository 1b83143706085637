package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "in.mp4"
	cfg.OutputPath = "out.mp4"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BatchSize != 32 {
		t.Errorf("BatchSize = %d, want 32", cfg.BatchSize)
	}
	if cfg.ScaleX != 1.0 || cfg.ScaleY != 1.0 {
		t.Errorf("scale = %vx%v, want 1.0x1.0", cfg.ScaleX, cfg.ScaleY)
	}
	if cfg.ProgressFile != "progress.txt" {
		t.Errorf("ProgressFile = %q, want progress.txt", cfg.ProgressFile)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero scale x", func(c *Config) { c.ScaleX = 0 }, true},
		{"negative scale y", func(c *Config) { c.ScaleY = -0.5 }, true},
		{"huge scale", func(c *Config) { c.ScaleX = 11 }, true},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"bad color mode", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"empty progress path", func(c *Config) { c.ProgressFile = "" }, true},
		{"missing input", func(c *Config) { c.InputPath = "" }, true},
		{"same in and out", func(c *Config) { c.OutputPath = c.InputPath }, true},
		{"check only skips paths", func(c *Config) { c.InputPath = ""; c.CheckOnly = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CARVEPIPE_SCALE_X", "0.5")
	t.Setenv("CARVEPIPE_BATCH_SIZE", "16")
	t.Setenv("CARVEPIPE_PROGRESS_FILE", "/tmp/p.txt")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.ScaleX != 0.5 {
		t.Errorf("ScaleX = %v, want 0.5", cfg.ScaleX)
	}
	if cfg.BatchSize != 16 {
		t.Errorf("BatchSize = %d, want 16", cfg.BatchSize)
	}
	if cfg.ProgressFile != "/tmp/p.txt" {
		t.Errorf("ProgressFile = %q", cfg.ProgressFile)
	}
	// Untouched fields keep defaults.
	if cfg.ScaleY != 1.0 {
		t.Errorf("ScaleY = %v, want 1.0", cfg.ScaleY)
	}
}

func TestApplyEnv_BadValue(t *testing.T) {
	t.Setenv("CARVEPIPE_BATCH_SIZE", "lots")
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("expected error for non-numeric batch size")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carvepipe.yaml")
	data := "scale_x: 0.75\nworkers: 2\nprogress_file: run/progress.txt\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.ScaleX != 0.75 {
		t.Errorf("ScaleX = %v, want 0.75", cfg.ScaleX)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.ProgressFile != "run/progress.txt" {
		t.Errorf("ProgressFile = %q", cfg.ProgressFile)
	}
	// Keys absent from the file keep their values.
	if cfg.BatchSize != 32 {
		t.Errorf("BatchSize = %d, want 32", cfg.BatchSize)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("scale_x: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestUsageShowsVersion(t *testing.T) {
	old := Version
	Version = "9.9.9-test"
	defer func() { Version = old }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stderr := os.Stderr
	os.Stderr = w
	printUsage(nil)
	os.Stderr = stderr
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "carvepipe v9.9.9-test") {
		t.Errorf("usage text missing version, got:\n%s", out)
	}
}
