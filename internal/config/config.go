// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation. Defaults match the reference
// content_aware_scale behavior (batch size 32, progress.txt, scale 1.0).
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid from the environment and a YAML file, and then mutated
// by [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputPath  string `env:"-" yaml:"input"`
	OutputPath string `env:"-" yaml:"output"`

	// Scaling factors applied per frame. 1.0 keeps the dimension unchanged.
	ScaleX float64 `env:"CARVEPIPE_SCALE_X" yaml:"scale_x"`
	ScaleY float64 `env:"CARVEPIPE_SCALE_Y" yaml:"scale_y"`

	// Pipeline tuning.
	BatchSize int `env:"CARVEPIPE_BATCH_SIZE" yaml:"batch_size"` // Default: 32. Env/file only, not a flag.
	Workers   int `env:"CARVEPIPE_WORKERS" yaml:"workers"`       // Default: runtime.NumCPU().

	// Progress reporting.
	ProgressFile string `env:"CARVEPIPE_PROGRESS_FILE" yaml:"progress_file"` // Default: "progress.txt".
	ShowBar      bool   `env:"-" yaml:"show_bar"`                            // Terminal progress bar. Cleared by --no-bar.

	// Observability.
	MetricsAddr string `env:"CARVEPIPE_METRICS_ADDR" yaml:"metrics_addr"` // Optional Prometheus listen address.

	// Display and logging.
	Verbose   bool      `env:"-" yaml:"verbose"`
	ColorMode ColorMode `env:"CARVEPIPE_COLOR" yaml:"color"` // Default: "auto".
	LogFile   string    `env:"CARVEPIPE_LOG_FILE" yaml:"log_file"`
	LogLevel  string    `env:"CARVEPIPE_LOG_LEVEL" yaml:"log_level"` // Default: "info".
	CheckOnly bool      `env:"-" yaml:"-"`                           // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the reference
// behavior. Used as the base before env, file, and CLI overrides apply.
func DefaultConfig() Config {
	return Config{
		ScaleX:       1.0,
		ScaleY:       1.0,
		BatchSize:    32,
		Workers:      runtime.NumCPU(),
		ProgressFile: "progress.txt",
		ShowBar:      true,
		Verbose:      false,
		ColorMode:    ColorAuto,
		LogLevel:     "info",
	}
}

// ApplyEnv overlays CARVEPIPE_* environment variables onto cfg. Unset
// variables leave existing values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate checks scale factors, worker/batch counts, and the color enum.
// When not in CheckOnly mode, it also requires input and output paths.
func (c *Config) Validate() error {
	if c.ScaleX <= 0 || c.ScaleY <= 0 {
		return errors.New("scale factors must be positive")
	}
	if c.ScaleX > 10 || c.ScaleY > 10 {
		return fmt.Errorf("scale factor too large (%.2fx%.2f, max 10.0)", c.ScaleX, c.ScaleY)
	}
	if c.BatchSize < 1 {
		return errors.New("batch size must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("worker count must be at least 1")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.ProgressFile == "" {
		return errors.New("progress file path must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" || c.OutputPath == "" {
		return errors.New("need exactly input_video and output_video")
	}
	if c.InputPath == c.OutputPath {
		return errors.New("output path must differ from input path")
	}
	return nil
}
