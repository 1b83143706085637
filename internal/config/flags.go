package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into scaling, pipeline, progress, display, and utility.
// Negated flags (e.g. --no-bar) are applied after Parse so Config defaults
// hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// Version is shown in the banner, --version and help; override at build time
// with -ldflags "-X github.com/carvekit/carvepipe/internal/config.Version=...".
var Version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing positional
// args, unreadable config file).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("carvepipe", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: captured then applied after Parse, so that
	// defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags
	var configFile string

	defineScalingFlags(fs, cfg)
	definePipelineFlags(fs, cfg)
	defineProgressFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated, &configFile)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if configFile != "" {
		if err := LoadFile(cfg, configFile); err != nil {
			return err
		}
		// Re-parse so explicit flags win over config file values.
		if err := fs.Parse(os.Args[1:]); err != nil {
			return err
		}
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "carvepipe v"+Version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noBar -> ShowBar=false) or trigger
// exit (showHelp, showVersion).
type negatedFlags struct {
	noBar       bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineScalingFlags registers --scale-x and --scale-y.
func defineScalingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.ScaleX, "scale-x", cfg.ScaleX, "Width scaling factor")
	fs.Float64Var(&cfg.ScaleX, "x", cfg.ScaleX, "Same as --scale-x")
	fs.Float64Var(&cfg.ScaleY, "scale-y", cfg.ScaleY, "Height scaling factor")
	fs.Float64Var(&cfg.ScaleY, "y", cfg.ScaleY, "Same as --scale-y")
}

// definePipelineFlags registers --workers and --metrics-addr.
func definePipelineFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel transform workers")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9090)")
}

// defineProgressFlags registers --progress-file and --no-bar.
func defineProgressFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.ProgressFile, "progress-file", cfg.ProgressFile, "Path to the progress percentage file")
	fs.StringVar(&cfg.ProgressFile, "p", cfg.ProgressFile, "Same as --progress-file")
	fs.BoolVar(&n.noBar, "no-bar", false, "Disable the terminal progress bar")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags, configFile *string) {
	fs.StringVar(configFile, "config", "", "Load settings from a YAML file")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noBar {
		cfg.ShowBar = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputPath and OutputPath from the two positional
// args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_video and output_video")
	}
	cfg.InputPath = args[0]
	cfg.OutputPath = args[1]
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "carvepipe v" + Version + " - content-aware video scaler"},
		{"", ""},
		{"  carvepipe [OPTIONS] <input_video> <output_video>", ""},
		{"", ""},
		{"Scaling", ""},
		{"  -x, --scale-x <factor>", "Width scaling factor (default: 1.0)"},
		{"  -y, --scale-y <factor>", "Height scaling factor (default: 1.0)"},
		{"", ""},
		{"Pipeline", ""},
		{"  -w, --workers <n>", "Parallel transform workers (default: CPU count)"},
		{"  --metrics-addr <addr>", "Serve Prometheus metrics (e.g. :9090)"},
		{"", ""},
		{"Progress", ""},
		{"  -p, --progress-file <path>", "Progress percentage file (default: progress.txt)"},
		{"  --no-bar", "Disable the terminal progress bar"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "Load settings from a YAML file"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
