package config

// This file implements CLI flag parsing and help text.
// Flags may appear before or after the folder argument; parsing resumes after
// each positional so "dbnorm ~/Music --target-dbfs -18" works.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, invalid threshold, missing folder).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("dbnorm", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineNormalizeFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "dbnorm v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(positional, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noTags      bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineNormalizeFlags registers --target-dbfs and --threshold-dBFS.
func defineNormalizeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.TargetDBFS, "target-dbfs", cfg.TargetDBFS, "Target loudness in dBFS")
	fs.Var(&thresholdValue{&cfg.ThresholdDBFS}, "threshold-dBFS", "Skip threshold in dB (1-100)")
	fs.Var(&thresholdValue{&cfg.ThresholdDBFS}, "threshold-dbfs", "Same as --threshold-dBFS")
}

// defineBehaviorFlags registers dry-run, analyze, bitrate and tag handling.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Measure and decide only; never overwrite files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.Analyze, "analyze", false, "Print a loudness report and exit")
	fs.BoolVar(&cfg.Analyze, "a", false, "Same as --analyze")
	fs.StringVar(&cfg.Bitrate, "bitrate", cfg.Bitrate, "Export bitrate (default: keep source bitrate)")
	fs.StringVar(&cfg.Bitrate, "b", cfg.Bitrate, "Same as --bitrate")
	fs.BoolVar(&n.noTags, "no-tags", false, "Do not carry tags and cover art into rewritten files")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// parseInterspersed parses flags, collecting positional args wherever they
// appear. The standard flag package stops at the first non-flag argument.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noTags {
		cfg.KeepTags = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets Folder from the single positional arg when not in CheckOnly mode.
func parsePositionalArgs(args []string, cfg *Config) error {
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one folder argument (got %d)", len(args))
	}
	cfg.Folder = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "dbnorm v" + version + ": in-place loudness normalizer for MP3/M4A libraries"},
		{"", ""},
		{"  dbnorm [OPTIONS] <folder>", ""},
		{"", ""},
		{"Normalization", ""},
		{"  --target-dbfs <float>", "Target loudness in dBFS (default: -20.0)"},
		{"  --threshold-dBFS <n>", "Skip files within n dB of the target (default: 1, min 1, max 100)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "Measure and decide only; never overwrite files"},
		{"  -a, --analyze", "Print a loudness report table and exit"},
		{"  -b, --bitrate <kbps>", "Export bitrate (default: keep source bitrate)"},
		{"  --no-tags", "Do not carry tags and cover art into rewritten files"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, MP3/AAC encoders)"},
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

// flag.Value adapter for the bounded skip threshold.

type thresholdValue struct{ p *float64 }

func (t *thresholdValue) String() string {
	if t.p == nil {
		return ""
	}
	return strconv.FormatFloat(*t.p, 'g', -1, 64)
}

func (t *thresholdValue) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("threshold must be a number (got %q)", s)
	}
	if err := ValidateThreshold(v); err != nil {
		return err
	}
	*t.p = v
	return nil
}
