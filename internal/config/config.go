// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Threshold bounds. The skip threshold is a whole number of dB in this range.
const (
	ThresholdMin = 1
	ThresholdMax = 100
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Root folder (positional arg).
	Folder string

	// Normalization policy.
	TargetDBFS    float64 // Default: -20.0.
	ThresholdDBFS float64 // Default: 1. Whole number in [1,100].

	// Export settings.
	Bitrate  string // Optional override, canonical "<n>k". Empty keeps the source bitrate.
	KeepTags bool   // Default: true. Cleared by --no-tags.

	// Behavior flags.
	DryRun  bool
	Analyze bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// Toolchain binaries (not user-configurable).
	FFmpegBin  string
	FFprobeBin string
}

// DefaultConfig returns a Config with the documented defaults. Used as the
// base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		TargetDBFS:    -20.0,
		ThresholdDBFS: 1,
		KeepTags:      true,
		ColorMode:     ColorAuto,
		FFmpegBin:     "ffmpeg",
		FFprobeBin:    "ffprobe",
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the normalization policy and export settings. When not in
// CheckOnly mode, it also requires a folder argument.
func (c *Config) Validate() error {
	if math.IsNaN(c.TargetDBFS) || math.IsInf(c.TargetDBFS, 0) {
		return errors.New("target dBFS must be a finite number")
	}
	if err := ValidateThreshold(c.ThresholdDBFS); err != nil {
		return err
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", c.ColorMode)
	}

	if c.Bitrate != "" {
		b, err := normalizeAudioBitrate(c.Bitrate)
		if err != nil {
			return err
		}
		c.Bitrate = b
	}

	if c.CheckOnly {
		return nil
	}
	if c.Folder == "" {
		return errors.New("need exactly one folder argument")
	}
	return nil
}

// ValidateThreshold accepts whole numbers in [ThresholdMin, ThresholdMax].
func ValidateThreshold(v float64) error {
	if math.IsNaN(v) || v != math.Trunc(v) || v < ThresholdMin || v > ThresholdMax {
		return fmt.Errorf("invalid threshold %v (choose a whole number from %d to %d)", v, ThresholdMin, ThresholdMax)
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "256", "256k", "256K", "256kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 192k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
