// Package term holds the console colors shared by the log lines, the
// banner and the --analyze table.
//
// Every color is a plain string so callers can concatenate it directly. With
// colors off each one is "", and the output is plain text.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/dbnorm/internal/config"
)

// Console colors, set by Configure.
var (
	Red     string // errors, loud outliers
	Green   string // files written
	Yellow  string // warnings and retries
	Orange  string // quiet outliers
	Blue    string // info
	Cyan    string // debug
	Magenta string // banner
	NC      string // reset
)

// palette pairs each color variable with its escape sequence.
var palette = []struct {
	v   *string
	seq string
}{
	{&Red, "\033[1;91m"},
	{&Green, "\033[1;92m"},
	{&Yellow, "\033[1;93m"},
	{&Orange, "\033[1;38;5;208m"},
	{&Blue, "\033[1;94m"},
	{&Cyan, "\033[1;96m"},
	{&Magenta, "\033[1;95m"},
	{&NC, "\033[0m"},
}

// Configure turns the colors on or off for mode. With [config.ColorAuto]
// they are on only when stdout is a terminal, NO_COLOR is unset and TERM is
// not "dumb".
func Configure(mode config.ColorMode) {
	on := wantColor(mode)
	for _, c := range palette {
		if on {
			*c.v = c.seq
		} else {
			*c.v = ""
		}
	}
}

// Enabled reports whether colors are on.
func Enabled() bool { return NC != "" }

// Paint wraps s in color followed by a reset. An empty color returns s as is.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + NC
}

func wantColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is a character device. The analysis progress
// line is only drawn when stdout is one.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
