package display

import (
	"fmt"
	"io"

	"github.com/backmassage/dbnorm/internal/term"
)

// PrintBanner writes the ASCII art banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `     _ _
  __| | |__  _ __   ___  _ __ _ __ ___
 / _`+"`"+` | '_ \| '_ \ / _ \| '__| '_ `+"`"+` _ \
| (_| | |_) | | | | (_) | |  | | | | | |
 \__,_|_.__/|_| |_|\___/|_|  |_| |_| |_|
`)
	if term.Enabled() {
		fmt.Fprint(w, term.NC)
	}
	fmt.Fprintln(w)
}
