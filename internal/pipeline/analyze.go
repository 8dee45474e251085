package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/dbnorm/internal/audio"
	"github.com/backmassage/dbnorm/internal/config"
	"github.com/backmassage/dbnorm/internal/display"
	"github.com/backmassage/dbnorm/internal/logging"
	"github.com/backmassage/dbnorm/internal/normalize"
	"github.com/backmassage/dbnorm/internal/planner"
	"github.com/backmassage/dbnorm/internal/term"
)

// fileRow holds the measured per-file data for the analysis table.
type fileRow struct {
	Name   string
	Codec  string
	Kbps   int64
	DBFS   float64
	Delta  float64
	Action string // "apply" or "skip"
}

// Analyze measures every supported file with the ffmpeg-backed codec and
// prints a loudness report. Nothing is written.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) {
	NewRunner(cfg, log, NewCodec(cfg)).Analyze(ctx)
}

// Analyze discovers audio files, measures each one, and prints a tabular
// loudness report with statistical outlier highlighting on dBFS.
func (r *Runner) Analyze(ctx context.Context) {
	log := r.log
	files, err := Discover(r.cfg.Folder)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return
	}

	var audioFiles []string
	kinds := map[string]audio.Kind{}
	for _, p := range files {
		if k, ok := audio.Classify(p); ok {
			audioFiles = append(audioFiles, p)
			kinds[p] = k
		}
	}
	if len(audioFiles) == 0 {
		log.Warn("No music files found in %s", r.cfg.Folder)
		return
	}

	total := len(audioFiles)
	log.Info("Analyzing %d files in %s …", total, r.cfg.Folder)
	fmt.Fprintln(r.out)

	isTTY := r.out == os.Stdout && term.IsTerminal(os.Stdout)
	var rows []fileRow
	var skipped int
	var levels []float64

	for i, path := range audioFiles {
		if ctx.Err() != nil {
			if isTTY {
				clearProgress()
			}
			log.Warn("Interrupted")
			return
		}

		printProgress(isTTY, i+1, total, skipped, filepath.Base(path))

		row, err := r.measure(ctx, path, kinds[path])
		if err != nil {
			skipped++
			if isTTY {
				clearProgress()
			}
			log.Warn("Skip (%v): %s", err, filepath.Base(path))
			continue
		}
		rows = append(rows, row)
		levels = append(levels, row.DBFS)
	}

	if isTTY {
		clearProgress()
	}

	if len(rows) == 0 {
		log.Warn("No files could be measured")
		return
	}

	stats := computeStats(levels)
	r.printAnalysisTable(rows, stats)
	printAnalysisSummary(log, r.cfg, rows, stats)
}

// measure decodes one file and returns its table row.
func (r *Runner) measure(ctx context.Context, path string, kind audio.Kind) (fileRow, error) {
	pr, err := r.codec.Probe(ctx, path)
	if err != nil {
		return fileRow{}, errors.New("probe failed")
	}
	plan, err := planner.BuildPlan(r.cfg, kind, path, pr)
	if err != nil {
		return fileRow{}, err
	}
	seg, err := r.codec.Decode(ctx, plan)
	if err != nil {
		return fileRow{}, errors.New("decode failed")
	}
	m, err := normalize.MatchTarget(seg, r.cfg.TargetDBFS, r.cfg.ThresholdDBFS)
	if err != nil {
		return fileRow{}, err
	}

	name, err := filepath.Rel(r.cfg.Folder, path)
	if err != nil {
		name = filepath.Base(path)
	}
	action := "skip"
	if m.Outcome == normalize.Applied {
		action = "apply"
	}
	return fileRow{
		Name:   name,
		Codec:  plan.SourceCodec,
		Kbps:   pr.AudioBitRate() / 1000,
		DBFS:   m.Before,
		Delta:  m.Delta,
		Action: action,
	}, nil
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid || math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

func (r *Runner) printAnalysisTable(rows []fileRow, stats iqrBounds) {
	nameW := len("File")
	codecW := len("Codec")
	kbpsW := len("Bitrate")
	dbW := len("dBFS")
	deltaW := len("Delta")

	for _, row := range rows {
		nameW = max(nameW, len(row.Name))
		codecW = max(codecW, len(row.Codec))
		kbpsW = max(kbpsW, len(display.FormatBitrateLabel(row.Kbps)))
		dbW = max(dbW, len(display.FormatDB(row.DBFS)))
		deltaW = max(deltaW, len(display.FormatGain(row.Delta)))
	}

	if nameW > 50 {
		nameW = 50
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %-*s  %s",
		nameW, "File",
		codecW, "Codec",
		kbpsW, "Bitrate",
		dbW, "dBFS",
		deltaW, "Delta",
		"Action",
	)
	separator := "  " + strings.Repeat("─", len(header)-2)

	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out, separator)

	for _, row := range rows {
		name := row.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}

		class := stats.classify(row.DBFS)

		// Pad the plain text first, then wrap in ANSI color. This avoids
		// the alignment bug where %-*s counts escape bytes as visible width.
		dbCell := colorPad(display.FormatDB(row.DBFS), dbW, class)

		fmt.Fprintf(r.out, "  %-*s  %-*s  %-*s  %s  %-*s  %-6s %s\n",
			nameW, name,
			codecW, row.Codec,
			kbpsW, display.FormatBitrateLabel(row.Kbps),
			dbCell,
			deltaW, display.FormatGain(row.Delta),
			row.Action,
			formatFlag(class),
		)
	}
	fmt.Fprintln(r.out)
}

func printAnalysisSummary(log *logging.Logger, cfg *config.Config, rows []fileRow, stats iqrBounds) {
	var outliers, extremes, apply int
	for _, row := range rows {
		switch stats.classify(row.DBFS) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
		if row.Action == "apply" {
			apply++
		}
	}

	log.Info("Analyzed %d files", len(rows))
	log.Info("  %d would be adjusted toward %s dBFS (threshold %g dB), %d within threshold",
		apply, display.FormatDB(cfg.TargetDBFS), cfg.ThresholdDBFS, len(rows)-apply)
	if stats.valid {
		log.Info("  Loudness IQR: %.2f to %.2f dBFS (outlier < %.2f or > %.2f)",
			stats.q1, stats.q3, stats.outlierLo, stats.outlierHi)
	}
	if outliers > 0 {
		log.Outlier("  %d outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func formatFlag(flag string) string {
	switch flag {
	case "extreme":
		return term.Paint(term.Red, "[!]")
	case "outlier":
		return term.Paint(term.Orange, "[*]")
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then wraps in ANSI color. This
// ensures %-*s-style alignment works correctly regardless of escape sequences.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Paint(term.Red, padded)
	case "outlier":
		return term.Paint(term.Orange, padded)
	default:
		return padded
	}
}

// printProgress shows a live measurement counter. On a TTY it writes an
// inline \r-overwritten line; otherwise it is a no-op (the skip warnings
// already provide enough breadcrumbs in piped/logged output).
func printProgress(isTTY bool, current, total, skipped int, name string) {
	if !isTTY {
		return
	}
	pct := current * 100 / total
	status := fmt.Sprintf("  Measuring [%d/%d] %d%% ", current, total, pct)
	if skipped > 0 {
		status += fmt.Sprintf("(%d skipped) ", skipped)
	}

	maxName := 40
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}
	status += name

	// Pad to 80 chars to overwrite previous longer lines, then \r.
	if len(status) < 80 {
		status += strings.Repeat(" ", 80-len(status))
	}
	fmt.Fprintf(os.Stdout, "\r%s", status)
}

// clearProgress erases the inline progress line on a TTY.
func clearProgress() {
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
