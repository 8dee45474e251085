package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/backmassage/dbnorm/internal/audio"
	"github.com/backmassage/dbnorm/internal/config"
	"github.com/backmassage/dbnorm/internal/display"
	"github.com/backmassage/dbnorm/internal/ffmpeg"
	"github.com/backmassage/dbnorm/internal/logging"
	"github.com/backmassage/dbnorm/internal/normalize"
	"github.com/backmassage/dbnorm/internal/planner"
	"github.com/backmassage/dbnorm/internal/tags"
)

// Runner processes a folder with a given Codec.
type Runner struct {
	cfg   *config.Config
	log   *logging.Logger
	codec Codec
	out   io.Writer // analysis table
}

// NewRunner returns a Runner that uses codec for all media work.
func NewRunner(cfg *config.Config, log *logging.Logger, codec Codec) *Runner {
	return &Runner{cfg: cfg, log: log, codec: codec, out: os.Stdout}
}

// Run is the top-level batch entry point using the ffmpeg-backed codec.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) []FileResult {
	return NewRunner(cfg, log, NewCodec(cfg)).Run(ctx)
}

// Run discovers files under cfg.Folder and processes each one in order.
// It returns one FileResult per discovered file that was reached before
// cancellation.
func (r *Runner) Run(ctx context.Context) []FileResult {
	log := r.log
	log.Info("Scanning '%s' for music files…", r.cfg.Folder)
	if r.cfg.DryRun {
		log.Info("Dry run: files will be measured but not rewritten")
	}

	files, err := Discover(r.cfg.Folder)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return nil
	}

	results := make([]FileResult, 0, len(files))
	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return results
		}
		results = append(results, r.processFile(ctx, path))
	}

	if ctx.Err() != nil {
		log.Warn("Interrupted")
		return results
	}
	log.Success("All done!")
	return results
}

// processFile handles one discovered file: classify → normalize → report.
// Each file's block of output ends with a blank separator line.
func (r *Runner) processFile(ctx context.Context, path string) FileResult {
	defer r.log.Blank()

	kind, ok := audio.Classify(path)
	if !ok {
		r.log.Info("File was not known audio file. Filename: %s", path)
		return FileResult{Path: path}
	}

	res := FileResult{Path: path, Kind: kind, Known: true}
	r.log.Info("Normalizing: %s", path)
	r.inspectTags(path, kind)

	if err := r.normalizeFile(ctx, path, kind, &res); err != nil {
		res.Outcome = normalize.Failed
		res.Err = err
		if ctx.Err() != nil {
			r.log.Warn(" → Interrupted, original left untouched")
		} else {
			r.log.Error(" → Error reading or processing file: %v", err)
		}
	}
	return res
}

// normalizeFile runs probe → plan → decode → measure → export for one file,
// filling res as it goes.
func (r *Runner) normalizeFile(ctx context.Context, path string, kind audio.Kind, res *FileResult) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	res.SizeBefore = fi.Size()

	// --- Probe and plan ---
	pr, err := r.codec.Probe(ctx, path)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	plan, err := planner.BuildPlan(r.cfg, kind, path, pr)
	if err != nil {
		return err
	}
	r.log.Debug("  %s, %d Hz, %d ch, bitrate %s → %s %s",
		plan.SourceCodec, plan.SampleRate, plan.Channels,
		display.FormatBitrateLabel(pr.AudioBitRate()/1000), plan.Encoder, bitrateOrDefault(plan.Bitrate))

	// --- Decode and measure ---
	seg, err := r.codec.Decode(ctx, plan)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	r.log.Debug("  Decoded %s of audio", seg.Duration().Round(time.Millisecond))
	m, err := normalize.MatchTarget(seg, r.cfg.TargetDBFS, r.cfg.ThresholdDBFS)
	res.Before, res.Delta = m.Before, m.Delta
	r.log.Info(" → Old dbfs: %s, delta: %s", display.FormatDB(m.Before), display.FormatDB(m.Delta))
	if err != nil {
		return err
	}

	if m.Outcome == normalize.Skipped {
		res.Outcome = normalize.Skipped
		r.log.Info(" → Nothing done. Target dBFS didn't differ that much from current dBFS")
		return nil
	}

	// --- Export ---
	if r.cfg.DryRun {
		res.Outcome = normalize.Applied
		res.After = m.After
		res.SizeAfter = res.SizeBefore
		r.log.Success(" → [DRY] Would apply %s (new dBFS: %s)", display.FormatGain(m.Delta), display.FormatDB(m.After))
		return nil
	}
	if err := r.export(ctx, plan, m.Audio); err != nil {
		return err
	}

	res.Outcome = normalize.Applied
	res.After = m.After
	if fi, err := os.Stat(path); err == nil {
		res.SizeAfter = fi.Size()
	}
	r.log.Success(" → Done (new dBFS: %s)", display.FormatDB(m.After))
	r.log.Debug("  Size: %s → %s (%s)",
		display.FormatBytes(res.SizeBefore), display.FormatBytes(res.SizeAfter),
		display.FormatBytesWithSign(res.SizeDelta()))
	return nil
}

// export encodes seg into a temp sibling of the original with the
// error-retry loop, then renames it over the original. The original is only
// touched by the final rename.
func (r *Runner) export(ctx context.Context, plan *planner.FilePlan, seg *audio.Segment) error {
	plan.OutputPath = tempPath(plan.InputPath)
	rs := ffmpeg.NewRetryState(plan)

	for {
		result := r.codec.Encode(ctx, plan, rs, seg)
		if result.Err == nil {
			break
		}
		os.Remove(plan.OutputPath)

		// Stop retrying if the context has been cancelled (e.g. SIGINT).
		if ctx.Err() != nil {
			return ctx.Err()
		}

		action := rs.Advance(result.Stderr)
		if action == ffmpeg.RetryNone {
			r.logStderr(result.Stderr)
			return ffmpeg.CommandError("encode", result)
		}
		r.log.Warn(" → Retry %d: %s", rs.Attempt, action)
	}

	if ctx.Err() != nil {
		os.Remove(plan.OutputPath)
		return ctx.Err()
	}
	return replaceFile(plan.OutputPath, plan.InputPath)
}

// inspectTags reads embedded tags for a verbose track label and warns when
// the content does not look like the extension claims.
func (r *Runner) inspectTags(path string, kind audio.Kind) {
	info, err := tags.Read(path)
	if err != nil {
		r.log.Debug("  Tags unreadable: %v", err)
		return
	}
	if !kind.MatchesFileType(info.FileType) {
		r.log.Warn(" → Content looks like %s, not %s", info.FileType, kind)
	}
	if label := info.Label(); label != "" {
		r.log.Debug("  Track: %s (%s tags)", label, info.Format)
	}
	if info.Album != "" {
		r.log.Debug("  Album: %s", info.Album)
	}
}

// logStderr writes the tail of ffmpeg's stderr at debug level.
func (r *Runner) logStderr(stderr string) {
	if stderr == "" || !r.log.Verbose() {
		return
	}
	r.log.Debug("  Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		r.log.Debug("    %s", l)
	}
}

func bitrateOrDefault(b string) string {
	if b == "" {
		return "(encoder default)"
	}
	return b
}
