package pipeline

import (
	"context"

	"github.com/backmassage/dbnorm/internal/audio"
	"github.com/backmassage/dbnorm/internal/config"
	"github.com/backmassage/dbnorm/internal/ffmpeg"
	"github.com/backmassage/dbnorm/internal/planner"
	"github.com/backmassage/dbnorm/internal/probe"
)

// Codec is the media backend the runner drives: stream inspection, decode
// to PCM, and encode from PCM to plan.OutputPath.
type Codec interface {
	Probe(ctx context.Context, path string) (*probe.ProbeResult, error)
	Decode(ctx context.Context, plan *planner.FilePlan) (*audio.Segment, error)
	Encode(ctx context.Context, plan *planner.FilePlan, rs *ffmpeg.RetryState, seg *audio.Segment) ffmpeg.ExecResult
}

// NewCodec returns the ffmpeg/ffprobe-backed Codec configured by cfg.
func NewCodec(cfg *config.Config) Codec {
	return &execCodec{
		ffprobe: cfg.FFprobeBin,
		tool:    ffmpeg.Tool{Bin: cfg.FFmpegBin, Verbose: cfg.Verbose},
	}
}

type execCodec struct {
	ffprobe string
	tool    ffmpeg.Tool
}

func (c *execCodec) Probe(ctx context.Context, path string) (*probe.ProbeResult, error) {
	return probe.Probe(ctx, c.ffprobe, path)
}

func (c *execCodec) Decode(ctx context.Context, plan *planner.FilePlan) (*audio.Segment, error) {
	return c.tool.Decode(ctx, plan)
}

func (c *execCodec) Encode(ctx context.Context, plan *planner.FilePlan, rs *ffmpeg.RetryState, seg *audio.Segment) ffmpeg.ExecResult {
	return c.tool.Encode(ctx, plan, rs, seg)
}
