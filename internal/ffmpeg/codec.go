package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/backmassage/dbnorm/internal/audio"
	"github.com/backmassage/dbnorm/internal/planner"
)

// Tool runs decode and encode commands against one ffmpeg binary.
type Tool struct {
	Bin     string
	Verbose bool
}

// Decode reads the plan's audio stream into memory.
func (t Tool) Decode(ctx context.Context, plan *planner.FilePlan) (*audio.Segment, error) {
	var pcm bytes.Buffer
	res := Execute(ctx, BuildDecode(t.Bin, plan), nil, &pcm, t.Verbose)
	if res.Err != nil {
		return nil, CommandError("decode", res)
	}
	return audio.DecodeF32LE(pcm.Bytes(), plan.SampleRate, plan.Channels)
}

// Encode writes seg to plan.OutputPath using the current retry state. The
// caller inspects ExecResult.Stderr to decide whether to retry.
func (t Tool) Encode(ctx context.Context, plan *planner.FilePlan, rs *RetryState, seg *audio.Segment) ExecResult {
	return Execute(ctx, BuildEncode(t.Bin, t.Verbose, plan, rs), seg.Reader(), nil, t.Verbose)
}

// CommandError turns a failed ExecResult into an error carrying the last
// line of ffmpeg's stderr. Returns nil when res succeeded.
func CommandError(op string, res ExecResult) error {
	if res.Err == nil {
		return nil
	}
	if errors.Is(res.Err, context.Canceled) {
		return res.Err
	}
	if msg := LastLine(res.Stderr); msg != "" {
		return fmt.Errorf("%s failed: %s", op, msg)
	}
	return fmt.Errorf("%s failed: %w", op, res.Err)
}
