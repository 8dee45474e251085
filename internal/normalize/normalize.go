// Package normalize holds the loudness policy: given a decoded segment, a
// target level and a skip threshold, decide whether the file needs gain and
// produce the gain-adjusted audio when it does.
package normalize

import (
	"errors"
	"math"

	"github.com/backmassage/dbnorm/internal/audio"
)

// Outcome is the per-file normalization result.
type Outcome int

const (
	Skipped Outcome = iota // Loudness already within threshold of target.
	Applied                // Gain applied; Result.Audio holds the new audio.
	Failed                 // Decode, measure or encode failed.
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrSilent is returned for digital silence, whose loudness is -Inf and
// cannot be brought to any finite target by gain.
var ErrSilent = errors.New("audio is silent; loudness is undefined")

// Result describes the decision for one segment. Audio is nil unless
// Outcome is Applied.
type Result struct {
	Outcome Outcome
	Before  float64 // measured loudness, dBFS
	Delta   float64 // target - Before, dB
	After   float64 // loudness of Audio; equals Before when skipped
	Audio   *audio.Segment
}

// NeedsGain reports whether a loudness delta warrants processing. The skip
// window is the open interval (-threshold, threshold): a delta exactly equal
// to ±threshold is processed.
func NeedsGain(delta, threshold float64) bool {
	return !(delta > -threshold && delta < threshold)
}

// MatchTarget measures seg and, when the delta to target falls outside the
// skip window, returns a copy of seg with a uniform gain of exactly
// target - loudness dB applied.
func MatchTarget(seg *audio.Segment, target, threshold float64) (Result, error) {
	before := seg.DBFS()
	if math.IsInf(before, -1) {
		return Result{Outcome: Failed, Before: before, Delta: math.Inf(1)}, ErrSilent
	}

	delta := target - before
	if !NeedsGain(delta, threshold) {
		return Result{Outcome: Skipped, Before: before, Delta: delta, After: before}, nil
	}

	out := seg.ApplyGain(delta)
	return Result{
		Outcome: Applied,
		Before:  before,
		Delta:   delta,
		After:   out.DBFS(),
		Audio:   out,
	}, nil
}
