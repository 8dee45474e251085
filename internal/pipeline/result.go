package pipeline

import (
	"github.com/backmassage/dbnorm/internal/audio"
	"github.com/backmassage/dbnorm/internal/normalize"
)

// FileResult records what happened to one discovered file. Known is false
// for files whose extension is not a supported audio kind; those are never
// opened.
type FileResult struct {
	Path    string
	Kind    audio.Kind
	Known   bool
	Outcome normalize.Outcome
	Before  float64 // dBFS as measured
	Delta   float64 // target - Before
	After   float64 // dBFS of the written audio (Applied only)

	SizeBefore int64
	SizeAfter  int64

	Err error
}

// SizeDelta returns the byte growth of a rewritten file (negative when it
// shrank).
func (r FileResult) SizeDelta() int64 {
	return r.SizeAfter - r.SizeBefore
}

// Counts tallies results by outcome; unknown files are counted separately.
func Counts(results []FileResult) (applied, skipped, failed, unknown int) {
	for _, r := range results {
		if !r.Known {
			unknown++
			continue
		}
		switch r.Outcome {
		case normalize.Applied:
			applied++
		case normalize.Skipped:
			skipped++
		case normalize.Failed:
			failed++
		}
	}
	return
}
