package ffmpeg

import "github.com/backmassage/dbnorm/internal/planner"

// RetryAction identifies which fix was applied (or none).
type RetryAction int

const (
	RetryNone         RetryAction = iota
	RetryDropCover                // Stop mapping the attached picture.
	RetryDropMetadata             // Stop copying tags (-map_metadata -1).
)

const maxAttempts = 3

// String returns a short label for log lines.
func (a RetryAction) String() string {
	switch a {
	case RetryDropCover:
		return "skip cover art"
	case RetryDropMetadata:
		return "skip tags"
	default:
		return "none"
	}
}

// RetryState tracks which fallback fixes have been applied across export
// attempts for a single file.
type RetryState struct {
	Attempt     int
	MaxAttempts int

	IncludeCover bool
	KeepMetadata bool
}

// NewRetryState initializes a RetryState from the plan's initial values.
func NewRetryState(plan *planner.FilePlan) *RetryState {
	return &RetryState{
		MaxAttempts:  maxAttempts,
		IncludeCover: plan.IncludeCover,
		KeepMetadata: plan.KeepMetadata,
	}
}

// Advance inspects stderr from a failed export, finds the first matching
// error pattern whose fix has not yet been applied, applies that fix, and
// returns the action taken. Returns RetryNone when no fixable pattern matches
// or the attempt limit is reached.
//
// Pattern evaluation order: cover art → metadata. Only one fix is applied
// per call.
func (s *RetryState) Advance(stderr string) RetryAction {
	s.Attempt++
	if s.Attempt >= s.MaxAttempts {
		return RetryNone
	}

	if s.IncludeCover && MatchCoverArtIssue(stderr) {
		s.IncludeCover = false
		return RetryDropCover
	}
	if s.KeepMetadata && MatchMetadataIssue(stderr) {
		s.KeepMetadata = false
		return RetryDropMetadata
	}

	return RetryNone
}
