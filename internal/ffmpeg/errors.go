package ffmpeg

import (
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg stderr output into retryable
// error categories. Checked in order by [RetryState.Advance]; the first
// matching pattern whose fix has not yet been applied wins.
var (
	reCoverArtIssue = regexp.MustCompile(
		`(?i)Could not find tag for codec \w+ in stream #\d+|` +
			`codec not currently supported in container|` +
			`Attached picture .* not supported|` +
			`Error initializing output stream .*:1|` +
			`Unsupported codec id in stream 1|` +
			`Frame size of the attached picture`)

	reMetadataIssue = regexp.MustCompile(
		`(?i)Could not write header|` +
			`Error writing (ID3|id3v2) tag|` +
			`Invalid metadata|` +
			`Metadata .* too (long|large)`)
)

// MatchCoverArtIssue reports whether stderr shows the muxer rejecting the
// embedded picture stream.
func MatchCoverArtIssue(stderr string) bool {
	return reCoverArtIssue.MatchString(stderr)
}

// MatchMetadataIssue reports whether stderr shows a header or tag write
// failure.
func MatchMetadataIssue(stderr string) bool {
	return reMetadataIssue.MatchString(stderr)
}

// LastLine returns the last non-empty line of ffmpeg stderr, used as the
// one-line error message for a failed file.
func LastLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
