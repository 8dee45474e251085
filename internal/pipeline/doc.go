// Package pipeline walks the music folder and runs each audio file through
// probe, plan, decode, measure, and (when needed) gain and re-encode, then
// replaces the original in place.
//
// Files are processed sequentially in lexical path order. Per-file failures
// are logged and recorded in the returned []FileResult; they never stop the
// run. Cancelling the context kills the in-flight ffmpeg process and stops
// the walk with the current original untouched.
package pipeline
