// Package ffmpeg builds ffmpeg command lines from a planner.FilePlan, runs
// them with stdin/stdout wired to PCM buffers, and classifies stderr for the
// export retry engine.
//
// Decoding always yields interleaved 32-bit float little-endian PCM at the
// source sample rate and channel count; encoding reads the same layout from
// stdin and takes tags and cover art from the original file as a second
// input. Retryable export failures (cover-art stream rejected by the muxer,
// metadata that cannot be written) are fixed one per attempt by
// [RetryState.Advance].
package ffmpeg
