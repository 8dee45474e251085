// Package probe provides ffprobe-based inspection of audio files: one JSON
// call per file yields the container format, the audio streams and whether
// an attached cover picture is present.
package probe
