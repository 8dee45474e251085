package planner

import "github.com/backmassage/dbnorm/internal/audio"

// FilePlan holds the decisions for decoding and re-encoding one file. It is
// produced by BuildPlan and consumed by the ffmpeg package and by the retry
// engine for its initial state.
type FilePlan struct {
	Kind audio.Kind

	// Input side.
	InputPath    string
	DecodeFormat string // demuxer hint, e.g. "mp3", "m4a"
	StreamIndex  int    // absolute ffprobe stream index of the audio to normalize
	SourceCodec  string

	// PCM layout shared by decode and encode.
	SampleRate int
	Channels   int

	// Output side.
	OutputPath    string   // set by the pipeline to a temp file next to InputPath
	Encoder       string   // "libmp3lame", "aac", or "alac"
	Format        string   // muxer, e.g. "mp3", "ipod"
	Bitrate       string   // e.g. "192k"; empty means encoder default
	ContainerOpts []string // e.g. -id3v2_version 3, -movflags +faststart

	// Retry initial state.
	IncludeCover bool
	KeepMetadata bool
}
