// Package audio holds the in-memory side of normalization: the extension
// classifier that maps a filename to a supported kind, and Segment, a decoded
// interleaved float32 PCM buffer with loudness measurement and gain.
//
// Decoding and encoding themselves run through ffmpeg (package ffmpeg);
// samples cross the process boundary as little-endian f32 PCM.
package audio
