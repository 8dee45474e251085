// Package planner turns a classified, probed audio file into a FilePlan: the
// stream to decode, the PCM layout, and the encoder, muxer, bitrate and
// tag handling used when the normalized audio is written back. The ffmpeg
// package consumes the plan to build command lines.
package planner
