package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/dbnorm/internal/planner"
)

const (
	pcmFormat = "f32le"
	pcmCodec  = "pcm_f32le"
)

// BuildDecode constructs the ffmpeg argument slice that decodes the plan's
// audio stream to raw PCM on stdout.
func BuildDecode(bin string, plan *planner.FilePlan) []string {
	args := make([]string, 0, 24)
	args = append(args, bin, "-hide_banner", "-nostdin", "-loglevel", "error")

	if plan.DecodeFormat != "" {
		args = append(args, "-f", plan.DecodeFormat)
	}
	args = append(args, "-i", plan.InputPath)

	args = append(args,
		"-map", fmt.Sprintf("0:%d", plan.StreamIndex),
		"-vn", "-sn", "-dn",
		"-f", pcmFormat,
		"-acodec", pcmCodec,
		"-ac", strconv.Itoa(plan.Channels),
		"-ar", strconv.Itoa(plan.SampleRate),
		"pipe:1",
	)
	return args
}

// BuildEncode constructs the ffmpeg argument slice that reads raw PCM from
// stdin and writes plan.OutputPath. The original file is a second input used
// only for tags and cover art; rs decides whether those are carried over.
//
// Skeleton:
//
//	ffmpeg -y -f f32le -ar R -ac N -i pipe:0 -i ORIGINAL
//	       -map 0:a [-map 1:v? -c:v copy -disposition:v attached_pic]
//	       -map_metadata 1|-1 -c:a ENC [-b:a X] [container opts] -f MUXER OUT
func BuildEncode(bin string, verbose bool, plan *planner.FilePlan, rs *RetryState) []string {
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, bin, "-hide_banner", "-nostdin", "-y")
	if verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Inputs ---
	args = append(args,
		"-f", pcmFormat,
		"-ar", strconv.Itoa(plan.SampleRate),
		"-ac", strconv.Itoa(plan.Channels),
		"-i", "pipe:0",
	)
	tagSource := rs.IncludeCover || rs.KeepMetadata
	if tagSource {
		args = append(args, "-i", plan.InputPath)
	}

	// --- Stream maps ---
	args = append(args, "-map", "0:a")
	if rs.IncludeCover {
		args = append(args,
			"-map", "1:v?",
			"-c:v", "copy",
			"-disposition:v", "attached_pic",
		)
	}
	if rs.KeepMetadata {
		args = append(args, "-map_metadata", "1")
	} else {
		args = append(args, "-map_metadata", "-1")
	}
	args = append(args, "-map_chapters", "-1")

	// --- Audio codec ---
	args = append(args, "-c:a", plan.Encoder)
	if plan.Bitrate != "" {
		args = append(args, "-b:a", plan.Bitrate)
	}

	// --- Container ---
	args = append(args, plan.ContainerOpts...)
	args = append(args, "-f", plan.Format, plan.OutputPath)
	return args
}
