package planner

import (
	"errors"
	"fmt"

	"github.com/backmassage/dbnorm/internal/audio"
	"github.com/backmassage/dbnorm/internal/config"
	"github.com/backmassage/dbnorm/internal/probe"
)

// ErrNoAudioStream is returned when ffprobe found no audio stream.
var ErrNoAudioStream = errors.New("no audio stream found")

// BuildPlan produces a FilePlan from config, the classified kind and probe
// data.
//
// Flow:
//  1. Pick the primary audio stream and its PCM layout
//  2. Choose encoder and muxer from the kind (ALAC stays ALAC)
//  3. Resolve the export bitrate (override > source > encoder default)
//  4. Decide tag and cover-art carry-over, container opts
func BuildPlan(cfg *config.Config, kind audio.Kind, path string, pr *probe.ProbeResult) (*FilePlan, error) {
	a := pr.PrimaryAudio()
	if a == nil {
		return nil, ErrNoAudioStream
	}
	if a.SampleRate <= 0 || a.Channels <= 0 {
		return nil, fmt.Errorf("unknown audio layout (%d Hz, %d channels)", a.SampleRate, a.Channels)
	}

	plan := &FilePlan{
		Kind:         kind,
		InputPath:    path,
		DecodeFormat: kind.DecodeFormat(),
		StreamIndex:  a.Index,
		SourceCodec:  a.Codec,
		SampleRate:   a.SampleRate,
		Channels:     a.Channels,
		Encoder:      kind.Encoder(a.Codec),
		Format:       kind.ExportFormat(),
		KeepMetadata: cfg.KeepTags,
		IncludeCover: cfg.KeepTags && pr.HasCoverArt && kind.SupportsCoverArt(),
	}

	plan.Bitrate = ResolveBitrate(cfg, plan.Encoder, pr.AudioBitRate())

	switch kind {
	case audio.KindMP3:
		plan.ContainerOpts = []string{"-id3v2_version", "3"}
	case audio.KindM4A:
		plan.ContainerOpts = []string{"-movflags", "+faststart"}
	}
	return plan, nil
}
