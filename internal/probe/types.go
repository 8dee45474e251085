package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
	Tags       map[string]string
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index         int
	Codec         string
	Channels      int
	ChannelLayout string
	SampleRate    int
	BitRate       int64
	IsDefault     bool
}

// ProbeResult is the fully parsed output of a single ffprobe JSON call.
type ProbeResult struct {
	Format       FormatInfo
	AudioStreams []AudioStream
	HasCoverArt  bool // an attached_pic video stream is present
}

// PrimaryAudio returns the default audio stream, else the first one, or nil
// when the file has no audio.
func (p *ProbeResult) PrimaryAudio() *AudioStream {
	for i := range p.AudioStreams {
		if p.AudioStreams[i].IsDefault {
			return &p.AudioStreams[i]
		}
	}
	if len(p.AudioStreams) > 0 {
		return &p.AudioStreams[0]
	}
	return nil
}

// AudioBitRate returns the primary audio stream bitrate in bits/sec,
// falling back to the format-level bitrate when the stream value is
// unavailable or zero. Cover art makes the format-level rate an
// overestimate, so the fallback is skipped in that case.
func (p *ProbeResult) AudioBitRate() int64 {
	if a := p.PrimaryAudio(); a != nil && a.BitRate > 0 {
		return a.BitRate
	}
	if p.HasCoverArt {
		return 0
	}
	return p.Format.BitRate
}
