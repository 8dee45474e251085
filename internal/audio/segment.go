package audio

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Segment is decoded audio: interleaved float32 samples in [-1, 1] full scale.
type Segment struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// NewSegment validates the layout and wraps samples without copying.
func NewSegment(samples []float32, sampleRate, channels int) (*Segment, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%d samples do not divide into %d channels", len(samples), channels)
	}
	return &Segment{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}

// ErrEmpty is returned when a decode produced no samples.
var ErrEmpty = errors.New("no audio samples decoded")

// Frames returns the number of sample frames (samples per channel).
func (s *Segment) Frames() int {
	if s.Channels == 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Duration is the playback length of the segment.
func (s *Segment) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(s.Frames()) / float64(s.SampleRate) * float64(time.Second))
}

// RMS is the root mean square over all samples of all channels.
func (s *Segment) RMS() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Samples {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(s.Samples)))
}

// DBFS is the average loudness relative to full scale: 20·log10(RMS).
// Digital silence returns -Inf.
func (s *Segment) DBFS() float64 {
	rms := s.RMS()
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}

// Peak is the largest absolute sample value.
func (s *Segment) Peak() float64 {
	var peak float64
	for _, v := range s.Samples {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

// GainFactor converts a gain in dB to a linear amplitude multiplier.
func GainFactor(db float64) float64 {
	return math.Pow(10, db/20)
}

// ApplyGain returns a new segment with every sample multiplied by
// GainFactor(db). Samples are not clipped; the encoder saturates values
// beyond full scale.
func (s *Segment) ApplyGain(db float64) *Segment {
	factor := GainFactor(db)
	out := make([]float32, len(s.Samples))
	for i, v := range s.Samples {
		out[i] = float32(float64(v) * factor)
	}
	return &Segment{Samples: out, SampleRate: s.SampleRate, Channels: s.Channels}
}
