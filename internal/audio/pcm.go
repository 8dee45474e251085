package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// BytesPerSample is the width of one f32le sample on the wire.
const BytesPerSample = 4

// DecodeF32LE parses raw little-endian float32 PCM into a Segment.
func DecodeF32LE(data []byte, sampleRate, channels int) (*Segment, error) {
	if len(data)%BytesPerSample != 0 {
		return nil, fmt.Errorf("truncated PCM: %d bytes is not a multiple of %d", len(data), BytesPerSample)
	}
	n := len(data) / BytesPerSample
	if n == 0 {
		return nil, ErrEmpty
	}
	// ffmpeg can end on a partial frame when a stream is cut short.
	if channels > 0 {
		n -= n % channels
	}
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*BytesPerSample:]))
	}
	return NewSegment(samples, sampleRate, channels)
}

// Reader streams the segment as f32le PCM, for feeding an encoder's stdin
// without materializing a second copy of the audio.
func (s *Segment) Reader() io.Reader {
	return &pcmReader{samples: s.Samples}
}

type pcmReader struct {
	samples []float32
	pos     int    // next sample
	pending []byte // bytes of a sample split across Read calls
}

func (r *pcmReader) Read(p []byte) (int, error) {
	n := 0
	if len(r.pending) > 0 {
		c := copy(p, r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	for n < len(p) && r.pos < len(r.samples) {
		var buf [BytesPerSample]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(r.samples[r.pos]))
		r.pos++
		c := copy(p[n:], buf[:])
		n += c
		if c < BytesPerSample {
			r.pending = append(r.pending[:0], buf[c:]...)
		}
	}
	if n == 0 && r.pos >= len(r.samples) && len(r.pending) == 0 {
		return 0, io.EOF
	}
	return n, nil
}
