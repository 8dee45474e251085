package planner

import (
	"fmt"

	"github.com/backmassage/dbnorm/internal/config"
)

// Encoder bitrate ranges in kbps. Source rates outside the range are clamped
// so ffmpeg never rejects the value.
var bitrateLimits = map[string][2]int64{
	"libmp3lame": {32, 320},
	"aac":        {16, 512},
}

// ResolveBitrate picks the export bitrate for encoder.
//
//   - Lossless encoders (no entry in bitrateLimits) → "" (no -b:a).
//   - --bitrate override → used as is.
//   - Known source bitrate → rounded to whole kbps and clamped.
//   - Unknown source bitrate (0) → "" (encoder default).
func ResolveBitrate(cfg *config.Config, encoder string, sourceBitsPerSec int64) string {
	limits, lossy := bitrateLimits[encoder]
	if !lossy {
		return ""
	}
	if cfg.Bitrate != "" {
		return cfg.Bitrate
	}
	if sourceBitsPerSec <= 0 {
		return ""
	}
	kbps := Clamp((sourceBitsPerSec+500)/1000, limits[0], limits[1])
	return fmt.Sprintf("%dk", kbps)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
