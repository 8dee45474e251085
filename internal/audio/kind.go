package audio

import (
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Kind is one of the supported audio file kinds.
type Kind int

const (
	KindMP3 Kind = iota + 1
	KindM4A
)

var extensionKinds = map[string]Kind{
	".mp3": KindMP3,
	".m4a": KindM4A,
}

// Classify maps a filename's extension (case-insensitive) to a Kind.
// Unknown extensions report ok == false.
func Classify(name string) (kind Kind, ok bool) {
	kind, ok = extensionKinds[strings.ToLower(filepath.Ext(name))]
	return kind, ok
}

func (k Kind) String() string {
	switch k {
	case KindMP3:
		return "mp3"
	case KindM4A:
		return "m4a"
	default:
		return "unknown"
	}
}

// DecodeFormat is the demuxer name passed to ffmpeg as the input format hint.
func (k Kind) DecodeFormat() string {
	return k.String()
}

// ExportFormat is the muxer name used when writing the file back. M4A goes
// through ffmpeg's "ipod" muxer, so it differs from the extension.
// See https://www.ffmpeg.org/general.html#File-Formats.
func (k Kind) ExportFormat() string {
	switch k {
	case KindMP3:
		return "mp3"
	case KindM4A:
		return "ipod"
	default:
		return ""
	}
}

// Encoder returns the ffmpeg audio encoder for re-encoding a stream that was
// originally sourceCodec. ALAC inside M4A stays lossless.
func (k Kind) Encoder(sourceCodec string) string {
	switch k {
	case KindMP3:
		return "libmp3lame"
	case KindM4A:
		if strings.EqualFold(sourceCodec, "alac") {
			return "alac"
		}
		return "aac"
	default:
		return ""
	}
}

// SupportsCoverArt reports whether the export muxer can carry an attached
// picture stream. Both do: mp3 as an APIC frame, ipod as a covr atom
// (ffmpeg 4.3+). Older ffmpeg builds refuse the picture on ipod, and the
// encode retry then drops it.
func (k Kind) SupportsCoverArt() bool {
	return k == KindMP3 || k == KindM4A
}

// MatchesFileType reports whether a content sniff agrees with the kind.
// An unknown file type (sniff unavailable) is treated as agreement.
func (k Kind) MatchesFileType(ft tag.FileType) bool {
	if ft == tag.UnknownFileType {
		return true
	}
	switch k {
	case KindMP3:
		return ft == tag.MP3
	case KindM4A:
		return ft == tag.M4A || ft == tag.M4B || ft == tag.M4P || ft == tag.ALAC
	default:
		return false
	}
}
