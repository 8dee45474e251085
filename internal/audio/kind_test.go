package audio

import (
	"testing"

	"github.com/dhowden/tag"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   Kind
		wantOK bool
	}{
		{"mp3", "song.mp3", KindMP3, true},
		{"m4a", "song.m4a", KindM4A, true},
		{"upper case", "SONG.MP3", KindMP3, true},
		{"mixed case", "Song.M4a", KindM4A, true},
		{"path with dirs", "/music/Artist/Album/01 Intro.mp3", KindMP3, true},
		{"dots in name", "01. Track.v2.m4a", KindM4A, true},
		{"flac unsupported", "song.flac", 0, false},
		{"mp4 unsupported", "clip.mp4", 0, false},
		{"no extension", "README", 0, false},
		{"extension only in dir", "/music.mp3/cover.jpg", 0, false},
		{"trailing dot", "song.", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.file)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Classify(%q) = (%v, %v), want (%v, %v)", tt.file, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKind_Formats(t *testing.T) {
	tests := []struct {
		kind   Kind
		decode string
		export string
	}{
		{KindMP3, "mp3", "mp3"},
		{KindM4A, "m4a", "ipod"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.DecodeFormat(); got != tt.decode {
				t.Errorf("DecodeFormat() = %q, want %q", got, tt.decode)
			}
			if got := tt.kind.ExportFormat(); got != tt.export {
				t.Errorf("ExportFormat() = %q, want %q", got, tt.export)
			}
		})
	}
}

func TestKind_Encoder(t *testing.T) {
	tests := []struct {
		kind   Kind
		source string
		want   string
	}{
		{KindMP3, "mp3", "libmp3lame"},
		{KindM4A, "aac", "aac"},
		{KindM4A, "ALAC", "alac"},
		{KindM4A, "", "aac"},
	}
	for _, tt := range tests {
		if got := tt.kind.Encoder(tt.source); got != tt.want {
			t.Errorf("%v.Encoder(%q) = %q, want %q", tt.kind, tt.source, got, tt.want)
		}
	}
}

func TestKind_SupportsCoverArt(t *testing.T) {
	for _, k := range []Kind{KindMP3, KindM4A} {
		if !k.SupportsCoverArt() {
			t.Errorf("%v should carry cover art", k)
		}
	}
	if Kind(0).SupportsCoverArt() {
		t.Error("zero Kind should not carry cover art")
	}
}

func TestKind_MatchesFileType(t *testing.T) {
	tests := []struct {
		kind Kind
		ft   tag.FileType
		want bool
	}{
		{KindMP3, tag.MP3, true},
		{KindMP3, tag.M4A, false},
		{KindM4A, tag.M4A, true},
		{KindM4A, tag.ALAC, true},
		{KindM4A, tag.FLAC, false},
		{KindM4A, tag.UnknownFileType, true},
	}
	for _, tt := range tests {
		if got := tt.kind.MatchesFileType(tt.ft); got != tt.want {
			t.Errorf("%v.MatchesFileType(%q) = %v, want %v", tt.kind, tt.ft, got, tt.want)
		}
	}
}
