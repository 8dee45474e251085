package probe

import (
	"testing"
)

// MP3 with an embedded cover picture (mjpeg attached_pic) and ID3 tags.
const sampleMP3 = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mp3",
      "codec_type": "audio",
      "sample_rate": "44100",
      "channels": 2,
      "channel_layout": "stereo",
      "bit_rate": "192000",
      "disposition": { "default": 0, "attached_pic": 0 }
    },
    {
      "index": 1,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "disposition": { "default": 0, "attached_pic": 1 }
    }
  ],
  "format": {
    "filename": "/music/Artist/Album/01 Song.mp3",
    "format_name": "mp3",
    "duration": "215.484082",
    "size": "5376512",
    "bit_rate": "199608",
    "tags": { "title": "Song", "artist": "Artist" }
  }
}`

// ALAC in an M4A container, no cover.
const sampleALAC = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "alac",
      "codec_type": "audio",
      "sample_rate": "48000",
      "channels": 2,
      "channel_layout": "stereo",
      "bit_rate": "1411200",
      "disposition": { "default": 1 }
    }
  ],
  "format": {
    "filename": "track.m4a",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "60.000000",
    "size": "10584000",
    "bit_rate": "1411200"
  }
}`

// Audio stream without a bitrate; format bitrate is the fallback.
const sampleNoStreamRate = `{
  "streams": [
    { "index": 0, "codec_name": "aac", "codec_type": "audio", "sample_rate": "44100", "channels": 1 }
  ],
  "format": { "filename": "voice.m4a", "format_name": "mov,mp4,m4a,3gp,3g2,mj2", "bit_rate": "64000" }
}`

// Container with no audio at all.
const sampleNoAudio = `{
  "streams": [
    { "index": 0, "codec_name": "png", "codec_type": "video", "disposition": { "attached_pic": 1 } }
  ],
  "format": { "filename": "broken.mp3", "format_name": "mp3" }
}`

func TestParseJSON_MP3WithCover(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMP3))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if pr.Format.FormatName != "mp3" {
		t.Errorf("format: got %q", pr.Format.FormatName)
	}
	if pr.Format.Duration != 215.484082 {
		t.Errorf("duration: got %f", pr.Format.Duration)
	}
	if pr.Format.Size != 5376512 {
		t.Errorf("size: got %d", pr.Format.Size)
	}
	if pr.Format.Tags["artist"] != "Artist" {
		t.Errorf("tags: got %v", pr.Format.Tags)
	}
	if !pr.HasCoverArt {
		t.Error("HasCoverArt should be true")
	}
	if len(pr.AudioStreams) != 1 {
		t.Fatalf("audio streams: got %d, want 1", len(pr.AudioStreams))
	}

	a := pr.PrimaryAudio()
	if a == nil {
		t.Fatal("PrimaryAudio is nil")
	}
	if a.Codec != "mp3" || a.SampleRate != 44100 || a.Channels != 2 {
		t.Errorf("primary audio: %+v", *a)
	}
	if got := pr.AudioBitRate(); got != 192000 {
		t.Errorf("AudioBitRate: got %d, want 192000", got)
	}
}

func TestParseJSON_ALAC(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleALAC))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	a := pr.PrimaryAudio()
	if a == nil || a.Codec != "alac" || a.SampleRate != 48000 || !a.IsDefault {
		t.Errorf("primary audio: %+v", a)
	}
	if pr.HasCoverArt {
		t.Error("HasCoverArt should be false")
	}
}

func TestAudioBitRate_FallsBackToFormat(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleNoStreamRate))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got := pr.AudioBitRate(); got != 64000 {
		t.Errorf("AudioBitRate: got %d, want 64000", got)
	}

	pr.HasCoverArt = true
	if got := pr.AudioBitRate(); got != 0 {
		t.Errorf("AudioBitRate with cover: got %d, want 0", got)
	}
}

func TestParseJSON_NoAudio(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleNoAudio))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.PrimaryAudio() != nil {
		t.Error("PrimaryAudio should be nil")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
