package config

import (
	"math"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/music", "/media/music"},
		{"single trailing slash", "/media/music/", "/media/music"},
		{"multiple trailing slashes", "/media/music///", "/media/music"},
		{"root path", "/", "/"},
		{"relative path", "music", "music"},
		{"relative with slash", "music/", "music"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 100, false},
		{"whole number", 3, false},
		{"whole number as float", 6.0, false},
		{"zero", 0, true},
		{"fraction", 1.5, true},
		{"above maximum", 101, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThreshold(tt.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThreshold(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresFolder(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without a folder")
	}

	cfg.Folder = "/music"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_CheckOnlySkipsFolder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass without folder when CheckOnly is true, got: %v", err)
	}
}

func TestValidate_Target(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Folder = "/music"
	cfg.TargetDBFS = math.Inf(-1)
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an infinite target")
	}
}

func TestValidate_Bitrate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"192", "192k", false},
		{"192k", "192k", false},
		{"256K", "256k", false},
		{"320kbps", "320k", false},
		{"fast", "", true},
		{"-5k", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Folder = "/music"
			cfg.Bitrate = tt.in
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Bitrate != tt.want {
				t.Errorf("Bitrate = %q, want %q", cfg.Bitrate, tt.want)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TargetDBFS != -20.0 {
		t.Errorf("default TargetDBFS = %v, want -20", cfg.TargetDBFS)
	}
	if cfg.ThresholdDBFS != 1 {
		t.Errorf("default ThresholdDBFS = %v, want 1", cfg.ThresholdDBFS)
	}
	if !cfg.KeepTags {
		t.Error("default KeepTags should be true")
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantErr   bool
		folder    string
		target    float64
		threshold float64
	}{
		{"folder only", []string{"/music"}, false, "/music", -20, 1},
		{"flags before folder", []string{"--target-dbfs", "-18", "/music/"}, false, "/music", -18, 1},
		{"flags after folder", []string{"/music", "--target-dbfs", "-16.5", "--threshold-dBFS", "3"}, false, "/music", -16.5, 3},
		{"lowercase threshold alias", []string{"--threshold-dbfs=2", "/music"}, false, "/music", -20, 2},
		{"threshold out of range", []string{"--threshold-dBFS", "0", "/music"}, true, "", 0, 0},
		{"fractional threshold", []string{"--threshold-dBFS", "1.5", "/music"}, true, "", 0, 0},
		{"missing folder", []string{"--target-dbfs", "-18"}, true, "", 0, 0},
		{"two folders", []string{"/a", "/b"}, true, "", 0, 0},
		{"unknown flag", []string{"--loud", "/music"}, true, "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ParseFlags(&cfg, "test", tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlags(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Folder != tt.folder {
				t.Errorf("Folder = %q, want %q", cfg.Folder, tt.folder)
			}
			if cfg.TargetDBFS != tt.target {
				t.Errorf("TargetDBFS = %v, want %v", cfg.TargetDBFS, tt.target)
			}
			if cfg.ThresholdDBFS != tt.threshold {
				t.Errorf("ThresholdDBFS = %v, want %v", cfg.ThresholdDBFS, tt.threshold)
			}
		})
	}
}

func TestParseFlags_Negated(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--no-tags", "--no-color", "-d", "/music"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.KeepTags {
		t.Error("--no-tags should clear KeepTags")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
	if !cfg.DryRun {
		t.Error("-d should set DryRun")
	}
}
