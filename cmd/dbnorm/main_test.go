package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/dbnorm/internal/check"
	"github.com/backmassage/dbnorm/internal/config"
)

func TestRun_InvalidFolder(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing", []string{filepath.Join(dir, "nope")}},
		{"regular file", []string{file}},
		{"missing with flags", []string{"--target-dbfs", "-18", filepath.Join(dir, "nope")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(tt.args, io.Discard); code != 1 {
				t.Errorf("run(%v) = %d, want 1", tt.args, code)
			}
		})
	}
}

func TestRun_BadFlags(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"--threshold-dBFS", "0", dir},
		{"--threshold-dBFS", "101", dir},
		{"--target-dbfs", "loud", dir},
		{},
	} {
		if code := run(args, io.Discard); code != 1 {
			t.Errorf("run(%v) = %d, want 1", args, code)
		}
	}
}

func TestRun_EmptyFolder(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := check.CheckDeps(&cfg); err != nil {
		t.Skipf("toolchain unavailable: %v", err)
	}
	if code := run([]string{"--no-color", t.TempDir()}, io.Discard); code != 0 {
		t.Errorf("run(empty dir) = %d, want 0", code)
	}
}

func TestRun_UnknownFileOnlyFolder(t *testing.T) {
	// No ffmpeg or ffprobe reachable: the run must still walk the folder.
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	content := []byte("not audio\n")
	if err := os.WriteFile(notes, content, 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if code := run([]string{"--no-color", dir}, &out); code != 0 {
		t.Fatalf("run = %d, want 0\n%s", code, out.String())
	}

	got, err := os.ReadFile(notes)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("notes.txt changed: %q", got)
	}
	for _, want := range []string{
		"[WARN] ffmpeg not found on PATH",
		"File was not known audio file. Filename: " + notes,
		"All done!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_MissingToolchainFailsPerFile(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	song := filepath.Join(dir, "song.mp3")
	content := []byte("ID3 not really")
	if err := os.WriteFile(song, content, 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if code := run([]string{"--no-color", dir}, &out); code != 0 {
		t.Fatalf("run = %d, want 0\n%s", code, out.String())
	}
	if got, _ := os.ReadFile(song); !bytes.Equal(got, content) {
		t.Errorf("song.mp3 changed: %q", got)
	}
	if !strings.Contains(out.String(), "Error reading or processing file:") {
		t.Errorf("expected a per-file error line:\n%s", out.String())
	}
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	if !isDir(dir) {
		t.Error("temp dir should be a directory")
	}
	if isDir(filepath.Join(dir, "missing")) {
		t.Error("missing path should not be a directory")
	}
}
