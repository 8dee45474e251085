package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/dbnorm/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	var buf bytes.Buffer
	l, err := NewLogger(&cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
	if !strings.Contains(buf.String(), "[INFO] test message") {
		t.Errorf("output: %q", buf.String())
	}
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "dbnorm.log")
	var buf bytes.Buffer
	l, err := NewLogger(&cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_ErrorsGoToSameWriter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	var buf bytes.Buffer
	l, err := NewLogger(&cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Error("broken %s", "file.mp3")
	if !strings.Contains(buf.String(), "[ERROR] broken file.mp3") {
		t.Errorf("error line missing from output: %q", buf.String())
	}
}

func TestLogger_DebugRespectsVerbose(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	var buf bytes.Buffer
	l, _ := NewLogger(&cfg, &buf)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug printed without verbose: %q", buf.String())
	}

	cfg.Verbose = true
	l, _ = NewLogger(&cfg, &buf)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Errorf("debug missing with verbose: %q", buf.String())
	}
}
