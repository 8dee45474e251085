// Package check provides system diagnostics (--check mode) and the
// pre-pipeline dependency warning (CheckDeps) for ffmpeg, ffprobe, and the MP3 and AAC
// encoders used on export.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/dbnorm/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound   = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound  = errors.New("ffprobe not found on PATH")
	ErrMP3EncoderFailed = errors.New("libmp3lame test encode failed (ffmpeg built without MP3 support?)")
	ErrAACEncoderFailed = errors.New("AAC test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, and the MP3/AAC encoders, and test-encodes a short tone through
// each export muxer. Returns true when everything needed for a run works.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, cfg.FFmpegBin)
	ok = checkTool(log, cfg.FFprobeBin) && ok
	if !ok {
		return false
	}
	checkAudioEncoders(log, cfg.FFmpegBin)
	ok = checkEncode(log, cfg.FFmpegBin, "MP3 (libmp3lame)", mp3TestArgs()) && ok
	ok = checkEncode(log, cfg.FFmpegBin, "M4A (aac)", aacTestArgs()) && ok
	return ok
}

// checkTool verifies bin is on PATH and logs its version string.
func checkTool(log Logger, bin string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return false
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s", firstLine)
	return true
}

// checkAudioEncoders lists the MP3, AAC and ALAC encoders reported by ffmpeg.
func checkAudioEncoders(log Logger, bin string) {
	log.Info("Audio encoders:")
	out, err := exec.Command(bin, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range filterEncoders(string(out)) {
		log.Info("  %s", line)
	}
}

// filterEncoders returns the encoder list lines relevant to export.
func filterEncoders(list string) []string {
	var lines []string
	for _, line := range strings.Split(list, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "A") {
			continue
		}
		switch fields[1] {
		case "libmp3lame", "aac", "libfdk_aac", "alac":
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

func checkEncode(log Logger, bin, label string, args []string) bool {
	log.Info("Testing %s...", label)
	if runSilent(bin, args...) {
		log.Success("%s encoder works", label)
		return true
	}
	log.Error("%s test encode failed", label)
	return false
}

// CheckDeps is the pre-pipeline probe: it verifies that ffmpeg and ffprobe
// are on PATH and that both export encoders work. Returns the first sentinel
// error found. The caller treats it as a warning; the files themselves fail
// one by one when a tool is really missing.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(cfg.FFprobeBin); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent(cfg.FFmpegBin, mp3TestArgs()...) {
		return ErrMP3EncoderFailed
	}
	if !runSilent(cfg.FFmpegBin, aacTestArgs()...) {
		return ErrAACEncoderFailed
	}
	return nil
}

// --- internal helpers ---

// mp3TestArgs returns the ffmpeg arguments for a minimal libmp3lame encode.
// Shared by RunCheck and CheckDeps.
func mp3TestArgs() []string {
	return testEncodeArgs("libmp3lame")
}

// aacTestArgs returns the ffmpeg arguments for a minimal AAC encode.
func aacTestArgs() []string {
	return testEncodeArgs("aac")
}

// testEncodeArgs encodes a 0.1 s tone to the null muxer. The ipod muxer
// needs a seekable output, so only the encoder is exercised here.
func testEncodeArgs(encoder string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", encoder,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
