// Command dbnorm is the entrypoint for the dbnorm loudness normalizer CLI.
// It parses flags, validates the music folder, and either runs the system
// check (--check), the loudness report (--analyze), or the in-place
// normalization pipeline.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/dbnorm/internal/check"
	"github.com/backmassage/dbnorm/internal/config"
	"github.com/backmassage/dbnorm/internal/display"
	"github.com/backmassage/dbnorm/internal/logging"
	"github.com/backmassage/dbnorm/internal/pipeline"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// exitInterrupted is the conventional 128+SIGINT status.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI and returns the process exit code. File-level
// failures never change the exit code; only startup errors and interrupts do.
// Progress goes to stdout, startup diagnostics to os.Stderr.
func run(args []string, stdout io.Writer) int {
	// 1. Load config from defaults and CLI flags; exit on parse or validation error.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, args); err != nil {
		fmt.Fprintf(os.Stderr, "dbnorm: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "dbnorm: %v\n", err)
		return 1
	}

	// 2. The folder must be a directory before any file work starts.
	if !cfg.CheckOnly && !isDir(cfg.Folder) {
		fmt.Fprintf(os.Stderr, "Error: '%s' is not a valid directory.\n", cfg.Folder)
		return 1
	}

	log, err := logging.NewLogger(&cfg, stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbnorm: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(stdout)

	// 3. If user asked for system check, run it and exit.
	if cfg.CheckOnly {
		if check.RunCheck(&cfg, log) {
			return 0
		}
		return 1
	}

	log.Debug("dbnorm v%s (%s)", version, commit)
	log.Info("Target: %s dBFS, threshold: %g dB", display.FormatDB(cfg.TargetDBFS), cfg.ThresholdDBFS)

	// 4. A missing toolchain is only a warning: every audio file then fails
	// on its own and the run still completes with exit 0.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Warn("%v; audio files will fail until this is fixed (see --check)", err)
	}

	// 5. Run until done or interrupted. SIGINT/SIGTERM kill the in-flight
	// ffmpeg via the context; the current original is left untouched.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Analyze {
		pipeline.Analyze(ctx, &cfg, log)
	} else {
		results := pipeline.Run(ctx, &cfg, log)
		applied, skipped, failed, _ := pipeline.Counts(results)
		log.Debug("%d normalized, %d unchanged, %d failed", applied, skipped, failed)
	}

	if ctx.Err() != nil {
		return exitInterrupted
	}
	return 0
}

// isDir reports whether path exists and is a directory (symlinks followed).
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
