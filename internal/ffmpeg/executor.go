package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs args (args[0] is the binary) with stdin and stdout wired to
// the given streams; either may be nil. When verbose is set, stderr is tee'd
// to os.Stderr in real time; otherwise it is captured silently for retry
// classification. Cancelling ctx kills the process.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
