// Package gitsync treats the data directory as its own git repository,
// independent of any repository the application itself lives in, and
// wraps the git commands that clone, pull, push, and inspect it. Every
// operation returns a result value with the raw command output; nothing
// here panics or aborts the caller.
package gitsync

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// CmdResult is the structured outcome of one git invocation.
type CmdResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the command exited zero.
func (r CmdResult) Ok() bool {
	return r.ExitCode == 0
}

// Runner executes a git command with the given arguments in dir. All
// higher-level operations compose from this single primitive; arguments
// are always passed as an argv list, never interpolated into a shell
// string.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) CmdResult
}

// ExecRunner runs git through os/exec.
type ExecRunner struct{}

// Run invokes git with args in dir, capturing exit code and both streams.
// A git binary that cannot be started surfaces as exit code -1 with the
// error text on stderr.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) CmdResult {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := CmdResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
	}
	return res
}

// firstLine returns the first non-empty trimmed line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
