// Package iopipeline runs pipeline stages as child processes of the
// gazdb binary, each one under a wall-clock limit.
package iopipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
)

// LogAppendEnv tells a child process to append to the log file of its
// parent instead of truncating it.
const LogAppendEnv = "GAZDB_LOG_APPEND"

// Step is one external stage of the pipeline.
type Step struct {
	// Name is used in messages and logs.
	Name string
	// Args are passed to the executable.
	Args []string
}

// Result describes a finished step.
type Result struct {
	Name     string
	Duration time.Duration
}

// Runner starts steps with the same executable and limit.
type Runner struct {
	exe     string
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a Runner for exe. Every step gets at most timeout to
// finish.
func New(exe string, timeout time.Duration) *Runner {
	return &Runner{
		exe:     exe,
		timeout: timeout,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// Run executes the step and waits for it. A step that runs out of time
// is killed and reported with TimeoutError. Steps are never retried.
func (r *Runner) Run(ctx context.Context, step Step) (Result, error) {
	res := Result{Name: step.Name}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.exe, step.Args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Env = append(os.Environ(), LogAppendEnv+"=1")

	slog.Info("Starting step",
		"step", step.Name,
		"command", r.exe+" "+strings.Join(step.Args, " "),
		"timeout", r.timeout.String(),
	)
	timeStart := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(timeStart)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		slog.Error("Step timed out", "step", step.Name)
		return res, TimeoutError(step.Name, r.timeout)
	}
	if err != nil {
		slog.Error("Step failed", "step", step.Name, "error", err)
		return res, StepError(step.Name, err)
	}

	slog.Info("Step finished",
		"step", step.Name,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}
