package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// ExecRunner runs subprocesses with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Launch starts the program without waiting. The child is left running when
// the assistant exits; output is discarded.
func (r *ExecRunner) Launch(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	// Reap the child in the background so it does not linger as a zombie
	// for the assistant's lifetime.
	go func() { _ = cmd.Wait() }()

	return nil
}

// Run executes the program and waits for completion.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// LookPath reports whether name resolves to an executable on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DesktopOpener opens URLs through the platform's default handler.
type DesktopOpener struct {
	runner CommandRunner
}

// NewDesktopOpener creates an opener that shells out to the platform's
// open command.
func NewDesktopOpener(runner CommandRunner) *DesktopOpener {
	return &DesktopOpener{runner: runner}
}

// Open hands the URL to xdg-open (Linux), open (macOS), or rundll32
// (Windows).
func (o *DesktopOpener) Open(ctx context.Context, url string) error {
	switch runtime.GOOS {
	case "darwin":
		return o.runner.Run(ctx, "open", url)
	case "windows":
		return o.runner.Run(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return o.runner.Run(ctx, "xdg-open", url)
	}
}
