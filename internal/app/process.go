package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"kamalx/internal/config"
	"kamalx/internal/dashboard"
	"kamalx/internal/runner"
)

// ExitError reports a wrapped command that did not succeed. Code is the
// status kamalx itself should exit with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command failed: %v", e.Err)
	}
	return fmt.Sprintf("command exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// interruptedCode is reported when the dashboard was left before the
// command's exit status was known.
const interruptedCode = 130

var errInterrupted = errors.New("dashboard closed before the command exited")

// exitError converts a process exit into the error Run returns.
func exitError(exit runner.Exit) error {
	if exit.Success() {
		return nil
	}
	code := exit.Code
	if code <= 0 {
		code = 1
	}
	return &ExitError{Code: code, Err: exit.Err}
}

// newRunner builds the runner for the configured command and args.
func newRunner(settings *config.Config, args []string) *runner.Runner {
	// Validate has already checked the policy name.
	policy, _ := runner.ParseBufferAction(settings.LineBufferPolicy)
	return runner.New(runner.Config{
		Command:       settings.Command,
		Args:          args,
		UsePTY:        settings.UsePTY,
		ShutdownGrace: settings.ShutdownGrace,
		LineBuffer:    settings.LineBuffer,
		BufferPolicy:  policy,
	})
}

// commandLine renders the command for the status bar.
func commandLine(settings *config.Config, args []string) string {
	return strings.Join(append([]string{settings.Command}, args...), " ")
}

// displayName is the name used in the final status line.
func displayName(command string) string {
	base := filepath.Base(command)
	if base == "kamal" || base == "." || base == "" {
		return dashboard.DefaultName
	}
	return base
}
