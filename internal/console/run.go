package console

import (
	"context"
	"errors"
	"io"
	"os"

	"kamalx/internal/dashboard"
	"kamalx/internal/runner"
	"kamalx/pkg/logging"
)

var errNoExitStatus = errors.New("process ended without an exit status")

// Process is the monitored command as seen by the console loop.
type Process interface {
	Lines() <-chan string
	Done() <-chan runner.Exit
	Stop() error
}

// Options configures Run.
type Options struct {
	// Out defaults to os.Stdout.
	Out   io.Writer
	Name  string
	Width int
}

// Run feeds every line of proc through the dashboard until the process
// exits, then prints the final status line and returns the exit. Cancelling
// ctx asks the process to stop; Run keeps draining until it is gone.
func Run(ctx context.Context, proc Process, opts Options) runner.Exit {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	state := dashboard.New(NewSurface(out, opts.Width), dashboard.Options{Name: opts.Name})

	lines := proc.Lines()
	cancelled := ctx.Done()
	for lines != nil {
		select {
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			state.HandleLine(line)
		case <-cancelled:
			cancelled = nil
			logging.Info("Console", "Interrupted, stopping command")
			if err := proc.Stop(); err != nil {
				logging.Error("Console", err, "Failed to stop command")
			}
		}
	}

	exit, ok := <-proc.Done()
	if !ok {
		exit = runner.Exit{Code: -1, Err: errNoExitStatus}
	}
	logging.Debug("Console", "Command exited with code %d", exit.Code)
	state.Terminate(exit.Code, exit.Err)
	return exit
}
