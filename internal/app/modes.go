package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kamalx/internal/console"
	"kamalx/internal/runner"
	"kamalx/internal/tui/controller"
	"kamalx/internal/tui/model"
	"kamalx/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// shutdownSlack is added to the grace period while waiting for a stopped
// command after the dashboard closed.
const shutdownSlack = time.Second

// runCLIMode executes the non-interactive command line mode
func runCLIMode(ctx context.Context, cfg *Config, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := newRunner(cfg.Settings, cfg.Args)
	logging.Info("CLI", "Running %s", commandLine(cfg.Settings, cfg.Args))
	if err := proc.Start(ctx); err != nil {
		logging.Error("CLI", err, "Failed to start command")
	}

	exit := console.Run(ctx, proc, console.Options{
		Out:  out,
		Name: displayName(cfg.Settings.Command),
	})
	logStats(proc)
	return exitError(exit)
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, opts []tea.ProgramOption) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	proc := newRunner(cfg.Settings, cfg.Args)
	logging.Info("TUI-Lifecycle", "Starting %s", commandLine(cfg.Settings, cfg.Args))
	if err := proc.Start(ctx); err != nil {
		logging.Error("TUI-Lifecycle", err, "Failed to start command")
	}

	p := controller.NewProgram(model.TUIConfig{
		CommandLine:   commandLine(cfg.Settings, cfg.Args),
		Name:          displayName(cfg.Settings.Command),
		TickInterval:  cfg.Settings.TickInterval,
		ShutdownGrace: cfg.Settings.ShutdownGrace,
		OutputHistory: cfg.Settings.OutputHistory,
	}, proc, opts...)

	final, runErr := p.Run()
	shutdown(proc, cfg.Settings.ShutdownGrace)
	logStats(proc)
	if runErr != nil {
		logging.Error("TUI-Lifecycle", runErr, "Error running TUI program")
		return runErr
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")

	if app, ok := final.(controller.AppModel); ok && app.Model().Exit != nil {
		return exitError(*app.Model().Exit)
	}
	return &ExitError{Code: interruptedCode, Err: errInterrupted}
}

// shutdown makes sure the command does not outlive the dashboard.
func shutdown(proc *runner.Runner, grace time.Duration) {
	proc.Abandon()
	if proc.Exited() {
		return
	}
	if err := proc.Stop(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Failed to stop command")
	}
	if !proc.WaitExited(grace + shutdownSlack) {
		logging.Warn("TUI-Lifecycle", "Command still running after %s", grace+shutdownSlack)
		if err := proc.Kill(); err != nil {
			logging.Error("TUI-Lifecycle", err, "Failed to kill command")
		}
	}
}

func logStats(proc *runner.Runner) {
	stats := proc.Stats()
	logging.Debug("Runner", "Lines sent=%d dropped=%d blocked=%d evicted=%d",
		stats.LinesSent, stats.LinesDropped, stats.LinesBlocked, stats.LinesEvicted)
}
