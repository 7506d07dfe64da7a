package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"kamalx/internal/config"
	"kamalx/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// Application is the main application structure that bootstraps and runs kamalx
type Application struct {
	config *Config
	level  logging.LogLevel

	// out receives console mode output.
	out io.Writer
	// programOptions are appended to the dashboard program options.
	programOptions []tea.ProgramOption
}

// NewApplication loads and validates the layered configuration for cfg.
func NewApplication(cfg *Config) (*Application, error) {
	// Configuration problems are reported before any mode takes over the
	// terminal.
	logging.InitForCLI(logging.LevelInfo, os.Stderr)

	settings, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load kamalx configuration")
		return nil, fmt.Errorf("failed to load kamalx configuration: %w", err)
	}
	cfg.Overrides.Apply(&settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	cfg.Settings = &settings

	// Validate has already checked the level name.
	level, _ := logging.ParseLevel(settings.LogLevel)

	return &Application{
		config: cfg,
		level:  level,
		out:    os.Stdout,
	}, nil
}

// Run executes the application in the appropriate mode. A command that
// fails is reported as an *ExitError carrying its status.
func (a *Application) Run(ctx context.Context) error {
	if a.config.NoTUI {
		return a.runCLIMode(ctx)
	}
	return a.runTUIMode(ctx)
}

// runCLIMode runs the application in non-interactive CLI mode
func (a *Application) runCLIMode(ctx context.Context) error {
	logging.InitForCLI(a.level, os.Stderr)
	return runCLIMode(ctx, a.config, a.out)
}

// runTUIMode runs the application in interactive TUI mode
func (a *Application) runTUIMode(ctx context.Context) error {
	logOut, closeLog, err := openLogFile(a.config.Settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	logging.InitForTUI(a.level, logOut)
	defer logging.InitForCLI(a.level, os.Stderr)

	return runTUIMode(ctx, a.config, a.programOptions)
}

// openLogFile opens path for appending. An empty path discards logs.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
