package model

import (
	"time"

	"kamalx/internal/dashboard"
	"kamalx/internal/tui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultTickInterval  = 500 * time.Millisecond
	DefaultShutdownGrace = 2 * time.Second
	DefaultOutputHistory = 1000
)

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "stop / exit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit when finished"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy output"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "oldest output"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "follow output"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// InitialModel creates the model for proc. Geometry is settled by the first
// window size message; until then the panes have a nominal size.
func InitialModel(cfg TUIConfig, proc Process) *Model {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = DefaultShutdownGrace
	}
	if cfg.OutputHistory <= 0 {
		cfg.OutputHistory = DefaultOutputHistory
	}

	g := components.NewLayout(80, 24).Compute()
	surface := components.NewSurface(g, cfg.OutputHistory)

	m := &Model{
		Width:          80,
		Height:         24,
		Geometry:       g,
		Surface:        surface,
		Dashboard:      dashboard.New(surface, dashboard.Options{Name: cfg.Name}),
		Process:        proc,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		OutputViewport: viewport.New(g.Output.Cols, g.Output.Rows),
		Following:      true,
		CommandLine:    cfg.CommandLine,
		TickInterval:   cfg.TickInterval,
		ShutdownGrace:  cfg.ShutdownGrace,
		Now:            time.Now,
	}
	m.StartedAt = m.Now()
	m.Dashboard.Redraw()
	m.SyncOutput(true)
	return m
}

// Init starts listening for output and the progress animation.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForLinesCmd(m.Process.Lines()),
		TickCmd(m.TickInterval),
	)
}
