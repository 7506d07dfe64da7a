package model

import (
	"time"

	"kamalx/internal/dashboard"
	"kamalx/internal/runner"
	"kamalx/internal/tui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Process is the monitored command as seen by the TUI.
type Process interface {
	Lines() <-chan string
	Done() <-chan runner.Exit
	Stop() error
	Kill() error
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
)

// TUIConfig configures the dashboard program.
type TUIConfig struct {
	// CommandLine is shown in the status bar.
	CommandLine string
	// Name is used in the final status line.
	Name string

	TickInterval  time.Duration
	ShutdownGrace time.Duration
	// OutputHistory is the number of output lines kept for scrolling and
	// copying.
	OutputHistory int
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Interrupt key.Binding
	Quit      key.Binding
	Copy      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Help      key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Interrupt, k.Copy, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Interrupt, k.Quit, k.Copy},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Help},
	}
}

// Model is the state of the dashboard program.
type Model struct {
	Width  int
	Height int
	// Ready is set by the first window size message.
	Ready    bool
	Geometry components.Geometry

	Surface   *components.Surface
	Dashboard *dashboard.State
	Process   Process

	Keys           KeyMap
	Help           help.Model
	OutputViewport viewport.Model
	// Following keeps the output viewport pinned to the newest line.
	Following         bool
	LastOutputVersion uint64

	CommandLine   string
	TickInterval  time.Duration
	ShutdownGrace time.Duration

	StartedAt  time.Time
	FinishedAt time.Time
	Now        func() time.Time

	LinesClosed bool
	Stopping    bool
	Exit        *runner.Exit

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}
}

// Exited reports whether the process is gone.
func (m *Model) Exited() bool {
	return m.Exit != nil
}

// Elapsed is the run time so far, or the total once the process exited.
func (m *Model) Elapsed() time.Duration {
	end := m.FinishedAt
	if m.Exit == nil {
		end = m.Now()
	}
	return end.Sub(m.StartedAt)
}

// RunState summarizes the process lifecycle for the status bar.
func (m *Model) RunState() components.RunState {
	switch {
	case m.Exit != nil && m.Exit.Success():
		return components.StateSucceeded
	case m.Exit != nil:
		return components.StateFailed
	case m.Stopping:
		return components.StateStopping
	default:
		return components.StateRunning
	}
}

// Relayout recomputes the pane geometry for the current window size.
func (m *Model) Relayout() {
	g := components.NewLayout(m.Width, m.Height-m.FooterExtra()).Compute()
	m.Geometry = g
	m.Surface.Resize(g)
	m.OutputViewport.Width = g.Output.Cols
	m.OutputViewport.Height = g.Output.Rows
	m.Dashboard.Redraw()
	m.SyncOutput(true)
}

// FooterExtra is the number of lines the expanded help takes beyond the
// status bar.
func (m *Model) FooterExtra() int {
	if !m.Help.ShowAll {
		return 0
	}
	rows := 0
	for _, column := range m.Keys.FullHelp() {
		rows = max(rows, len(column))
	}
	return rows
}

// SyncOutput copies the output pane into the viewport when it changed.
func (m *Model) SyncOutput(force bool) {
	version := m.Surface.Output.Version()
	if !force && version == m.LastOutputVersion {
		return
	}
	m.LastOutputVersion = version
	m.OutputViewport.SetContent(m.Surface.Output.RenderAll())
	if m.Following {
		m.OutputViewport.GotoBottom()
	}
}

// SetStatusMessage updates the status bar message
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}
