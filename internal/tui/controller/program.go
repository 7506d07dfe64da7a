package controller

import (
	"kamalx/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for the dashboard. Extra options
// are appended to the defaults, which put the program on the alternate screen.
func NewProgram(cfg model.TUIConfig, proc model.Process, opts ...tea.ProgramOption) *tea.Program {
	m := model.InitialModel(cfg, proc)
	app := NewAppModel(m)

	options := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(app, options...)
}
