package controller

import (
	"kamalx/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// handleWindowSizeMsg resizes every pane to the new terminal dimensions.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Help.Width = msg.Width
	m.Ready = true
	m.Relayout()
	return m, nil
}
