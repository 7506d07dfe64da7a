package controller

import (
	"kamalx/internal/tui/model"
	"kamalx/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// Update routes a message to its handler and returns the commands to run.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	return mainControllerDispatch(m, msg)
}

// mainControllerDispatch is the central message routing function for the TUI application.
// Process output, ticks and keys all arrive here one at a time, so the panes
// have a single writer.
func mainControllerDispatch(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsgGlobal(m, msg)

	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case model.LineBatchMsg:
		return handleLineBatchMsg(m, msg)

	case model.ProcessExitedMsg:
		return handleProcessExitedMsg(m, msg)

	case model.TickMsg:
		return handleTickMsg(m)

	case model.StopTimeoutMsg:
		return handleStopTimeoutMsg(m)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		m.StatusBarClearCancel = nil
		return m, nil

	default:
		logging.Debug(controllerDispatchSubsystem, "Unhandled msg: %T", msg)
		return m, nil
	}
}
