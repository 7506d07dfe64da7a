package controller

import (
	"time"

	"kamalx/internal/tui/model"
	"kamalx/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

const processSubsystem = "TUI"

// stopTimeoutMargin is added to the grace period so the runner's own kill
// gets the chance to report an exit first.
const stopTimeoutMargin = time.Second

func handleLineBatchMsg(m *model.Model, msg model.LineBatchMsg) (*model.Model, tea.Cmd) {
	for _, line := range msg.Lines {
		m.Dashboard.HandleLine(line)
	}
	m.SyncOutput(false)

	if msg.Closed {
		m.LinesClosed = true
		logging.Debug(processSubsystem, "Output closed, waiting for exit")
		return m, model.WaitForExitCmd(m.Process.Done())
	}
	return m, model.ListenForLinesCmd(m.Process.Lines())
}

func handleProcessExitedMsg(m *model.Model, msg model.ProcessExitedMsg) (*model.Model, tea.Cmd) {
	if m.Exited() {
		return m, nil
	}
	exit := msg.Exit
	m.Exit = &exit
	m.FinishedAt = m.Now()

	if exit.Err != nil {
		logging.Error(processSubsystem, exit.Err, "Process ended with code %d", exit.Code)
	} else {
		logging.Info(processSubsystem, "Process exited with code %d", exit.Code)
	}

	m.Dashboard.Terminate(exit.Code, exit.Err)
	m.SyncOutput(false)
	return m, nil
}

// handleTickMsg redraws the progress pane. Ticks stop once the process exited.
func handleTickMsg(m *model.Model) (*model.Model, tea.Cmd) {
	if m.Exited() {
		return m, nil
	}
	m.Dashboard.Tick()
	return m, model.TickCmd(m.TickInterval)
}

func handleStopTimeoutMsg(m *model.Model) (*model.Model, tea.Cmd) {
	if m.Exited() {
		return m, nil
	}
	logging.Warn(processSubsystem, "No exit %s after interrupt, quitting", m.ShutdownGrace+stopTimeoutMargin)
	if err := m.Process.Kill(); err != nil {
		logging.Error(processSubsystem, err, "Kill failed")
	}
	return m, tea.Quit
}

// requestStop interrupts the process and arms the forced quit.
func requestStop(m *model.Model) (*model.Model, tea.Cmd) {
	m.Stopping = true
	if err := m.Process.Stop(); err != nil {
		logging.Error(processSubsystem, err, "Stop failed")
		return m, m.SetStatusMessage("Stop failed: "+err.Error(), model.StatusBarError, 3*time.Second)
	}
	return m, tea.Batch(
		model.StopTimeoutCmd(m.ShutdownGrace+stopTimeoutMargin),
		m.SetStatusMessage("Stopping, press ctrl+c again to quit now", model.StatusBarInfo, m.ShutdownGrace+stopTimeoutMargin),
	)
}
