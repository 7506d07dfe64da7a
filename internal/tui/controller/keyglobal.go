package controller

import (
	"fmt"
	"strings"
	"time"

	"kamalx/internal/tui/model"
	"kamalx/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWriteAll is swapped in tests.
var (
	defaultClipboardWriteAll = clipboard.WriteAll
	clipboardWriteAll        = defaultClipboardWriteAll
)

// handleKeyMsgGlobal processes key presses.
func handleKeyMsgGlobal(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Interrupt):
		if m.Exited() || m.Stopping {
			if !m.Exited() {
				if err := m.Process.Kill(); err != nil {
					logging.Error(processSubsystem, err, "Kill failed")
				}
			}
			return m, tea.Quit
		}
		return requestStop(m)

	case key.Matches(keyMsg, m.Keys.Quit):
		if m.Exited() {
			return m, tea.Quit
		}
		return m, m.SetStatusMessage("Still running, press ctrl+c to stop", model.StatusBarInfo, 3*time.Second)

	case key.Matches(keyMsg, m.Keys.Copy):
		text := m.Surface.Output.Text()
		if err := clipboardWriteAll(text); err != nil {
			logging.Error(processSubsystem, err, "Failed to copy output")
			return m, m.SetStatusMessage("Copy failed", model.StatusBarError, 3*time.Second)
		}
		lines := 0
		if text != "" {
			lines = strings.Count(text, "\n") + 1
		}
		return m, m.SetStatusMessage(fmt.Sprintf("Copied %d lines to clipboard", lines), model.StatusBarSuccess, 3*time.Second)

	case key.Matches(keyMsg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.Relayout()
		return m, nil

	case key.Matches(keyMsg, m.Keys.Top):
		m.OutputViewport.GotoTop()
		m.Following = m.OutputViewport.AtBottom()
		return m, nil

	case key.Matches(keyMsg, m.Keys.Bottom):
		m.OutputViewport.GotoBottom()
		m.Following = true
		return m, nil

	case key.Matches(keyMsg, m.Keys.Up, m.Keys.Down, m.Keys.PageUp, m.Keys.PageDown):
		var vpCmd tea.Cmd
		m.OutputViewport, vpCmd = m.OutputViewport.Update(keyMsg)
		m.Following = m.OutputViewport.AtBottom()
		return m, vpCmd
	}

	return m, nil
}
