package model

import (
	"errors"
	"time"

	"kamalx/internal/runner"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxLineBatch bounds the lines handled per update so ticks and keys are not
// starved by a chatty process.
const MaxLineBatch = 256

// errNoExitStatus is reported when the exit channel closed without a value.
var errNoExitStatus = errors.New("exit status unavailable")

// ListenForLinesCmd waits for the next line and drains whatever else is
// already buffered.
func ListenForLinesCmd(lines <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return LineBatchMsg{Closed: true}
		}
		batch := []string{line}
		for len(batch) < MaxLineBatch {
			select {
			case line, ok := <-lines:
				if !ok {
					return LineBatchMsg{Lines: batch, Closed: true}
				}
				batch = append(batch, line)
			default:
				return LineBatchMsg{Lines: batch}
			}
		}
		return LineBatchMsg{Lines: batch}
	}
}

// WaitForExitCmd waits for the process exit.
func WaitForExitCmd(done <-chan runner.Exit) tea.Cmd {
	return func() tea.Msg {
		exit, ok := <-done
		if !ok {
			return ProcessExitedMsg{Exit: runner.Exit{Code: -1, Err: errNoExitStatus}}
		}
		return ProcessExitedMsg{Exit: exit}
	}
}

// TickCmd schedules the next progress redraw.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// StopTimeoutCmd fires StopTimeoutMsg after d.
func StopTimeoutCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StopTimeoutMsg{}
	})
}
