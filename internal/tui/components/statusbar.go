package components

import (
	"fmt"
	"strings"
	"time"

	"kamalx/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RunState is the lifecycle of the wrapped command as shown in the status bar.
type RunState int

const (
	StateRunning RunState = iota
	StateStopping
	StateSucceeded
	StateFailed
)

// String makes RunState satisfy the fmt.Stringer interface.
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateSucceeded:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Width     int
	Command   string
	Elapsed   time.Duration
	State     RunState
	Message   string
	RightText string
}

// NewStatusBar creates a new status bar
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{Width: width}
}

// WithCommand sets the wrapped command line
func (s *StatusBar) WithCommand(command string) *StatusBar {
	s.Command = command
	return s
}

// WithElapsed sets the run time
func (s *StatusBar) WithElapsed(d time.Duration) *StatusBar {
	s.Elapsed = d
	return s
}

// WithState sets the run state
func (s *StatusBar) WithState(state RunState) *StatusBar {
	s.State = state
	return s
}

// WithMessage sets a transient message shown in place of the command
func (s *StatusBar) WithMessage(message string) *StatusBar {
	s.Message = message
	return s
}

// WithRightText sets the right side text
func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.RightText = text
	return s
}

// Render returns the styled status bar
func (s *StatusBar) Render() string {
	if s.Width <= 0 {
		return ""
	}

	subject := s.Command
	if s.Message != "" {
		subject = s.Message
	}
	left := fmt.Sprintf("%s %s  %s", stateStyle(s.State).Render(s.State.String()), FormatElapsed(s.Elapsed), subject)

	avail := s.Width - design.SpaceXS*2
	content := left
	if s.RightText != "" {
		padding := avail - lipgloss.Width(left) - lipgloss.Width(s.RightText)
		if padding > 0 {
			content = left + strings.Repeat(" ", padding) + s.RightText
		}
	}
	content = ansi.Truncate(content, max(avail, 0), "")

	return design.StatusBarStyle.
		Width(s.Width).
		MaxWidth(s.Width).
		Render(content)
}

func stateStyle(state RunState) lipgloss.Style {
	switch state {
	case StateSucceeded:
		return design.StatusSuccessStyle
	case StateFailed:
		return design.StatusErrorStyle
	default:
		return design.StatusRunningStyle
	}
}

// FormatElapsed renders d as mm:ss, or h:mm:ss past an hour.
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	sec := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
