package model

import (
	"time"

	"kamalx/internal/runner"
)

// LineBatchMsg carries the lines that were ready at once. Closed is set when
// the process output ended after these lines.
type LineBatchMsg struct {
	Lines  []string
	Closed bool
}

// ProcessExitedMsg reports the end of the process. It is only requested after
// the output ended, so no line can follow it.
type ProcessExitedMsg struct {
	Exit runner.Exit
}

// TickMsg animates the progress cursor and the elapsed time.
type TickMsg time.Time

// StopTimeoutMsg fires when a graceful stop took longer than the grace period.
type StopTimeoutMsg struct{}

// ClearStatusBarMsg removes a transient status message.
type ClearStatusBarMsg struct{}
