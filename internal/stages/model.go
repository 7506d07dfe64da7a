// Package stages tracks how far a kamal deploy has progressed through its
// fixed pipeline.
package stages

import "strings"

// deployStages are the stages kamal goes through during a deploy, in order.
var deployStages = []string{
	"Log into image registry",
	"Build and push app image",
	"Acquiring the deploy lock",
	"Ensure Traefik is running",
	"Detect stale containers",
	"Start container",
	"Prune old containers and images",
	"Releasing the deploy lock",
	"Finished all",
}

// Model is an immutable ordered list of stage names.
type Model struct {
	names []string
}

// DefaultModel returns the kamal deploy pipeline.
func DefaultModel() Model {
	return NewModel(deployStages)
}

// NewModel creates a model from names. The slice is copied.
func NewModel(names []string) Model {
	cp := make([]string, len(names))
	copy(cp, names)
	return Model{names: cp}
}

// Len returns the number of stages.
func (m Model) Len() int {
	return len(m.names)
}

// Names returns a copy of the stage names.
func (m Model) Names() []string {
	cp := make([]string, len(m.names))
	copy(cp, m.names)
	return cp
}

// Label returns the name of the stage reached at progress index current
// (1-based). ok is false when no stage has been reached yet or current is
// out of range.
func (m Model) Label(current int) (name string, ok bool) {
	if current < 1 || current > len(m.names) {
		return "", false
	}
	return m.names[current-1], true
}

// Match returns the 1-based position of the first stage whose name occurs
// in line, or 0 when none does.
func (m Model) Match(line string) int {
	for i, name := range m.names {
		if strings.Contains(line, name) {
			return i + 1
		}
	}
	return 0
}
