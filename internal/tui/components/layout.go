package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants, in terminal lines.
const (
	ProgressBoxHeight = 4
	SpacerHeight      = 1
	GapHeight         = 1
	StatusBarHeight   = 1

	// MinBoxHeight is a border with no interior rows.
	MinBoxHeight = 2
)

// Rect is the interior size of a box.
type Rect struct {
	Rows int
	Cols int
}

// Geometry is the computed placement of the dashboard boxes.
type Geometry struct {
	Width int

	// SectionHeight is the outer height of the stage and output boxes.
	SectionHeight int

	Progress Rect
	Stages   Rect
	Output   Rect
}

// Layout splits the window into the dashboard boxes
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a new layout manager
func NewLayout(width, height int) *Layout {
	return &Layout{
		Width:  width,
		Height: height,
	}
}

// CalculateContentArea returns the height left after the status bar
func (l *Layout) CalculateContentArea(statusBarHeight int) int {
	contentHeight := l.Height - statusBarHeight
	if contentHeight < 0 {
		contentHeight = 0
	}
	return contentHeight
}

// Compute places a progress box of ProgressBoxHeight lines at the top, then
// a spacer, then splits the remaining height equally between the stage and
// output boxes with a gap line between them.
func (l *Layout) Compute() Geometry {
	width := max(l.Width, 0)
	content := l.CalculateContentArea(StatusBarHeight)

	remaining := content - ProgressBoxHeight - SpacerHeight - GapHeight
	section := max(remaining/2, MinBoxHeight)

	inner := max(width-2, 0)
	return Geometry{
		Width:         width,
		SectionHeight: section,
		Progress:      Rect{Rows: ProgressBoxHeight - 2, Cols: inner},
		Stages:        Rect{Rows: section - 2, Cols: inner},
		Output:        Rect{Rows: section - 2, Cols: inner},
	}
}

// Spacer returns n empty lines.
func Spacer(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("\n", n-1)
}

// JoinVertical joins components vertically
func JoinVertical(components ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, components...)
}
