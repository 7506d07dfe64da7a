package render

import "kamalx/internal/classify"

// PaneID names one of the three dashboard panes.
type PaneID int

const (
	PaneProgress PaneID = iota
	PaneStages
	PaneOutput
)

// String makes PaneID satisfy the fmt.Stringer interface.
func (p PaneID) String() string {
	switch p {
	case PaneProgress:
		return "progress"
	case PaneStages:
		return "stages"
	case PaneOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Pane is a fixed-geometry drawing region. Implementations own the cell
// storage; the renderer only issues primitives.
type Pane interface {
	// Size returns the interior geometry in rows and columns.
	Size() (rows, cols int)
	Clear()
	SetCursor(row, col int)
	// Write draws text at the cursor with style and advances the cursor.
	Write(text string, style classify.Style)
	// ScrollUp shifts every row up by one, dropping the top row.
	ScrollUp()
	Refresh()
}

// Surface hands out the panes the renderer draws into.
type Surface interface {
	Pane(id PaneID) Pane
}
