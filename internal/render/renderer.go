// Package render routes classified events and progress snapshots onto the
// panes of a terminal surface.
package render

import (
	"strings"

	"kamalx/internal/classify"
	"kamalx/internal/stages"

	"github.com/mattn/go-runewidth"
)

const (
	// MinBarWidth is the narrowest progress pane that still fits the brackets
	// and a cursor.
	MinBarWidth = 3

	FillChar        = "="
	CursorChar      = ">"
	StageLabel      = "Current Stage:"
	PlaceholderName = "waiting for first stage"
)

var barStyle = classify.Style{Color: classify.ColorGreen}

// Renderer draws events and progress onto a Surface.
type Renderer struct {
	surface Surface
	model   stages.Model
}

// New creates a renderer for surface using model to label progress.
func New(surface Surface, model stages.Model) *Renderer {
	return &Renderer{surface: surface, model: model}
}

// Display appends ev as a new bottom row of its pane. Stage events go to the
// stage history, everything else to the output pane.
func (r *Renderer) Display(ev classify.Event) {
	target := PaneOutput
	if ev.Kind == classify.KindStage {
		target = PaneStages
	}
	pane := r.surface.Pane(target)

	pane.ScrollUp()
	rows, _ := pane.Size()
	pane.SetCursor(max(rows-1, 0), 0)
	for _, seg := range ev.Segments {
		pane.Write(seg.Text, seg.Style)
	}
	pane.Refresh()
}

// DrawProgress redraws the progress pane from snap.
func (r *Renderer) DrawProgress(snap stages.Snapshot) {
	pane := r.surface.Pane(PaneProgress)
	rows, cols := pane.Size()

	pane.Clear()
	pane.SetCursor(0, 0)
	pane.Write(Bar(snap, cols), barStyle)

	if rows > 1 {
		name, ok := r.model.Label(snap.Current)
		if !ok {
			name = PlaceholderName
		}
		info := StageLabel + " " + name
		pane.SetCursor(1, LabelColumn(runewidth.StringWidth(info), cols))
		pane.Write(StageLabel, classify.Style{Bold: true})
		pane.Write(" "+name, classify.Style{})
	}

	pane.Refresh()
}

// Bar renders the bracketed progress bar for a pane that is width columns
// wide. Widths below MinBarWidth are clamped.
func Bar(snap stages.Snapshot, width int) string {
	if width < MinBarWidth {
		width = MinBarWidth
	}
	inner := width - 2

	current := snap.Current
	if current < 0 {
		current = 0
	}
	filled := 0
	if snap.Total > 0 {
		if current > snap.Total {
			current = snap.Total
		}
		filled = inner * current / snap.Total
	}
	if filled < 1 {
		filled = 1
	}

	cursor := " "
	if snap.Finished() || snap.Blink {
		cursor = CursorChar
	}

	var b strings.Builder
	b.Grow(width)
	b.WriteString("[")
	b.WriteString(strings.Repeat(FillChar, filled-1))
	b.WriteString(cursor)
	b.WriteString(strings.Repeat(" ", inner-filled))
	b.WriteString("]")
	return b.String()
}

// LabelColumn returns the column at which a label of labelWidth cells is
// centered inside a pane of cols columns, or 0 when it does not fit.
func LabelColumn(labelWidth, cols int) int {
	col := (cols - 2 - labelWidth) / 2
	if col < 0 {
		return 0
	}
	return col
}
