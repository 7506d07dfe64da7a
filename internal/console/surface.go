// Package console renders the dashboard as plain scrolling lines for
// terminals where the full screen program is unwanted.
package console

import (
	"io"
	"strings"

	"kamalx/internal/classify"
	"kamalx/internal/render"
	"kamalx/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the nominal pane width when none is configured.
const DefaultWidth = 80

// Surface prints every completed stage and output row to a writer. Progress
// drawing is accepted and discarded.
type Surface struct {
	progress discardPane
	stages   *linePane
	output   *linePane
}

// NewSurface creates a surface printing to out. Colors follow what out
// supports.
func NewSurface(out io.Writer, width int) *Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	r := lipgloss.NewRenderer(out)
	return &Surface{
		progress: discardPane{cols: width},
		stages:   &linePane{out: out, renderer: r, cols: width},
		output:   &linePane{out: out, renderer: r, cols: width},
	}
}

// Pane implements render.Surface.
func (s *Surface) Pane(id render.PaneID) render.Pane {
	switch id {
	case render.PaneProgress:
		return s.progress
	case render.PaneStages:
		return s.stages
	default:
		return s.output
	}
}

// linePane collects the row opened by ScrollUp and prints it on Refresh.
type linePane struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	cols     int

	row  strings.Builder
	open bool
}

func (p *linePane) Size() (rows, cols int) { return 1, p.cols }

func (p *linePane) Clear() {
	p.row.Reset()
}

// SetCursor is a no-op; rows are only ever appended.
func (p *linePane) SetCursor(row, col int) {}

func (p *linePane) Write(text string, style classify.Style) {
	if text == "" {
		return
	}
	p.open = true
	p.row.WriteString(design.RendererStyleFor(p.renderer, style).Render(text))
}

func (p *linePane) ScrollUp() {
	p.row.Reset()
	p.open = true
}

func (p *linePane) Refresh() {
	if !p.open {
		return
	}
	p.row.WriteByte('\n')
	_, _ = io.WriteString(p.out, p.row.String())
	p.row.Reset()
	p.open = false
}

type discardPane struct {
	cols int
}

func (d discardPane) Size() (rows, cols int) { return 2, d.cols }
func (discardPane) Clear() {}
func (discardPane) SetCursor(row, col int) {}
func (discardPane) Write(text string, style classify.Style) {}
func (discardPane) ScrollUp() {}
func (discardPane) Refresh() {}
