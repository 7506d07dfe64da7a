package components

import "kamalx/internal/render"

// Surface holds the three dashboard panes.
type Surface struct {
	Progress *ScrollPane
	Stages   *ScrollPane
	Output   *ScrollPane
}

// NewSurface creates the panes for g. The output pane keeps up to history
// lines of scrollback.
func NewSurface(g Geometry, history int) *Surface {
	return &Surface{
		Progress: NewScrollPane(g.Progress.Rows, g.Progress.Cols, 0),
		Stages:   NewScrollPane(g.Stages.Rows, g.Stages.Cols, 0),
		Output:   NewScrollPane(g.Output.Rows, g.Output.Cols, history),
	}
}

// Pane implements render.Surface.
func (s *Surface) Pane(id render.PaneID) render.Pane {
	switch id {
	case render.PaneProgress:
		return s.Progress
	case render.PaneStages:
		return s.Stages
	default:
		return s.Output
	}
}

// Resize applies g to every pane.
func (s *Surface) Resize(g Geometry) {
	s.Progress.Resize(g.Progress.Rows, g.Progress.Cols)
	s.Stages.Resize(g.Stages.Rows, g.Stages.Cols)
	s.Output.Resize(g.Output.Rows, g.Output.Cols)
}

// Version changes whenever any pane is refreshed.
func (s *Surface) Version() uint64 {
	return s.Progress.Version() + s.Stages.Version() + s.Output.Version()
}
