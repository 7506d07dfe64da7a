// Package dashboard ties the classifier, the stage tracker and the renderer
// together for one run of the wrapped command.
package dashboard

import (
	"fmt"

	"kamalx/internal/classify"
	"kamalx/internal/render"
	"kamalx/internal/stages"
)

// DefaultName is the program name used in the final status line.
const DefaultName = "Kamal"

// Options configures a State.
type Options struct {
	// Model defaults to the kamal deploy pipeline.
	Model stages.Model
	// Name defaults to DefaultName.
	Name string
}

// State is the dashboard for one monitored process. It is not safe for
// concurrent use; callers serialize lines, ticks and termination.
type State struct {
	classifier *classify.Classifier
	tracker    *stages.Tracker
	renderer   *render.Renderer

	name     string
	finished bool
}

// New creates a dashboard drawing onto surface.
func New(surface render.Surface, opts Options) *State {
	model := opts.Model
	if model.Len() == 0 {
		model = stages.DefaultModel()
	}
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	return &State{
		classifier: classify.New(),
		tracker:    stages.NewTracker(model),
		renderer:   render.New(surface, model),
		name:       name,
	}
}

// HandleLine classifies line, advances the tracker and appends the event to
// its pane. The progress pane is redrawn when the line names a stage. Lines
// arriving after Terminate are dropped.
func (s *State) HandleLine(line string) {
	if s.finished {
		return
	}
	ev := s.classifier.Classify(line)
	moved := s.tracker.Update(line)
	s.renderer.Display(ev)
	if moved {
		s.renderer.DrawProgress(s.tracker.Snapshot())
	}
}

// Tick redraws the progress pane to animate the cursor. It does nothing once
// the run has finished.
func (s *State) Tick() {
	if s.finished {
		return
	}
	s.renderer.DrawProgress(s.tracker.Snapshot())
}

// Redraw repaints the progress pane without advancing the blink phase.
func (s *State) Redraw() {
	s.renderer.DrawProgress(s.tracker.Peek())
}

// Terminate completes the progress bar and appends the final status line.
// code is the exit status of the process and err a failure to start or wait
// for it. Only the first call has an effect.
func (s *State) Terminate(code int, err error) {
	if s.finished {
		return
	}
	s.finished = true
	s.tracker.Finish()
	s.renderer.DrawProgress(s.tracker.Snapshot())
	s.renderer.Display(classify.Event{
		Kind:     classify.KindInfo,
		Color:    classify.ColorRed,
		Segments: []classify.Segment{classify.Bold(FinalMessage(s.name, code, err), classify.ColorRed)},
	})
}

// Finished reports whether Terminate has been called.
func (s *State) Finished() bool {
	return s.finished
}

// Progress returns the current progress without advancing the blink phase.
func (s *State) Progress() stages.Snapshot {
	return s.tracker.Peek()
}

// Hostname resolves a command id the way finished-command lines do.
func (s *State) Hostname(id string) string {
	return s.classifier.Hostname(id)
}

// FinalMessage is the status line shown when the process is gone.
func FinalMessage(name string, code int, err error) string {
	const hint = "Press 'ctrl+c' to exit."
	switch {
	case err != nil:
		return fmt.Sprintf("%s failed: %v. %s", name, err, hint)
	case code != 0:
		return fmt.Sprintf("%s finished with exit status %d. %s", name, code, hint)
	default:
		return fmt.Sprintf("%s finished. %s", name, hint)
	}
}
