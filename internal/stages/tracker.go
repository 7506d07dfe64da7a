package stages

// Snapshot is the progress state handed to the renderer for one draw.
type Snapshot struct {
	Current int
	Total   int
	// Blink is the cursor phase for this draw; true shows the cursor.
	Blink bool
}

// Finished reports whether the pipeline reached its last stage.
func (s Snapshot) Finished() bool {
	return s.Total > 0 && s.Current >= s.Total
}

// Tracker maintains the current position in a stage model.
//
// Progress follows the most recent line that names a stage, so a later line
// naming an earlier stage moves the position back.
type Tracker struct {
	model   Model
	current int
	blink   bool
}

// NewTracker creates a tracker positioned before the first stage.
func NewTracker(model Model) *Tracker {
	return &Tracker{model: model, blink: true}
}

// Update advances the tracker from line. It reports whether line named a
// stage.
func (t *Tracker) Update(line string) bool {
	idx := t.model.Match(line)
	if idx == 0 {
		return false
	}
	t.current = idx
	return true
}

// Snapshot returns the state for the next draw and flips the blink phase.
func (t *Tracker) Snapshot() Snapshot {
	s := t.Peek()
	t.blink = !t.blink
	return s
}

// Peek returns the current state without flipping the blink phase.
func (t *Tracker) Peek() Snapshot {
	return Snapshot{Current: t.current, Total: t.model.Len(), Blink: t.blink}
}

// Finish moves the tracker to the last stage.
func (t *Tracker) Finish() {
	t.current = t.model.Len()
}

// Model returns the stage model the tracker follows.
func (t *Tracker) Model() Model {
	return t.model
}
