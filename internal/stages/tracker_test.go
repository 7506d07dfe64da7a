package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_AdvancesInPipelineOrder(t *testing.T) {
	tr := NewTracker(DefaultModel())
	assert.Equal(t, 0, tr.Peek().Current)

	previous := 0
	for i, name := range DefaultModel().Names() {
		matched := tr.Update("  " + name + "...")
		require.True(t, matched, "stage %q", name)

		current := tr.Peek().Current
		assert.Equal(t, i+1, current)
		assert.Greater(t, current, previous)
		previous = current
	}

	s := tr.Peek()
	assert.Equal(t, 9, s.Current)
	assert.Equal(t, 9, s.Total)
	assert.True(t, s.Finished())
}

func TestTracker_RegressesOnEarlierStage(t *testing.T) {
	tr := NewTracker(DefaultModel())

	tr.Update("  Finished all in 12.3 seconds")
	assert.Equal(t, 9, tr.Peek().Current)

	tr.Update("Log into image registry...")
	assert.Equal(t, 1, tr.Peek().Current)
}

func TestTracker_FirstStageInListOrderWins(t *testing.T) {
	tr := NewTracker(DefaultModel())

	// Names stage 8 and stage 3; list order decides.
	tr.Update("Releasing the deploy lock after Acquiring the deploy lock")
	assert.Equal(t, 3, tr.Peek().Current)
}

func TestTracker_IgnoresUnrelatedLines(t *testing.T) {
	tr := NewTracker(DefaultModel())
	tr.Update("Start container...")

	assert.False(t, tr.Update("INFO [abc] Running docker ps on host1"))
	assert.Equal(t, 6, tr.Peek().Current)
}

func TestTracker_SnapshotTogglesBlink(t *testing.T) {
	tr := NewTracker(DefaultModel())
	tr.Update("Start container")

	first := tr.Snapshot()
	second := tr.Snapshot()
	third := tr.Snapshot()

	assert.True(t, first.Blink)
	assert.False(t, second.Blink)
	assert.True(t, third.Blink)
	assert.Equal(t, 6, third.Current, "snapshots must not move progress")

	peeked := tr.Peek()
	assert.Equal(t, tr.Peek().Blink, peeked.Blink)
}

func TestTracker_Finish(t *testing.T) {
	tr := NewTracker(DefaultModel())
	tr.Finish()

	s := tr.Snapshot()
	assert.Equal(t, s.Total, s.Current)
	assert.True(t, s.Finished())
}

func TestModel_Label(t *testing.T) {
	m := DefaultModel()

	tests := []struct {
		current int
		name    string
		ok      bool
	}{
		{-1, "", false},
		{0, "", false},
		{1, "Log into image registry", true},
		{9, "Finished all", true},
		{10, "", false},
	}

	for _, tt := range tests {
		name, ok := m.Label(tt.current)
		assert.Equal(t, tt.ok, ok, "current %d", tt.current)
		assert.Equal(t, tt.name, name, "current %d", tt.current)
	}
}

func TestModel_IsImmutable(t *testing.T) {
	names := []string{"one", "two"}
	m := NewModel(names)
	names[0] = "changed"

	got := m.Names()
	got[1] = "changed too"

	assert.Equal(t, []string{"one", "two"}, m.Names())
}
