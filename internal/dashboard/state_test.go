package dashboard

import (
	"errors"
	"strings"
	"testing"

	"kamalx/internal/stages"
	"kamalx/internal/tui/components"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) (*State, *components.Surface) {
	t.Helper()
	surface := components.NewSurface(components.NewLayout(80, 24).Compute(), 100)
	return New(surface, Options{}), surface
}

func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	return lines[len(lines)-1]
}

func progressLines(s *components.Surface) []string {
	return strings.Split(ansi.Strip(s.Progress.View()), "\n")
}

func TestState_RoutesStageLinesToHistory(t *testing.T) {
	state, surface := newState(t)

	state.HandleLine("  Acquiring the deploy lock...")
	state.HandleLine("INFO [abc] Running docker ps on host1")

	assert.Equal(t, "Stage: Acquiring the deploy lock", surface.Stages.Text())
	assert.Equal(t, "Command[abc@host1] docker ps", surface.Output.Text())
	assert.Equal(t, 3, state.Progress().Current)
}

func TestState_RedrawsProgressOnStage(t *testing.T) {
	state, surface := newState(t)

	state.HandleLine("Start container...")

	lines := progressLines(surface)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[="))
	assert.Contains(t, lines[1], "Current Stage: Start container")
}

func TestState_UnrelatedLinesLeaveProgressAlone(t *testing.T) {
	state, surface := newState(t)
	before := surface.Progress.Version()

	state.HandleLine("INFO plain message")

	assert.Equal(t, before, surface.Progress.Version())
	assert.Equal(t, "Info: plain message", surface.Output.Text())
}

func TestState_TickBlinksCursor(t *testing.T) {
	state, surface := newState(t)
	state.HandleLine("Build and push app image...")

	state.Tick()
	first := progressLines(surface)[0]
	state.Tick()
	second := progressLines(surface)[0]

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, state.Progress().Current)
}

func TestState_RedrawKeepsBlinkPhase(t *testing.T) {
	state, surface := newState(t)
	phase := state.Progress().Blink

	state.Redraw()
	assert.Equal(t, phase, state.Progress().Blink)
	assert.Contains(t, progressLines(surface)[1], "waiting for first stage")
}

func TestState_Terminate(t *testing.T) {
	state, surface := newState(t)
	state.HandleLine("Log into image registry...")
	state.HandleLine("INFO [abc] Running deploy on host1")
	state.HandleLine("INFO [abc] Finished in 2.3 seconds with exit status 0")

	state.Terminate(0, nil)

	assert.True(t, state.Finished())
	snap := state.Progress()
	assert.Equal(t, snap.Total, snap.Current)
	assert.Equal(t, "Kamal finished. Press 'ctrl+c' to exit.", lastLine(surface.Output.Text()))
	assert.Contains(t, surface.Output.Text(), "Command[abc@host1] Returned Status: 0")
	assert.Contains(t, progressLines(surface)[1], "Current Stage: Finished all")
}

func TestState_IgnoresInputAfterTerminate(t *testing.T) {
	state, surface := newState(t)
	state.Terminate(0, nil)

	output := surface.Output.Text()
	version := surface.Version()

	state.HandleLine("INFO late line")
	state.Tick()
	state.Tick()
	state.Terminate(1, nil)

	assert.Equal(t, output, surface.Output.Text())
	assert.Equal(t, version, surface.Version())
	assert.True(t, strings.HasSuffix(progressLines(surface)[0], ">]"))
}

func TestState_CustomNameAndModel(t *testing.T) {
	surface := components.NewSurface(components.NewLayout(60, 20).Compute(), 10)
	state := New(surface, Options{
		Name:  "Deploy",
		Model: stages.NewModel([]string{"first", "second"}),
	})

	state.HandleLine("doing second thing")
	assert.Equal(t, stages.Snapshot{Current: 2, Total: 2, Blink: false}, state.Progress())

	state.Terminate(3, nil)
	assert.Equal(t, "Deploy finished with exit status 3. Press 'ctrl+c' to exit.", lastLine(surface.Output.Text()))
}

func TestFinalMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		err  error
		want string
	}{
		{"success", 0, nil, "Kamal finished. Press 'ctrl+c' to exit."},
		{"failure", 2, nil, "Kamal finished with exit status 2. Press 'ctrl+c' to exit."},
		{"start error", -1, errors.New("exec: \"kamal\": executable file not found in $PATH"),
			"Kamal failed: exec: \"kamal\": executable file not found in $PATH. Press 'ctrl+c' to exit."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalMessage(DefaultName, tt.code, tt.err))
		})
	}
}
