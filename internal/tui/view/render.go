package view

import (
	"fmt"

	"kamalx/internal/tui/components"
	"kamalx/internal/tui/design"
	"kamalx/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	if !m.Ready {
		return design.DimStyle.Render("Starting " + m.CommandLine + "...")
	}

	g := m.Geometry
	progress := components.NewBox(components.TitleProgress, g.Width, components.ProgressBoxHeight).
		Render(m.Surface.Progress.View())
	stageHistory := components.NewBox(components.TitleStages, g.Width, g.SectionHeight).
		Render(m.Surface.Stages.View())
	output := components.NewBox(outputTitle(m), g.Width, g.SectionHeight).
		Render(m.OutputViewport.View())

	sections := []string{
		progress,
		components.Spacer(components.SpacerHeight),
		stageHistory,
		components.Spacer(components.GapHeight),
		output,
		renderStatusBar(m),
	}
	if m.Help.ShowAll {
		sections = append(sections, m.Help.View(m.Keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// outputTitle marks the output box while it is not following new lines.
func outputTitle(m *model.Model) string {
	if m.Following {
		return components.TitleOutput
	}
	return fmt.Sprintf("%s(%3.f%%) ", components.TitleOutput, m.OutputViewport.ScrollPercent()*100)
}

func renderStatusBar(m *model.Model) string {
	bar := components.NewStatusBar(m.Width).
		WithCommand(m.CommandLine).
		WithElapsed(m.Elapsed()).
		WithState(m.RunState()).
		WithMessage(m.StatusBarMessage)
	if !m.Help.ShowAll {
		bar.WithRightText(m.Help.ShortHelpView(m.Keys.ShortHelp()))
	}
	return bar.Render()
}
