package components

import (
	"strings"

	"kamalx/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Box titles
const (
	TitleProgress = " Progress "
	TitleStages   = " Stage History "
	TitleOutput   = " Command Outputs "
)

// titleOffset is the column at which the title starts in the top border.
const titleOffset = 2

// Box draws a bordered frame with a title set into the top edge.
type Box struct {
	Title  string
	Width  int
	Height int
}

// NewBox creates a box of the given outer size.
func NewBox(title string, width, height int) *Box {
	return &Box{Title: title, Width: width, Height: height}
}

// Render frames body, which may contain ANSI styling. Body lines beyond the
// interior are dropped and short bodies are padded.
func (b *Box) Render(body string) string {
	if b.Width < 2 || b.Height < 2 {
		return ""
	}
	border := lipgloss.NormalBorder()
	inner := b.Width - 2
	rows := b.Height - 2

	lines := make([]string, 0, b.Height)
	lines = append(lines, b.top(border, inner))

	var content []string
	if body != "" {
		content = strings.Split(body, "\n")
	}
	side := design.BorderStyle.Render(border.Left)
	right := design.BorderStyle.Render(border.Right)
	for i := 0; i < rows; i++ {
		var line string
		if i < len(content) {
			line = fit(content[i], inner)
		} else {
			line = strings.Repeat(" ", inner)
		}
		lines = append(lines, side+line+right)
	}

	bottom := border.BottomLeft + strings.Repeat(border.Bottom, inner) + border.BottomRight
	lines = append(lines, design.BorderStyle.Render(bottom))
	return strings.Join(lines, "\n")
}

func (b *Box) top(border lipgloss.Border, inner int) string {
	title := runewidth.Truncate(b.Title, max(inner-titleOffset, 0), "")
	lead := min(titleOffset, inner)
	if title == "" {
		lead = inner
	}
	rest := max(inner-lead-runewidth.StringWidth(title), 0)

	return design.BorderStyle.Render(border.TopLeft+strings.Repeat(border.Top, lead)) +
		design.TitleStyle.Render(title) +
		design.BorderStyle.Render(strings.Repeat(border.Top, rest)+border.TopRight)
}

// fit clips or pads s to exactly width columns.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		w = ansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
