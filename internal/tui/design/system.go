package design

import (
	"kamalx/internal/classify"

	"github.com/charmbracelet/lipgloss"
)

// Spacing units
const (
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2
)

// Terminal palette. Pane content uses the eight basic ANSI colors so it reads
// the same on light and dark terminals.
var (
	ColorBlue   = lipgloss.Color("4")
	ColorGreen  = lipgloss.Color("2")
	ColorYellow = lipgloss.Color("3")
	ColorRed    = lipgloss.Color("1")
	ColorWhite  = lipgloss.Color("7")

	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorTitle = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F9FAFB",
	}
	ColorSurfaceAlt = lipgloss.AdaptiveColor{
		Light: "#F3F4F6",
		Dark:  "#262626",
	}
	ColorTextMuted = lipgloss.AdaptiveColor{
		Light: "#9CA3AF",
		Dark:  "#6B7280",
	}
)

var (
	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTitle)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurfaceAlt).
			Foreground(ColorTitle).
			Padding(0, SpaceXS)

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// PaletteColor maps a semantic event color onto the terminal palette. The
// boolean is false for ColorNone, which keeps the terminal default.
func PaletteColor(c classify.Color) (lipgloss.Color, bool) {
	switch c {
	case classify.ColorBlue:
		return ColorBlue, true
	case classify.ColorGreen:
		return ColorGreen, true
	case classify.ColorYellow:
		return ColorYellow, true
	case classify.ColorRed:
		return ColorRed, true
	case classify.ColorWhite:
		return ColorWhite, true
	default:
		return "", false
	}
}

// StyleFor returns the lipgloss style used to draw a run written with s.
func StyleFor(s classify.Style) lipgloss.Style {
	return applyStyle(lipgloss.NewStyle(), s)
}

// RendererStyleFor is StyleFor bound to r, for output that is not the
// program's stdout.
func RendererStyleFor(r *lipgloss.Renderer, s classify.Style) lipgloss.Style {
	return applyStyle(r.NewStyle(), s)
}

func applyStyle(style lipgloss.Style, s classify.Style) lipgloss.Style {
	if c, ok := PaletteColor(s.Color); ok {
		style = style.Foreground(c)
	}
	if s.Bold {
		style = style.Bold(true)
	}
	return style
}
