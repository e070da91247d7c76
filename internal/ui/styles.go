package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors - cyberpunk/neon palette
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14") // neon green
	ColorDanger     = lipgloss.Color("#FF5555") // red
	ColorMuted      = lipgloss.Color("#4A5568") // darker muted
	ColorBorder     = lipgloss.Color("#4A5568") // border
	ColorBackground = lipgloss.Color("#1F1F23") // dark background
	ColorBand       = lipgloss.Color("#26262C") // even-row band
	ColorCyan       = lipgloss.Color("#00FFFF") // neon cyan
	ColorText       = lipgloss.Color("#E4E4E7") // default text
	ColorDim        = lipgloss.Color("#9CA3AF") // lighter dim gray
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// Outline
	RowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	IconStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	BandStyle = lipgloss.NewStyle().
			Background(ColorBand)

	RowSelected = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	// Help bar - dimmer with bright key highlights
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3D4555")). // very dim
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorCyan).
		Background(lipgloss.Color("#1E3A4C")). // subtle dark cyan bg
		Padding(0, 1)

	// Help overlay key style (no background for cleaner look)
	HelpOverlayKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Padding(0, 1)
)

// DefaultCanvasStyles styles the outline grid
func DefaultCanvasStyles() CanvasStyles {
	return CanvasStyles{
		Text:      RowStyle,
		Icon:      IconStyle,
		Divider:   DividerStyle,
		Band:      BandStyle,
		Highlight: RowSelected,
	}
}

// BandStyles returns the default styles with the band tinted by color, a
// hex string; empty keeps the default
func BandStyles(color string) CanvasStyles {
	s := DefaultCanvasStyles()
	if color != "" {
		s.Band = lipgloss.NewStyle().Background(lipgloss.Color(color))
	}
	return s
}

// FormatCount formats a count with a unit, pluralized
func FormatCount(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
