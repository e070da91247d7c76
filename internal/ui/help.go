package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 14 // Width for key column in help text (includes padding)

var helpSections = []string{"Navigation", "Groups", "Selection", "General"}

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	title   string
	keys    KeyMap
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(title string, keys KeyMap) HelpOverlay {
	return HelpOverlay{title: title, keys: keys}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 3)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder
	content.WriteString(TitleStyle.Render(h.title))
	content.WriteString("\n")

	for i, group := range h.keys.FullHelp() {
		if i < len(helpSections) {
			content.WriteString(sectionStyle.Render(helpSections[i]))
			content.WriteString("\n")
		}
		for _, b := range group {
			content.WriteString(formatHelpLine(HelpOverlayKey, descStyle, b.Help().Key, b.Help().Desc))
		}
	}

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Press any key to close"))

	box := boxStyle.Render(content.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// HelpBar renders a bottom help bar with key hints. Hints that do not fit
// the width are dropped.
func HelpBar(keys KeyMap, width int) string {
	m := help.New()
	m.Width = max(width-2, 0)
	m.ShortSeparator = "  "
	m.Styles.ShortKey = HelpKey
	m.Styles.ShortDesc = lipgloss.NewStyle().Foreground(ColorDim)
	m.Styles.ShortSeparator = HelpStyle
	m.Styles.Ellipsis = HelpStyle
	return HelpStyle.Width(width).MaxHeight(1).Render(m.ShortHelpView(keys.ShortHelp()))
}
