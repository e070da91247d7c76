package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/groupview/internal/core"
)

// Header displays the source name and outline counts on one line
type Header struct {
	title   string
	source  string
	width   int
	state   core.State
	loading bool
	err     error
}

// NewHeader creates a new header component
func NewHeader(title, source string) Header {
	return Header{title: title, source: source}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// SetState updates the counts shown on the right
func (h *Header) SetState(s core.State) {
	h.state = s
}

// SetLoading marks a reload in progress
func (h *Header) SetLoading(loading bool) {
	h.loading = loading
}

// SetError shows err in place of the counts; nil clears it
func (h *Header) SetError(err error) {
	h.err = err
}

// View renders the header
// Title source                      12 rows · 3 groups · 2 filtered
func (h Header) View() string {
	left := TitleStyle.Render(h.title)
	if h.source != "" {
		left += LabelStyle.Render("  " + h.source)
	}
	if h.loading {
		left += LabelStyle.Render("  reloading…")
	}

	var right string
	switch {
	case h.err != nil:
		right = ErrorStyle.Render(fmt.Sprintf("Error: %v", h.err))
	case len(h.state.Errors) > 0:
		right = ErrorStyle.Render(FormatCount(len(h.state.Errors), "expression error"))
	default:
		parts := []string{
			FormatCount(h.state.Stats.Rows, "row"),
			FormatCount(h.state.Nodes, "group"),
		}
		if h.state.Stats.Filtered > 0 {
			parts = append(parts, fmt.Sprintf("%d filtered", h.state.Stats.Filtered))
		}
		right = StatsStyle.Render(strings.Join(parts, " · "))
	}

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 2 {
		gap = 2
	}
	return HeaderStyle.Width(h.width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + right)
}
