// Package layout computes the vertical geometry of an outline tree and
// issues paint calls for the part inside the viewport.
package layout

import "github.com/lumipallolabs/groupview/internal/model"

// Painter draws on behalf of the layout engine. Rects are in client
// coordinates; heights returned by MeasureText must depend only on the
// text and width.
type Painter interface {
	LineHeight() int
	MeasureText(text string, maxWidth int) int
	DrawText(r model.Rect, text string, align model.Align)
	DrawLine(x1, y1, x2, y2 int)
	DrawRect(r model.Rect, band bool)
	DrawIcon(r model.Rect, expanded bool)
	Highlight(r model.Rect)
}

// Metrics are the device-unit constants of a painter
type Metrics struct {
	HeaderPadding     int // added to a header's wrapped text height
	InsetX            int // horizontal text inset inside a column
	InsetY            int // vertical text inset inside a row
	MinTextWidth      int
	IconWidth         int // 0 uses the configured indent
	IconHeight        int // 0 uses the configured indent
	SplitterTolerance int // hit distance around a column divider
	ScrollMargin      int // added to content extents for the scroll range
}

// DefaultMetrics are pixel metrics
var DefaultMetrics = Metrics{
	HeaderPadding:     2,
	InsetX:            2,
	InsetY:            2,
	MinTextWidth:      10,
	SplitterTolerance: 1,
	ScrollMargin:      32,
}

// TerminalMetrics are character-cell metrics
var TerminalMetrics = Metrics{
	InsetX:       1,
	MinTextWidth: 1,
	IconWidth:    2,
	IconHeight:   1,
	ScrollMargin: 1,
}

// IconSize returns the icon dimensions for an indent
func (m Metrics) IconSize(indent int) (w, h int) {
	w, h = m.IconWidth, m.IconHeight
	if w == 0 {
		w = indent
	}
	if h == 0 {
		h = indent
	}
	return w, h
}
