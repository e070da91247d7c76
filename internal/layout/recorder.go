package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lumipallolabs/groupview/internal/model"
)

// Call is one recorded paint call
type Call struct {
	Op   string
	Rect model.Rect
	Text string
}

// Recorder is a headless Painter with fixed-size glyphs. It wraps text by
// character count and records every draw call.
type Recorder struct {
	Line      int // line height
	CharWidth int
	Calls     []Call
}

// NewRecorder creates a recorder with the given glyph size
func NewRecorder(line, charWidth int) *Recorder {
	return &Recorder{Line: line, CharWidth: charWidth}
}

func (r *Recorder) LineHeight() int { return r.Line }

// MeasureText returns the height of text wrapped to maxWidth
func (r *Recorder) MeasureText(text string, maxWidth int) int {
	perLine := maxWidth / r.CharWidth
	if perLine < 1 {
		perLine = 1
	}
	lines := 0
	for _, para := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(para)
		lines += max(1, (n+perLine-1)/perLine)
	}
	return lines * r.Line
}

func (r *Recorder) DrawText(rect model.Rect, text string, _ model.Align) {
	r.Calls = append(r.Calls, Call{Op: "text", Rect: rect, Text: text})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 int) {
	r.Calls = append(r.Calls, Call{Op: "line", Rect: model.Rect{Left: x1, Top: y1, Right: x2, Bottom: y2}})
}

func (r *Recorder) DrawRect(rect model.Rect, band bool) {
	r.Calls = append(r.Calls, Call{Op: "rect", Rect: rect, Text: fmt.Sprint(band)})
}

func (r *Recorder) DrawIcon(rect model.Rect, expanded bool) {
	r.Calls = append(r.Calls, Call{Op: "icon", Rect: rect, Text: fmt.Sprint(expanded)})
}

func (r *Recorder) Highlight(rect model.Rect) {
	r.Calls = append(r.Calls, Call{Op: "highlight", Rect: rect})
}

// Texts returns the text of every recorded DrawText call
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}

// Clear forgets recorded calls
func (r *Recorder) Clear() {
	r.Calls = r.Calls[:0]
}

var (
	_ Painter = (*Recorder)(nil)
	_ Clearer = (*Recorder)(nil)
)
