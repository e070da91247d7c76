package layout

import (
	"github.com/rs/zerolog"

	"github.com/lumipallolabs/groupview/internal/logging"
	"github.com/lumipallolabs/groupview/internal/model"
)

// Column is the geometry of one display column
type Column struct {
	Width  int
	Align  model.Align
	Extend bool
}

// Pass holds the inputs of one layout pass
type Pass struct {
	Tree    *model.Tree
	Columns []Column

	Indent       int
	LineSpacing  int
	MaxRowHeight int
	EvenBand     bool

	// Cell returns the display text of a column for a line
	Cell func(col, line int) string
	// Selected reports whether a line is drawn highlighted
	Selected func(line int) bool
	// Focus is a pure header drawn highlighted, if any
	Focus model.NodeID

	// Viewport is the visible area in content coordinates
	Viewport model.Rect
	// GeometryValid allows cached positions to be trusted
	GeometryValid bool
}

// Result reports what a pass did
type Result struct {
	Height  int  // total content height
	Corrupt bool // cached geometry disagreed with a fresh position
	Painted int  // headers and rows painted
	Culled  int  // subtrees and rows skipped from cache
}

// Clearer is implemented by painters that can discard a previous pass
type Clearer interface {
	Clear()
}

// Engine lays out trees for one painter
type Engine struct {
	Metrics Metrics
	log     zerolog.Logger
}

// NewEngine creates an engine using the given metrics
func NewEngine(m Metrics) *Engine {
	return &Engine{Metrics: m, log: logging.Layout}
}

// ColumnLefts returns the left edge of every column plus the right edge of
// the last one
func ColumnLefts(cols []Column) []int {
	out := make([]int, len(cols)+1)
	for i, c := range cols {
		out[i+1] = out[i] + c.Width
	}
	return out
}

// walker carries the running state of one pass
type walker struct {
	e      *Engine
	p      Painter
	pass   *Pass
	valid  bool
	items  int
	lefts  []int
	result Result
}

// Layout positions every node and row of the tree, painting those that
// intersect the viewport, and returns the content height
func (e *Engine) Layout(p Painter, pass *Pass) Result {
	if c, ok := p.(Clearer); ok {
		c.Clear()
	}
	w := &walker{
		e:     e,
		p:     p,
		pass:  pass,
		valid: pass.GeometryValid,
		lefts: ColumnLefts(pass.Columns),
	}

	root := pass.Tree.Root()
	pos := w.layoutBody(root, 0, 0)
	root.Top, root.Body, root.Bottom = 0, 0, pos
	root.Items = w.items

	w.drawDividers()
	w.result.Height = pos
	return w.result
}

// layoutBody lays out a node's children, then its rows
func (w *walker) layoutBody(n *model.Node, indent, top int) int {
	for _, id := range n.Children {
		top = w.layoutNode(w.pass.Tree.Node(id), indent, top)
	}
	for i := range n.Rows {
		top = w.layoutRow(&n.Rows[i], indent, top)
	}
	return top
}

func (w *walker) layoutNode(n *model.Node, indent, top int) int {
	if w.valid && n.Top != top {
		w.e.log.Warn().
			Uint64("node", uint64(n.ID)).
			Int("cached", n.Top).
			Int("top", top).
			Msg("cached geometry out of sync, recomputing")
		w.result.Corrupt = true
		w.valid = false
	}

	if w.valid && !w.visible(n.Top, n.Bottom) {
		w.items += n.Items
		w.result.Culled++
		return n.Bottom
	}

	start := w.items
	band := w.nextBand()
	n.Top = top

	// Only a node with an icon shifts its text past it
	textIndent := indent
	n.Icon = model.Rect{}
	if n.HasContent() {
		iconW, iconH := w.e.Metrics.IconSize(w.pass.Indent)
		n.Icon = model.RectXYWH(indent+1, top, iconW, iconH)
		textIndent += iconW
	}

	var height int
	if n.IsHeader() {
		height = w.headerHeight(n.Label, textIndent)
		if w.visible(top, top+height) {
			w.paintHeader(n, textIndent, top, height, band)
		}
	} else {
		texts := w.cells(n.LineNo)
		height = w.rowHeight(texts, textIndent)
		if w.visible(top, top+height) {
			w.paintRow(n.LineNo, texts, textIndent, top, height, band)
		}
	}
	if !n.Icon.Empty() && w.visible(n.Icon.Top, n.Icon.Bottom) {
		w.p.DrawIcon(w.client(n.Icon), n.Expanded)
	}

	pos := top + height + w.pass.LineSpacing
	n.Body = pos
	if n.Expanded {
		pos = w.layoutBody(n, indent+w.pass.Indent, pos)
	}
	n.Bottom = pos
	n.Items = w.items - start
	return pos
}

func (w *walker) layoutRow(r *model.Row, indent, top int) int {
	band := w.nextBand()

	if w.valid && r.Top == top && !w.visible(r.Top, r.Bottom) {
		w.result.Culled++
		return r.Bottom + w.pass.LineSpacing
	}

	texts := w.cells(r.LineNo)
	height := w.rowHeight(texts, indent)
	r.Top = top
	r.Bottom = top + height
	if w.visible(r.Top, r.Bottom) {
		w.paintRow(r.LineNo, texts, indent, top, height, band)
	}
	return r.Bottom + w.pass.LineSpacing
}

// nextBand advances the alternating-row parity and returns whether the
// current item gets the band
func (w *walker) nextBand() bool {
	band := w.items%2 == 1
	w.items++
	return band
}

func (w *walker) visible(top, bottom int) bool {
	vp := w.pass.Viewport
	return top < vp.Bottom && bottom > vp.Top
}

func (w *walker) cells(line int) []string {
	texts := make([]string, len(w.pass.Columns))
	for i := range texts {
		texts[i] = w.pass.Cell(i, line)
	}
	return texts
}

// textWidth is the wrap width of a column's text
func (w *walker) textWidth(col, indent int) int {
	width := w.pass.Columns[col].Width - 2*w.e.Metrics.InsetX
	if col == 0 {
		width -= indent
	}
	return max(width, w.e.Metrics.MinTextWidth)
}

func (w *walker) capHeight(h int) int {
	h = max(h, w.p.LineHeight())
	if w.pass.MaxRowHeight > 0 && h > w.pass.MaxRowHeight {
		h = w.pass.MaxRowHeight
	}
	return h
}

func (w *walker) headerHeight(label string, indent int) int {
	total := w.lefts[len(w.lefts)-1]
	width := max(total-indent-2*w.e.Metrics.InsetX, w.e.Metrics.MinTextWidth)
	return w.capHeight(w.p.MeasureText(label, width) + w.e.Metrics.HeaderPadding)
}

// rowHeight is the tallest wrapped text among extending columns
func (w *walker) rowHeight(texts []string, indent int) int {
	h := 0
	for i, col := range w.pass.Columns {
		if !col.Extend {
			continue
		}
		if th := w.p.MeasureText(texts[i], w.textWidth(i, indent)) + 2*w.e.Metrics.InsetY; th > h {
			h = th
		}
	}
	return w.capHeight(h)
}

func (w *walker) paintHeader(n *model.Node, indent, top, height int, band bool) {
	w.result.Painted++
	total := w.lefts[len(w.lefts)-1]
	full := model.Rect{Left: 0, Top: top, Right: total, Bottom: top + height}
	switch {
	case w.pass.Focus != 0 && w.pass.Focus == n.ID:
		w.p.Highlight(w.client(full))
	case band && w.pass.EvenBand:
		w.p.DrawRect(w.client(full), true)
	}
	m := w.e.Metrics
	text := model.Rect{Left: indent + m.InsetX, Top: top + m.HeaderPadding/2, Right: total - m.InsetX, Bottom: top + height}
	w.p.DrawText(w.client(text), n.Label, model.AlignLeft)
}

func (w *walker) paintRow(line int, texts []string, indent, top, height int, band bool) {
	w.result.Painted++
	total := w.lefts[len(w.lefts)-1]
	full := model.Rect{Left: 0, Top: top, Right: total, Bottom: top + height}
	switch {
	case w.pass.Selected != nil && w.pass.Selected(line):
		w.p.Highlight(w.client(full))
	case band && w.pass.EvenBand:
		w.p.DrawRect(w.client(full), true)
	}

	m := w.e.Metrics
	for i, col := range w.pass.Columns {
		left := w.lefts[i] + m.InsetX
		if i == 0 {
			left += indent
		}
		r := model.Rect{Left: left, Top: top + m.InsetY, Right: w.lefts[i+1] - m.InsetX, Bottom: top + height - m.InsetY}
		if r.Right <= r.Left {
			continue
		}
		w.p.DrawText(w.client(r), texts[i], col.Align)
	}
}

// drawDividers draws a vertical line after every column
func (w *walker) drawDividers() {
	vp := w.pass.Viewport
	for _, x := range w.lefts[1:] {
		if x < vp.Left || x > vp.Right {
			continue
		}
		w.p.DrawLine(x-vp.Left, 0, x-vp.Left, vp.Height())
	}
}

// client converts content coordinates to client coordinates
func (w *walker) client(r model.Rect) model.Rect {
	return r.Offset(-w.pass.Viewport.Left, -w.pass.Viewport.Top)
}
