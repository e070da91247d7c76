package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lumipallolabs/groupview/internal/layout"
	"github.com/lumipallolabs/groupview/internal/model"
)

// ink is the foreground role of a cell
type ink uint8

const (
	inkText ink = iota
	inkIcon
	inkDivider
)

// fill is the background role of a cell
type fill uint8

const (
	fillNone fill = iota
	fillBand
	fillHighlight
)

type cell struct {
	r    rune // 0 marks the trailing half of a wide rune
	ink  ink
	fill fill
}

// Canvas is a character-cell Painter. The layout engine draws into a grid
// of runes with a role per cell; Render turns the grid into styled lines.
type Canvas struct {
	width, height int
	cells         []cell
	styles        CanvasStyles
}

// CanvasStyles maps cell roles to terminal styles
type CanvasStyles struct {
	Text      lipgloss.Style
	Icon      lipgloss.Style
	Divider   lipgloss.Style
	Band      lipgloss.Style
	Highlight lipgloss.Style
}

// NewCanvas creates an empty canvas
func NewCanvas(styles CanvasStyles) *Canvas {
	return &Canvas{styles: styles}
}

// Resize changes the grid size and clears it
func (c *Canvas) Resize(w, h int) {
	c.width, c.height = max(w, 0), max(h, 0)
	c.cells = make([]cell, c.width*c.height)
	c.Clear()
}

// Size returns the grid size
func (c *Canvas) Size() (w, h int) {
	return c.width, c.height
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

func (c *Canvas) LineHeight() int { return 1 }

// MeasureText returns the number of lines text wraps to at maxWidth
func (c *Canvas) MeasureText(text string, maxWidth int) int {
	return len(wrap(text, maxWidth, model.AlignLeft))
}

// wrap word-wraps text to width and pads every line to exactly width
// columns with the given alignment
func wrap(text string, width int, align model.Align) []string {
	width = max(width, 1)
	style := lipgloss.NewStyle().Width(width).Align(position(align))
	return strings.Split(style.Render(text), "\n")
}

func position(a model.Align) lipgloss.Position {
	switch a {
	case model.AlignRight:
		return lipgloss.Right
	case model.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

// DrawText writes wrapped text into r, clipped to r and the grid
func (c *Canvas) DrawText(r model.Rect, text string, align model.Align) {
	if r.Empty() {
		return
	}
	for i, line := range wrap(text, r.Width(), align) {
		y := r.Top + i
		if y >= r.Bottom {
			break
		}
		c.writeLine(r.Left, y, r.Right, line, inkText)
	}
}

func (c *Canvas) writeLine(x, y, right int, line string, k ink) {
	for _, ch := range line {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > right {
			return
		}
		if cl := c.at(x, y); cl != nil {
			cl.r, cl.ink = ch, k
		}
		if w == 2 {
			if cl := c.at(x+1, y); cl != nil {
				cl.r, cl.ink = 0, k
			}
		}
		x += w
	}
}

// DrawLine draws a vertical or horizontal rule
func (c *Canvas) DrawLine(x1, y1, x2, y2 int) {
	if x1 == x2 {
		for y := min(y1, y2); y < max(y1, y2); y++ {
			if cl := c.at(x1, y); cl != nil {
				cl.r, cl.ink = '│', inkDivider
			}
		}
		return
	}
	for x := min(x1, x2); x < max(x1, x2); x++ {
		if cl := c.at(x, y1); cl != nil {
			cl.r, cl.ink = '─', inkDivider
		}
	}
}

func (c *Canvas) paint(r model.Rect, f fill) {
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			if cl := c.at(x, y); cl != nil {
				cl.fill = f
			}
		}
	}
}

// DrawRect shades an even-row band
func (c *Canvas) DrawRect(r model.Rect, band bool) {
	if band {
		c.paint(r, fillBand)
	}
}

// Highlight marks a selected or focused row
func (c *Canvas) Highlight(r model.Rect) {
	c.paint(r, fillHighlight)
}

// DrawIcon draws the expand/collapse marker
func (c *Canvas) DrawIcon(r model.Rect, expanded bool) {
	icon := "▸"
	if expanded {
		icon = "▾"
	}
	c.writeLine(r.Left, r.Top, r.Right, icon, inkIcon)
}

func (c *Canvas) style(k ink, f fill) lipgloss.Style {
	var s lipgloss.Style
	switch k {
	case inkIcon:
		s = c.styles.Icon
	case inkDivider:
		s = c.styles.Divider
	default:
		s = c.styles.Text
	}
	switch f {
	case fillBand:
		s = s.Background(c.styles.Band.GetBackground())
	case fillHighlight:
		hl := c.styles.Highlight
		s = s.Foreground(hl.GetForeground()).Background(hl.GetBackground()).Bold(hl.GetBold())
	}
	return s
}

// Render returns the grid as styled text, one line per row
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b, run strings.Builder
		row := c.cells[y*c.width : (y+1)*c.width]
		flush := func(k ink, f fill) {
			if run.Len() > 0 {
				b.WriteString(c.style(k, f).Render(run.String()))
				run.Reset()
			}
		}
		for x, cl := range row {
			if x > 0 && (cl.ink != row[x-1].ink || cl.fill != row[x-1].fill) {
				flush(row[x-1].ink, row[x-1].fill)
			}
			if cl.r != 0 {
				run.WriteRune(cl.r)
			}
		}
		if len(row) > 0 {
			flush(row[len(row)-1].ink, row[len(row)-1].fill)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Plain returns the grid text without styling
func (c *Canvas) Plain() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b strings.Builder
		for _, cl := range c.cells[y*c.width : (y+1)*c.width] {
			if cl.r != 0 {
				b.WriteRune(cl.r)
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

var (
	_ layout.Painter = (*Canvas)(nil)
	_ layout.Clearer = (*Canvas)(nil)
)
