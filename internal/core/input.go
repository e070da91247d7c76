package core

import (
	"github.com/lumipallolabs/groupview/internal/hittest"
	"github.com/lumipallolabs/groupview/internal/model"
)

// content converts a client point to content coordinates
func (c *Controller) content(p model.Point) model.Point {
	x, y := c.view.Offset()
	return model.Point{X: p.X + x, Y: p.Y + y}
}

// HitTest resolves the element under a client point
func (c *Controller) HitTest(p model.Point) hittest.Result {
	return hittest.Resolve(c.tree, c.cfg.Widths(), c.opts.Metrics.SplitterTolerance, c.content(p))
}

// MouseDown records the element under p. Pressing a column divider starts a
// resize drag.
func (c *Controller) MouseDown(p model.Point) {
	hit := c.HitTest(p)
	c.hits.Hold(hit)
	c.drag = nil
	if hit.Kind == hittest.Splitter {
		c.drag = &drag{
			column: hit.Column,
			startX: p.X,
			width:  c.cfg.Columns[hit.Column].Width,
		}
	}
}

// MouseMove resizes the dragged column. It returns true while a drag is
// active.
func (c *Controller) MouseMove(p model.Point) bool {
	if c.drag == nil {
		return false
	}
	c.SetColumnWidth(c.drag.column, c.drag.width+p.X-c.drag.startX)
	return true
}

// MouseUp ends a press. Releasing over the element that was pressed counts
// as a click on it.
func (c *Controller) MouseUp(p model.Point, mods Modifiers) {
	dragging := c.drag != nil
	c.drag = nil
	held, ok := c.hits.Held()
	c.hits.Clear()
	if !ok || dragging {
		return
	}
	if hit := c.HitTest(p); hit == held {
		c.click(hit, mods)
	}
}

// Dragging reports whether a column resize is in progress
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// Click handles a click at a client point
func (c *Controller) Click(p model.Point, mods Modifiers) {
	c.click(c.HitTest(p), mods)
}

func (c *Controller) click(hit hittest.Result, mods Modifiers) {
	switch hit.Kind {
	case hittest.Icon:
		c.Toggle(hit.Node)
	case hittest.Node:
		c.clickNode(hit.Node)
	case hittest.Row:
		c.clickRow(hit.LineNo, mods)
	}
}

func (c *Controller) clickNode(id model.NodeID) {
	if c.cfg.DeselectOnNodeClick {
		if c.cfg.ShowSelected {
			c.selectAll(false)
		} else if cur := c.src.CurrentRow(); cur != 0 {
			c.src.SelectRow(cur, false)
		}
		c.src.SetCurrentRow(0)
	}
	c.focus = id
	c.emit(ClickEvent{Line: 0})
}

func (c *Controller) clickRow(line int, mods Modifiers) {
	cur := c.src.CurrentRow()
	switch {
	case mods.Shift && cur != 0 && c.cfg.ShowSelected:
		// extend from the current row, copying its selection state
		selected := c.src.IsRowSelected(cur)
		for cur != line {
			if cur > line {
				cur--
			} else {
				cur++
			}
			c.src.SelectRow(cur, selected)
		}
	case mods.Ctrl && c.cfg.ShowSelected:
		c.src.SelectRow(line, !c.src.IsRowSelected(line))
	default:
		c.selectAll(false)
		c.src.SelectRow(line, true)
	}
	c.src.SetCurrentRow(line)
	c.focus = 0
	c.emit(ClickEvent{Line: line})
}

// DoubleClick toggles a header or reports a row double click
func (c *Controller) DoubleClick(p model.Point) {
	hit := c.HitTest(p)
	switch hit.Kind {
	case hittest.Node:
		c.Toggle(hit.Node)
	case hittest.Row:
		c.emit(DoubleClickEvent{Line: hit.LineNo})
	}
}

// RightDown makes the row under p current and selected before a context
// menu opens. A row that is already selected keeps the whole selection.
func (c *Controller) RightDown(p model.Point) {
	line := 0
	if hit := c.HitTest(p); hit.Kind == hittest.Row {
		line = hit.LineNo
	}

	changed := false
	if line == 0 || !c.src.IsRowSelected(line) {
		for row := 1; row <= c.src.RowCount(); row++ {
			want := row == line
			if c.src.IsRowSelected(row) != want {
				c.src.SelectRow(row, want)
				changed = true
			}
		}
	}
	if line != c.src.CurrentRow() {
		c.src.SetCurrentRow(line)
		changed = true
	}
	if changed {
		c.focus = 0
		c.emit(ClickEvent{Line: line})
	}
}

// SelectAll selects every row. It does nothing unless multi-selection is
// enabled.
func (c *Controller) SelectAll() bool {
	if !c.cfg.ShowSelected {
		return false
	}
	c.selectAll(true)
	return true
}

func (c *Controller) selectAll(selected bool) {
	for row := 1; row <= c.src.RowCount(); row++ {
		c.src.SelectRow(row, selected)
	}
}

// CanDrag reports whether the pressed element can start a drag and drop
func (c *Controller) CanDrag() bool {
	held, ok := c.hits.Held()
	return ok && held.Kind == hittest.Row
}

// DragLines returns the lines a drag carries: the selection, or the pressed
// row when nothing is selected
func (c *Controller) DragLines() []int {
	held, ok := c.hits.Held()
	if !ok || held.Kind != hittest.Row {
		return nil
	}
	var lines []int
	for row := 1; row <= c.src.RowCount(); row++ {
		if c.src.IsRowSelected(row) {
			lines = append(lines, row)
		}
	}
	if len(lines) == 0 {
		lines = []int{held.LineNo}
	}
	return lines
}
