package core

import "github.com/lumipallolabs/groupview/internal/model"

// item is one visible header or row in display order
type item struct {
	node model.NodeID // owning node; RootID for ungrouped rows
	line int          // 0 for a pure header
	row  bool         // a row entry rather than a header
	top  int
}

// items lists the visible headers and rows in display order
func (c *Controller) items() []item {
	var out []item
	var visit func(n *model.Node)
	visit = func(n *model.Node) {
		for _, ch := range c.tree.Children(n) {
			out = append(out, item{node: ch.ID, line: ch.LineNo, top: ch.Top})
			if ch.Expanded {
				visit(ch)
			}
		}
		for _, r := range n.Rows {
			out = append(out, item{node: n.ID, line: r.LineNo, row: true, top: r.Top})
		}
	}
	visit(c.tree.Root())
	return out
}

// position returns the index of the focused item. A current row hidden in a
// collapsed node resolves to that node's header.
func (c *Controller) position(items []item) int {
	if c.focus != 0 {
		for i, it := range items {
			if it.node == c.focus && !it.row {
				return i
			}
		}
	}
	line := c.src.CurrentRow()
	if line == 0 {
		return -1
	}
	for i, it := range items {
		if it.line == line {
			return i
		}
	}
	owner := c.tree.OwnerOfRow(line)
	if owner == nil {
		return -1
	}
	hidden := model.NodeID(0)
	for n := owner; n != nil && n.ID != model.RootID; n = c.tree.Node(n.Parent) {
		if !n.Expanded || (n.ID == owner.ID && owner.LineNo == line) {
			hidden = n.ID
		}
	}
	for i, it := range items {
		if it.node == hidden && !it.row {
			return i
		}
	}
	return -1
}

// currentTop returns the top of the focused header or the current row
func (c *Controller) currentTop() int {
	if c.focus != 0 {
		if n := c.tree.Node(c.focus); n != nil {
			return n.Top
		}
	}
	return c.tree.FindTopForRow(c.src.CurrentRow())
}

// focusItem makes it the cursor: rows and folded headers become the current
// row, pure headers take the header focus
func (c *Controller) focusItem(it item) {
	if it.line != 0 {
		c.focus = 0
		c.src.SetCurrentRow(it.line)
		return
	}
	c.focus = it.node
	c.src.SetCurrentRow(0)
}

// Focus returns the focused pure header, or 0
func (c *Controller) Focus() model.NodeID {
	return c.focus
}

// MoveCurrent moves the cursor delta visible items, clamped to the ends
func (c *Controller) MoveCurrent(delta int) {
	items := c.items()
	if len(items) == 0 {
		return
	}
	i := c.position(items)
	switch {
	case i < 0 && delta < 0:
		i = len(items) - 1
	case i < 0:
		i = 0
	default:
		i = min(max(i+delta, 0), len(items)-1)
	}
	c.focusItem(items[i])
}

// Home moves the cursor to the first visible item
func (c *Controller) Home() {
	if items := c.items(); len(items) > 0 {
		c.focusItem(items[0])
	}
}

// End moves the cursor to the last visible item
func (c *Controller) End() {
	if items := c.items(); len(items) > 0 {
		c.focusItem(items[len(items)-1])
	}
}

// PageMove moves the cursor by about one client height
func (c *Controller) PageMove(pages int) {
	items := c.items()
	i := c.position(items)
	if i < 0 {
		c.MoveCurrent(pages)
		return
	}
	_, h := c.view.Client()
	target := items[i].top + pages*max(h, 1)
	j := i
	if pages > 0 {
		for j < len(items)-1 && items[j+1].top <= target {
			j++
		}
	} else {
		for j > 0 && items[j-1].top >= target {
			j--
		}
	}
	if j == i {
		j = min(max(i+pages, 0), len(items)-1)
	}
	c.focusItem(items[j])
}

// cursorNode returns the header under the cursor, or the node owning the
// current row
func (c *Controller) cursorNode() *model.Node {
	items := c.items()
	i := c.position(items)
	if i < 0 {
		return nil
	}
	n := c.tree.Node(items[i].node)
	if n == nil || n.ID == model.RootID {
		return nil
	}
	return n
}

// Expand opens the node under the cursor
func (c *Controller) Expand() {
	items := c.items()
	if i := c.position(items); i >= 0 && !items[i].row {
		c.SetExpanded(items[i].node, true)
	}
}

// Collapse closes the header under the cursor. On a row or a closed header
// the cursor moves to the parent header instead.
func (c *Controller) Collapse() {
	items := c.items()
	i := c.position(items)
	if i < 0 {
		return
	}
	it := items[i]
	if !it.row {
		if n := c.tree.Node(it.node); n != nil && n.Expanded && n.HasContent() {
			c.SetExpanded(n.ID, false)
			return
		}
		if n := c.tree.Node(it.node); n != nil {
			it.node = n.Parent
		}
	}
	if it.node == model.RootID {
		return
	}
	for _, up := range items {
		if up.node == it.node && !up.row {
			c.focusItem(up)
			return
		}
	}
}

// ToggleCurrent toggles the header under the cursor, or the node owning the
// current row
func (c *Controller) ToggleCurrent() {
	if n := c.cursorNode(); n != nil {
		c.Toggle(n.ID)
	}
}

// ToggleSelectCurrent flips the selection of the current row when
// multi-selection is enabled
func (c *Controller) ToggleSelectCurrent() {
	line := c.src.CurrentRow()
	if line == 0 || !c.cfg.ShowSelected {
		return
	}
	c.src.SelectRow(line, !c.src.IsRowSelected(line))
	c.emit(ClickEvent{Line: line})
}
