package model

import "sort"

// Tree owns every group node and row of an outline. Nodes are stored in an
// arena keyed by NodeID; parents hold ordered child IDs.
type Tree struct {
	nodes  map[NodeID]*Node
	nextID NodeID
}

// NewTree creates a tree holding only its root
func NewTree() *Tree {
	t := &Tree{
		nodes:  make(map[NodeID]*Node),
		nextID: RootID + 1,
	}
	t.nodes[RootID] = &Node{ID: RootID, Touched: true, Expanded: true}
	return t
}

// Root returns the root node
func (t *Tree) Root() *Node {
	return t.nodes[RootID]
}

// Node returns the node with the given ID, or nil if it was pruned
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// Len returns the number of nodes below the root
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// AddChild appends a new touched, expanded child to parent
func (t *Tree) AddChild(parent *Node, value, label string) *Node {
	n := &Node{
		ID:       t.nextID,
		Parent:   parent.ID,
		Value:    value,
		Label:    label,
		Touched:  true,
		Expanded: true,
	}
	t.nextID++
	t.nodes[n.ID] = n

	if parent.index == nil {
		parent.index = make(map[string]NodeID)
	}
	parent.index[n.Key()] = n.ID
	parent.Children = append(parent.Children, n.ID)
	return n
}

// AddRow appends a row entry to n
func (t *Tree) AddRow(n *Node, lineNo int) {
	n.Rows = append(n.Rows, Row{LineNo: lineNo})
}

// FindChildByKey looks up a direct child by value, or by label when value
// is empty
func (t *Tree) FindChildByKey(parent *Node, value, label string) *Node {
	if parent.index == nil {
		return nil
	}
	id, ok := parent.index[nodeKey(value, label)]
	if !ok {
		return nil
	}
	return t.nodes[id]
}

// Children returns the child nodes of n in stored order
func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, id := range n.Children {
		if c := t.nodes[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// UntouchChildren clears the touched mark, folded line and rows of every
// node below n, and discards n's own rows
func (t *Tree) UntouchChildren(n *Node) {
	n.Rows = n.Rows[:0]
	for _, id := range n.Children {
		c := t.nodes[id]
		c.Touched = false
		c.LineNo = 0
		t.UntouchChildren(c)
	}
}

// RemoveUntouched deletes every untouched subtree below n
func (t *Tree) RemoveUntouched(n *Node) {
	kept := n.Children[:0]
	for _, id := range n.Children {
		c := t.nodes[id]
		if !c.Touched {
			delete(n.index, c.Key())
			t.deleteSubtree(c)
			continue
		}
		kept = append(kept, id)
		t.RemoveUntouched(c)
	}
	n.Children = kept
}

// ClearChildren deletes every node and row below n
func (t *Tree) ClearChildren(n *Node) {
	for _, id := range n.Children {
		t.deleteSubtree(t.nodes[id])
	}
	n.Children = nil
	n.Rows = nil
	n.index = nil
}

func (t *Tree) deleteSubtree(n *Node) {
	for _, id := range n.Children {
		t.deleteSubtree(t.nodes[id])
	}
	delete(t.nodes, n.ID)
}

// Walk visits nodes below n in display order. fn returning false skips the
// node's children.
func (t *Tree) Walk(n *Node, fn func(n *Node, depth int) bool) {
	t.walk(n, 0, fn)
}

func (t *Tree) walk(n *Node, depth int, fn func(*Node, int) bool) {
	for _, id := range n.Children {
		c := t.nodes[id]
		if fn(c, depth) {
			t.walk(c, depth+1, fn)
		}
	}
}

// FindTopForRow returns the cached top of the row or folded header showing
// lineNo. A row inside a collapsed node reports the top of the outermost
// collapsed ancestor. Rows absent from the tree return NotFound.
func (t *Tree) FindTopForRow(lineNo int) int {
	if lineNo <= 0 {
		return NotFound
	}
	top, _ := t.findTop(t.Root(), lineNo, NotFound)
	return top
}

func (t *Tree) findTop(n *Node, lineNo, collapsedTop int) (int, bool) {
	if n.ID != RootID && n.LineNo == lineNo {
		if collapsedTop != NotFound {
			return collapsedTop, true
		}
		return n.Top, true
	}
	if n.ID != RootID && !n.Expanded && collapsedTop == NotFound {
		collapsedTop = n.Top
	}
	for _, id := range n.Children {
		if top, ok := t.findTop(t.nodes[id], lineNo, collapsedTop); ok {
			return top, true
		}
	}
	for _, r := range n.Rows {
		if r.LineNo == lineNo {
			if collapsedTop != NotFound {
				return collapsedTop, true
			}
			return r.Top, true
		}
	}
	return NotFound, false
}

// OwnerOfRow returns the node owning lineNo, or nil. The root owns rows that
// were not grouped.
func (t *Tree) OwnerOfRow(lineNo int) *Node {
	if lineNo <= 0 {
		return nil
	}
	if t.Root().HasRow(lineNo) {
		return t.Root()
	}
	var owner *Node
	t.Walk(t.Root(), func(n *Node, _ int) bool {
		if owner != nil {
			return false
		}
		if n.HasRow(lineNo) {
			owner = n
			return false
		}
		return true
	})
	return owner
}

// NodeAtPoint returns the deepest laid-out node whose band contains y
func (t *Tree) NodeAtPoint(y int) *Node {
	return t.nodeAt(t.Root(), y)
}

func (t *Tree) nodeAt(n *Node, y int) *Node {
	for _, id := range n.Children {
		c := t.nodes[id]
		if y < c.Top {
			break
		}
		if y >= c.Bottom {
			continue
		}
		if c.Expanded && y >= c.Body {
			if deeper := t.nodeAt(c, y); deeper != nil {
				return deeper
			}
		}
		return c
	}
	return nil
}

// RowAtPoint returns the row of n whose band contains y
func (t *Tree) RowAtPoint(n *Node, y int) (Row, bool) {
	if n.ID != RootID && !n.Expanded {
		return Row{}, false
	}
	for _, r := range n.Rows {
		if y >= r.Top && y < r.Bottom {
			return r, true
		}
	}
	return Row{}, false
}

// SortChildren stably reorders the children of n
func (t *Tree) SortChildren(n *Node, less func(a, b *Node) bool) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return less(t.nodes[n.Children[i]], t.nodes[n.Children[j]])
	})
}

// BySortOrder orders nodes by their numeric sort key
func BySortOrder(a, b *Node) bool {
	return a.SortOrder < b.SortOrder
}
