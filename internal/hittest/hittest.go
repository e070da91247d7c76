// Package hittest maps content coordinates to outline elements.
package hittest

import "github.com/lumipallolabs/groupview/internal/model"

// Kind is what a point resolved to
type Kind int

const (
	None Kind = iota
	Splitter
	Icon
	Node
	Row
)

// String returns a human-readable kind name
func (k Kind) String() string {
	switch k {
	case Splitter:
		return "splitter"
	case Icon:
		return "icon"
	case Node:
		return "node"
	case Row:
		return "row"
	default:
		return "none"
	}
}

// Result identifies a hit element by value. Node is an ID so a result can
// outlive a rebuild that prunes the node.
type Result struct {
	Kind   Kind
	Column int          // Splitter: index of the column left of the divider
	Node   model.NodeID // Icon, Node, Row: owning node; RootID for ungrouped rows
	LineNo int          // Row: the data line
}

// Resolve finds the element under p. widths are the column widths and
// tolerance the splitter hit distance; p is in content coordinates.
func Resolve(tree *model.Tree, widths []int, tolerance int, p model.Point) Result {
	x := 0
	for i, w := range widths {
		x += w
		if p.X >= x-tolerance && p.X <= x+tolerance {
			return Result{Kind: Splitter, Column: i}
		}
	}

	if n := tree.NodeAtPoint(p.Y); n != nil {
		if !n.Icon.Empty() && n.Icon.Contains(p) {
			return Result{Kind: Icon, Node: n.ID}
		}
		if r, ok := tree.RowAtPoint(n, p.Y); ok {
			return Result{Kind: Row, Node: n.ID, LineNo: r.LineNo}
		}
		if n.LineNo != 0 {
			return Result{Kind: Row, Node: n.ID, LineNo: n.LineNo}
		}
		return Result{Kind: Node, Node: n.ID}
	}

	if r, ok := tree.RowAtPoint(tree.Root(), p.Y); ok {
		return Result{Kind: Row, Node: model.RootID, LineNo: r.LineNo}
	}
	return Result{}
}

// Valid reports whether the element a result names still exists in tree
func Valid(tree *model.Tree, r Result) bool {
	switch r.Kind {
	case Icon, Node:
		return tree.Node(r.Node) != nil
	case Row:
		n := tree.Node(r.Node)
		return n != nil && n.HasRow(r.LineNo)
	default:
		return true
	}
}

// Cache holds the result of a pointer-down until the matching pointer-up
type Cache struct {
	held  Result
	valid bool
}

// Hold remembers r
func (c *Cache) Hold(r Result) {
	c.held = r
	c.valid = true
}

// Held returns the remembered result, if any
func (c *Cache) Held() (Result, bool) {
	return c.held, c.valid
}

// Clear forgets the remembered result
func (c *Cache) Clear() {
	c.held = Result{}
	c.valid = false
}

// Revalidate drops the remembered result if a rebuild removed its element
func (c *Cache) Revalidate(tree *model.Tree) {
	if c.valid && !Valid(tree, c.held) {
		c.Clear()
	}
}
