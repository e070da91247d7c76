package model

// NodeID identifies a node within one Tree. IDs are never reused.
type NodeID uint64

// RootID is the identifier of every tree's root node
const RootID NodeID = 1

// NotFound is returned by lookups that report a position
const NotFound = -1

// Row is a data row attached to a group node
type Row struct {
	LineNo int // 1-based index into the row source
	Top    int
	Bottom int // excludes line spacing
}

// Node is a group header in the outline
type Node struct {
	ID     NodeID
	Parent NodeID

	// Group key. Value is optional; without it the node is keyed by Label.
	Value string
	Label string

	// LineNo is nonzero when the header itself is a data row
	LineNo    int
	Touched   bool
	Expanded  bool
	SortOrder int

	Children []NodeID
	Rows     []Row

	// Cached geometry, valid while the tree's geometry is clean.
	// [Top, Body) is the header band, [Top, Bottom) the whole subtree,
	// both including trailing line spacing.
	Top    int
	Body   int
	Bottom int
	Icon   Rect
	Items  int // headers and rows laid out in the subtree, for band parity

	index map[string]NodeID
}

// IsHeader returns true if the node is a pure grouping header
func (n *Node) IsHeader() bool {
	return n.LineNo == 0
}

// HasContent returns true if the node owns children or rows
func (n *Node) HasContent() bool {
	return len(n.Children) > 0 || len(n.Rows) > 0
}

// Key returns the lookup key the node is indexed by in its parent
func (n *Node) Key() string {
	return nodeKey(n.Value, n.Label)
}

// HasRow returns true if the node owns lineNo, either as a row or as itself
func (n *Node) HasRow(lineNo int) bool {
	if n.LineNo == lineNo {
		return true
	}
	for _, r := range n.Rows {
		if r.LineNo == lineNo {
			return true
		}
	}
	return false
}

func nodeKey(value, label string) string {
	if value != "" {
		return "v\x00" + value
	}
	return "d\x00" + label
}
