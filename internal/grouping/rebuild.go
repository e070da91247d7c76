package grouping

import (
	"strings"

	"github.com/lumipallolabs/groupview/internal/logging"
	"github.com/lumipallolabs/groupview/internal/model"
	"github.com/lumipallolabs/groupview/internal/source"
)

// Delimiter separates a group value from its display label
const Delimiter = "|"

// Stats summarizes one rebuild
type Stats struct {
	Rows     int // rows placed in the tree
	Filtered int // rows excluded by the filter
	Folded   int // rows merged into their group header
	Replaced int // header rows superseded by a later parent row of the same group
	Nodes    int // group nodes after pruning
}

// ParseGroupValue splits a raw group value into lookup value and label.
// Without a delimiter the label doubles as the lookup key; a leading
// delimiter gives a label with no value.
func ParseGroupValue(raw string) (value, label string) {
	idx := strings.Index(raw, Delimiter)
	switch {
	case idx < 0:
		return "", raw
	case idx == 0:
		return "", raw[len(Delimiter):]
	default:
		return raw[:idx], raw[idx+len(Delimiter):]
	}
}

// Rebuild regroups every row of src into tree. Nodes whose group key is
// still produced keep their identity, expanded state and cached geometry;
// the rest are pruned.
func Rebuild(tree *model.Tree, src source.RowSource, e *Engine) Stats {
	var stats Stats
	root := tree.Root()

	// Untouch: rows are always rebuilt, nodes survive if touched again
	tree.UntouchChildren(root)

	count := src.RowCount()
	for line := 1; line <= count; line++ {
		c := Cursor{Source: src, Line: line}
		if !e.Include(c) {
			stats.Filtered++
			continue
		}
		switch place(tree, e, c) {
		case placedRow:
			stats.Rows++
		case placedHeader:
			stats.Rows++
			stats.Folded++
		case replacedHeader:
			stats.Replaced++
		}
	}

	// Prune nodes no row reached
	tree.RemoveUntouched(root)
	if count == 0 {
		tree.ClearChildren(root)
	}

	stats.Nodes = tree.Len()
	logging.Grouping.Debug().
		Int("rows", stats.Rows).
		Int("filtered", stats.Filtered).
		Int("folded", stats.Folded).
		Int("nodes", stats.Nodes).
		Msg("rebuilt")
	return stats
}

// placement reports where place attached a row
type placement int

const (
	placedRow placement = iota
	placedHeader
	replacedHeader // folded over an earlier parent row, which leaves the tree
)

// place walks the grouping levels for one row and attaches it. A parent row
// always folds into its group header; the last one wins.
func place(tree *model.Tree, e *Engine, c Cursor) placement {
	node := tree.Root()
	for lvl := 0; lvl < e.Levels(); lvl++ {
		raw := e.GroupKey(lvl, c)
		if raw == "" {
			// Ungrouped at this level; later levels still apply
			continue
		}

		value, label := ParseGroupValue(raw)
		child := tree.FindChildByKey(node, value, label)
		if child == nil {
			child = tree.AddChild(node, value, label)
		} else {
			child.Touched = true
			child.Label = label
		}
		node = child

		if e.IsParent(lvl, c) {
			prev := node.LineNo
			node.LineNo = c.Line
			if prev != 0 {
				return replacedHeader
			}
			return placedHeader
		}
	}
	tree.AddRow(node, c.Line)
	return placedRow
}
