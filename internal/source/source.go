// Package source provides the flat row sources an outline groups.
package source

import "errors"

// ErrNoRows is returned by loaders that produced no usable row structure
var ErrNoRows = errors.New("source has no rows")

// RowSource is the flat list an outline is built from. Lines are 1-based;
// columns are 0-based.
type RowSource interface {
	RowCount() int
	CurrentRow() int
	SetCurrentRow(line int)
	ColumnValue(line, col int) string
	IsRowSelected(line int) bool
	SelectRow(line int, selected bool)
}

// Named is implemented by sources that know their column names
type Named interface {
	ColumnNames() []string
}

// Pathed is implemented by sources whose rows map to files on disk
type Pathed interface {
	PathOf(line int) string
}
