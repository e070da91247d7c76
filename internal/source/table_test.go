package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableBasics(t *testing.T) {
	tbl := NewTable([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})

	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "2", tbl.ColumnValue(1, 1))
	assert.Equal(t, "", tbl.ColumnValue(2, 1), "short rows read as empty")
	assert.Equal(t, "", tbl.ColumnValue(0, 0))
	assert.Equal(t, "", tbl.ColumnValue(3, 0))
	assert.Equal(t, 1, tbl.ColumnIndex("b"))
	assert.Equal(t, -1, tbl.ColumnIndex("z"))

	line := tbl.Append("5", "6")
	assert.Equal(t, 3, line)
}

func TestTableSelection(t *testing.T) {
	tbl := NewTable(nil, [][]string{{"x"}, {"y"}, {"z"}})

	tbl.SelectRow(2, true)
	tbl.SelectRow(9, true)
	assert.True(t, tbl.IsRowSelected(2))
	assert.False(t, tbl.IsRowSelected(9))
	assert.Equal(t, 1, tbl.SelectedCount())

	tbl.SetCurrentRow(3)
	assert.Equal(t, 3, tbl.CurrentRow())
	tbl.SetCurrentRow(4)
	assert.Equal(t, 0, tbl.CurrentRow())

	tbl.SetCurrentRow(3)
	tbl.SelectRow(3, true)
	tbl.Replace(nil, [][]string{{"x"}, {"y"}})
	assert.Equal(t, 0, tbl.CurrentRow())
	assert.True(t, tbl.IsRowSelected(2))
	assert.False(t, tbl.IsRowSelected(3))
}
