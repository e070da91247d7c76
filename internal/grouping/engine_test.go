package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/groupview/internal/source"
)

func table(rows ...[]string) *source.Table {
	return source.NewTable([]string{"name", "kind", "size"}, rows)
}

func TestParseGroupValue(t *testing.T) {
	tests := []struct {
		raw, value, label string
	}{
		{"k1|Label1", "k1", "Label1"},
		{"Label", "", "Label"},
		{"|Label", "", "Label"},
		{"a|b|c", "a", "b|c"},
		{"k|", "k", ""},
	}
	for _, tt := range tests {
		value, label := ParseGroupValue(tt.raw)
		assert.Equal(t, tt.value, value, tt.raw)
		assert.Equal(t, tt.label, label, tt.raw)
	}
}

func TestFilter(t *testing.T) {
	src := table([]string{"a", "x", "1"}, []string{"b", "", "2"})

	e := New(Rules{Filter: `kind != ""`}, src.ColumnNames())
	assert.True(t, e.Include(Cursor{src, 1}))
	assert.False(t, e.Include(Cursor{src, 2}))

	e = New(Rules{Filter: `col(1)`}, nil)
	assert.True(t, e.Include(Cursor{src, 1}), "non-empty strings are true")
	assert.False(t, e.Include(Cursor{src, 2}))

	e = New(Rules{}, nil)
	assert.True(t, e.Include(Cursor{src, 2}))
}

func TestFilterFailuresInclude(t *testing.T) {
	src := table([]string{"abc", "", ""})

	e := New(Rules{Filter: `col(`}, nil)
	require.Len(t, e.Errors(), 1)
	assert.True(t, e.Include(Cursor{src, 1}))

	e = New(Rules{Filter: `int(col(0)) > 1`}, nil)
	assert.Empty(t, e.Errors())
	assert.True(t, e.Include(Cursor{src, 1}), "runtime failure includes the row")
}

func TestGroupKeyAndParent(t *testing.T) {
	src := table([]string{"a", "dir", "1"}, []string{"b", "file", "2"})
	e := New(Rules{Levels: []Level{
		{Group: `kind + "|" + upper(kind)`, Parent: `kind == "dir"`},
		{Group: `row % 2`},
		{Group: `missing(`},
	}}, src.ColumnNames())

	assert.Equal(t, 3, e.Levels())
	assert.Equal(t, "dir|DIR", e.GroupKey(0, Cursor{src, 1}))
	assert.True(t, e.IsParent(0, Cursor{src, 1}))
	assert.False(t, e.IsParent(0, Cursor{src, 2}))
	assert.Equal(t, "1", e.GroupKey(1, Cursor{src, 1}))
	assert.Equal(t, "", e.GroupKey(2, Cursor{src, 1}), "failed level groups nothing")
	assert.False(t, e.IsParent(1, Cursor{src, 1}))
	assert.Equal(t, "", e.GroupKey(7, Cursor{src, 1}))
}

func TestColumn(t *testing.T) {
	src := table([]string{"a", "x", "4"}, []string{"b", "y", "abc"})

	e := New(Rules{Columns: []string{"", `int(size) + 1`, `name +`}}, src.ColumnNames())
	assert.Equal(t, "a", e.Column(0, Cursor{src, 1}))
	assert.Equal(t, "5", e.Column(1, Cursor{src, 1}))
	assert.Equal(t, Placeholder, e.Column(1, Cursor{src, 2}))
	assert.Equal(t, Placeholder, e.Column(2, Cursor{src, 1}))
	assert.Equal(t, "", e.Column(5, Cursor{src, 1}))
}

func TestColumnPrefix(t *testing.T) {
	src := table([]string{"a", "x", "1.5"})

	e := New(Rules{Columns: []string{"", `float(size) * 2`}, Prefix: `"#"`}, src.ColumnNames())
	assert.Equal(t, "#a", e.Column(0, Cursor{src, 1}))
	assert.Equal(t, "#3", e.Column(1, Cursor{src, 1}))
}

func TestEnvironment(t *testing.T) {
	src := table([]string{"a", "x", "1"}, []string{"b", "y", "2"})
	src.SelectRow(2, true)
	src.SetCurrentRow(1)

	e := New(Rules{Columns: []string{
		`string(row) + "/" + string(cols)`,
		`selected ? "sel" : "-"`,
		`current == row`,
	}}, src.ColumnNames())

	assert.Equal(t, "2/3", e.Column(0, Cursor{src, 2}))
	assert.Equal(t, "sel", e.Column(1, Cursor{src, 2}))
	assert.Equal(t, "-", e.Column(1, Cursor{src, 1}))
	assert.Equal(t, "true", e.Column(2, Cursor{src, 1}))
}

func TestUnusableColumnNames(t *testing.T) {
	names := usableNames([]string{"ok", "two words", "row", "", "x1", "1x"})
	assert.Equal(t, []string{"ok", "", "", "", "x1", ""}, names)

	src := source.NewTable([]string{"ok", "two words"}, [][]string{{"v", "w"}})
	e := New(Rules{Columns: []string{`ok + col(1)`}}, src.ColumnNames())
	assert.Equal(t, "vw", e.Column(0, Cursor{src, 1}))
}
