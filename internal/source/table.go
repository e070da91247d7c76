package source

// Table is an in-memory row source
type Table struct {
	Name     string
	columns  []string
	rows     [][]string
	current  int
	selected map[int]bool
}

// NewTable creates a table with the given column names and rows
func NewTable(columns []string, rows [][]string) *Table {
	return &Table{
		columns:  columns,
		rows:     rows,
		selected: make(map[int]bool),
	}
}

// Append adds a row and returns its line number
func (t *Table) Append(values ...string) int {
	t.rows = append(t.rows, values)
	return len(t.rows)
}

// Replace swaps the table contents, keeping the current row and selection
// where those lines still exist
func (t *Table) Replace(columns []string, rows [][]string) {
	t.columns = columns
	t.rows = rows
	if t.current > len(rows) {
		t.current = 0
	}
	for line := range t.selected {
		if line > len(rows) {
			delete(t.selected, line)
		}
	}
}

func (t *Table) RowCount() int { return len(t.rows) }

func (t *Table) CurrentRow() int { return t.current }

// SetCurrentRow moves the cursor; out-of-range lines clear it
func (t *Table) SetCurrentRow(line int) {
	if line < 0 || line > len(t.rows) {
		line = 0
	}
	t.current = line
}

// ColumnValue returns the cell text, or "" outside the table
func (t *Table) ColumnValue(line, col int) string {
	if line < 1 || line > len(t.rows) {
		return ""
	}
	row := t.rows[line-1]
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func (t *Table) IsRowSelected(line int) bool { return t.selected[line] }

func (t *Table) SelectRow(line int, selected bool) {
	if line < 1 || line > len(t.rows) {
		return
	}
	if selected {
		t.selected[line] = true
	} else {
		delete(t.selected, line)
	}
}

// ColumnNames returns the table's column names
func (t *Table) ColumnNames() []string { return t.columns }

// ColumnIndex returns the index of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SelectedCount returns the number of selected rows
func (t *Table) SelectedCount() int { return len(t.selected) }

var (
	_ RowSource = (*Table)(nil)
	_ Named     = (*Table)(nil)
)
