package source

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONObjects(t *testing.T) {
	tbl, err := ParseJSON([]byte(`[
		{"name": "alpha", "size": 10},
		{"name": "beta", "kind": "dir", "size": null},
		{"size": 2.5, "nested": {"a": 1}}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "size", "kind", "nested"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, "alpha", tbl.ColumnValue(1, 0))
	assert.Equal(t, "10", tbl.ColumnValue(1, 1))
	assert.Equal(t, "", tbl.ColumnValue(2, 1))
	assert.Equal(t, "dir", tbl.ColumnValue(2, 2))
	assert.Equal(t, "2.5", tbl.ColumnValue(3, 1))
	assert.JSONEq(t, `{"a": 1}`, tbl.ColumnValue(3, 3))
}

func TestParseJSONArraysAndScalars(t *testing.T) {
	tbl, err := ParseJSON([]byte(`[["a", 1], ["b", 2, true]]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1", "c2"}, tbl.ColumnNames())
	assert.Equal(t, "true", tbl.ColumnValue(2, 2))

	tbl, err = ParseJSON([]byte(`["x", "y"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"value"}, tbl.ColumnNames())
	assert.Equal(t, "y", tbl.ColumnValue(2, 0))

	tbl, err = ParseJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.Zero(t, tbl.RowCount())

	_, err = ParseJSON([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"a":"1"}]`), 0644))

	tbl, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Name)
	assert.Equal(t, "1", tbl.ColumnValue(1, 0))

	_, err = LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "rows.db")
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE items (category TEXT, name TEXT, qty INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items VALUES ('fruit', 'apple', 3), ('veg', 'leek', NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tbl, err := LoadSQLite(context.Background(), dsn, `SELECT category, name, qty FROM items ORDER BY name`)
	require.NoError(t, err)

	assert.Equal(t, []string{"category", "name", "qty"}, tbl.ColumnNames())
	require.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "apple", tbl.ColumnValue(1, 1))
	assert.Equal(t, "3", tbl.ColumnValue(1, 2))
	assert.Equal(t, "", tbl.ColumnValue(2, 2))

	_, err = LoadSQLite(context.Background(), dsn, `SELECT * FROM missing`)
	assert.Error(t, err)
}

func TestLoadFiles(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "b.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sub", "a.json"), []byte(`{"x":1}`), 0644))

	files, err := LoadFiles(context.Background(), tmp)
	require.NoError(t, err)
	require.Equal(t, 2, files.RowCount())

	assert.Equal(t, "b.txt", files.ColumnValue(1, 0))
	assert.Equal(t, ".", files.ColumnValue(1, 1))
	assert.Equal(t, "txt", files.ColumnValue(1, 3))
	assert.Equal(t, "5", files.ColumnValue(1, 4))
	assert.Contains(t, files.ColumnValue(1, 5), "text/plain")

	assert.Equal(t, "sub/a.json", files.ColumnValue(2, 0))
	assert.Equal(t, "sub", files.ColumnValue(2, 1))
	assert.Equal(t, "a.json", files.ColumnValue(2, 2))
	assert.Equal(t, filepath.Join(files.Root, "sub", "a.json"), files.PathOf(2))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "c.txt"), []byte("x"), 0644))
	require.NoError(t, files.Reload(context.Background()))
	assert.Equal(t, 3, files.RowCount())
}

func TestLoadFilesCancelled(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a"), []byte("a"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadFiles(ctx, tmp)
	assert.Error(t, err)
}
