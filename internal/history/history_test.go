package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, m.Load())

	_, ok := m.Last()
	assert.False(t, ok)
	assert.Empty(t, m.Recent())
}

func TestRememberMovesToFront(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "history.json"))

	a := Entry{Kind: KindJSON, Path: "a.json"}
	b := Entry{Kind: KindDir, Path: "/tmp"}
	m.Remember(a)
	m.Remember(b)
	m.Remember(Entry{Kind: KindJSON, Path: "a.json", Config: "a.yaml"})

	recent := m.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "a.yaml", recent[0].Config)
	assert.Equal(t, b, recent[1])

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, "a.json", last.Path)
	require.NoError(t, m.Close())
}

func TestRememberBoundsList(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "history.json"))
	for i := 0; i < maxRecent+5; i++ {
		m.Remember(Entry{Kind: KindSQLite, Path: "db", Query: string(rune('a' + i))})
	}
	assert.Len(t, m.Recent(), maxRecent)
	require.NoError(t, m.Close())
}

func TestCloseWritesPendingSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	m := NewManager(path)
	m.Remember(Entry{Kind: KindSQLite, Path: "data.db", Query: "select 1"})
	require.NoError(t, m.Close())

	_, err := os.Stat(path)
	require.NoError(t, err)

	reloaded := NewManager(path)
	require.NoError(t, reloaded.Load())
	last, ok := reloaded.Last()
	require.True(t, ok)
	assert.Equal(t, Entry{Kind: KindSQLite, Path: "data.db", Query: "select 1"}, last)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	assert.Error(t, NewManager(path).Load())
}
