//go:build !darwin

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, w *Watcher, match func(Event) bool) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-w.Events():
			require.True(t, ok, "event channel closed")
			if match(e) {
				return e
			}
		case <-timeout:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.AddRecursive(root))
	w.Start()

	path := filepath.Join(root, "sub", "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	e := waitFor(t, w, func(e Event) bool { return e.Path == path && e.Type == EventCreated })
	assert.Equal(t, "created", e.Type.String())

	require.NoError(t, os.Remove(path))
	waitFor(t, w, func(e Event) bool { return e.Path == path && e.Type == EventDeleted })
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.AddRecursive(root))
	w.Start()

	dir := filepath.Join(root, "new")
	require.NoError(t, os.Mkdir(dir, 0755))
	waitFor(t, w, func(e Event) bool { return e.Path == dir })

	path := filepath.Join(dir, "b.txt")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("y"), 0644)
		select {
		case e := <-w.Events():
			return e.Path == path
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "deleted", EventDeleted.String())
	assert.Equal(t, "modified", EventModified.String())
	assert.Equal(t, "unknown", EventType(42).String())
}
