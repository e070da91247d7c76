// Package history remembers recently opened row sources.
package history

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// maxRecent bounds the recent source list
const maxRecent = 10

// Kind names a row source loader
type Kind string

const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
	KindDir    Kind = "dir"
)

// Entry describes how to reopen one source
type Entry struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path"`
	Query  string `json:"query,omitempty"`
	Config string `json:"config,omitempty"`
}

// History is the persisted file content
type History struct {
	Recent []Entry `json:"recent"`
}

// Manager handles loading and saving history
type Manager struct {
	path         string
	history      History
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a manager persisting to path, or to DefaultPath when
// path is empty
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath()
	}
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second,
	}
}

// DefaultPath returns the default history file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".groupview-history.json"
	}
	return filepath.Join(home, ".groupview", "history.json")
}

// Load loads history from disk. A missing file starts empty.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.history = History{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.history)
}

// saveLocked saves history without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.history, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// Last returns the most recently opened source
func (m *Manager) Last() (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.history.Recent) == 0 {
		return Entry{}, false
	}
	return m.history.Recent[0], true
}

// Recent returns a copy of the recent sources, newest first
func (m *Manager) Recent() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Entry(nil), m.history.Recent...)
}

// Remember moves e to the front of the recent list and schedules a
// debounced save
func (m *Manager) Remember(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := []Entry{e}
	for _, old := range m.history.Recent {
		if old.Kind == e.Kind && old.Path == e.Path && old.Query == e.Query {
			continue
		}
		if len(recent) == maxRecent {
			break
		}
		recent = append(recent, old)
	}
	m.history.Recent = recent
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// Close ensures any pending save is written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
