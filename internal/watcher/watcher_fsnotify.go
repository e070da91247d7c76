//go:build !darwin

package watcher

import (
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"

	"github.com/lumipallolabs/groupview/internal/logging"
)

// Watcher watches a directory tree with fsnotify. fsnotify watches are not
// recursive, so every directory gets its own watch and directories created
// later are added as they appear.
type Watcher struct {
	fs      *fsnotify.Watcher
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	started bool
}

func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:      fw,
		eventCh: make(chan Event, bufferSize),
		done:    make(chan struct{}),
	}, nil
}

func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// AddRecursive watches root and every directory below it
func (w *Watcher) AddRecursive(root string) error {
	dirs, err := listDirs(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.fs.Add(dir); err != nil {
			logging.Source.Debug().Err(err).Str("dir", dir).Msg("watch failed")
		}
	}
	return nil
}

func listDirs(root string) ([]string, error) {
	var mu sync.Mutex
	var dirs []string
	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			mu.Lock()
			dirs = append(dirs, path)
			mu.Unlock()
		}
		return nil
	})
	sort.Strings(dirs)
	return dirs, err
}

func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Source.Debug().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	var typ EventType
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		typ = EventDeleted
	case event.Has(fsnotify.Create):
		typ = EventCreated
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if err := w.AddRecursive(event.Name); err != nil {
				logging.Source.Debug().Err(err).Str("dir", event.Name).Msg("watch failed")
			}
		}
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Chmod):
		typ = EventModified
	default:
		return
	}
	logging.Source.Debug().Str("path", event.Name).Stringer("type", typ).Msg("fsnotify")
	send(w.eventCh, Event{Type: typ, Path: event.Name})
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	close(w.eventCh)
	return err
}
