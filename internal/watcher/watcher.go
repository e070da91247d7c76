// Package watcher reports filesystem changes below a directory so a file
// backed outline can regroup.
package watcher

// EventType represents the type of filesystem event
type EventType int

const (
	EventDeleted EventType = iota
	EventCreated
	EventModified
)

// String returns a human-readable event type
func (t EventType) String() string {
	switch t {
	case EventDeleted:
		return "deleted"
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Event represents a filesystem change event
type Event struct {
	Type EventType
	Path string
}

// bufferSize is the event channel capacity. Events beyond it are dropped;
// a consumer reloading on any event loses nothing by that.
const bufferSize = 100

func send(ch chan<- Event, e Event) {
	select {
	case ch <- e:
	default:
	}
}
