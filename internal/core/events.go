package core

import "github.com/lumipallolabs/groupview/internal/grouping"

// Event represents a notification from the controller
type Event interface {
	isEvent()
}

// ClickEvent is emitted when a row or header is clicked. Line is 0 for a
// click on a pure header.
type ClickEvent struct {
	Line int
}

func (ClickEvent) isEvent() {}

// DoubleClickEvent is emitted when a row is double-clicked
type DoubleClickEvent struct {
	Line int
}

func (DoubleClickEvent) isEvent() {}

// ColumnResizedEvent is emitted while a column divider is dragged
type ColumnResizedEvent struct {
	Column int
	Width  int
}

func (ColumnResizedEvent) isEvent() {}

// ScrolledEvent is emitted when a scroll offset changes
type ScrolledEvent struct {
	Horizontal bool
	Offset     int
}

func (ScrolledEvent) isEvent() {}

// RebuiltEvent is emitted after the tree was regrouped
type RebuiltEvent struct {
	Stats grouping.Stats
}

func (RebuiltEvent) isEvent() {}
