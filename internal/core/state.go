package core

import (
	"github.com/lumipallolabs/groupview/internal/grouping"
	"github.com/lumipallolabs/groupview/internal/model"
)

// Modifiers are the keyboard modifiers held during a pointer event
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// State is a read-only snapshot of the controller
type State struct {
	Dirty   model.Dirty
	Stats   grouping.Stats
	Nodes   int
	Current int
	Focus   model.NodeID

	OffsetX, OffsetY int
	ContentWidth     int
	ContentHeight    int

	// Errors are expression compile failures
	Errors []error
}

// PaintResult reports what a paint did
type PaintResult struct {
	Passes  int
	Painted int
	Culled  int
	Rebuilt bool
}
