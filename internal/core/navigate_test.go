package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumipallolabs/groupview/internal/layout"
	"github.com/lumipallolabs/groupview/internal/source"
)

func TestMoveCurrent(t *testing.T) {
	c, src, _ := newTestController(t)
	a := node(t, c, "A")
	b := node(t, c, "B")

	c.MoveCurrent(1)
	assert.Equal(t, a.ID, c.Focus())
	assert.Equal(t, 0, src.CurrentRow())

	c.MoveCurrent(1)
	assert.Zero(t, c.Focus())
	assert.Equal(t, 1, src.CurrentRow())

	c.MoveCurrent(2)
	assert.Equal(t, b.ID, c.Focus())

	c.MoveCurrent(10)
	assert.Equal(t, 3, src.CurrentRow())

	c.MoveCurrent(-1)
	assert.Equal(t, b.ID, c.Focus())

	c.Home()
	assert.Equal(t, a.ID, c.Focus())
	c.End()
	assert.Equal(t, 3, src.CurrentRow())
}

func TestMoveCurrentFromNothingUp(t *testing.T) {
	c, src, _ := newTestController(t)

	c.MoveCurrent(-1)

	assert.Equal(t, 3, src.CurrentRow())
}

func TestCollapseAndExpand(t *testing.T) {
	c, src, _ := newTestController(t)
	a := node(t, c, "A")
	b := node(t, c, "B")
	src.SetCurrentRow(1)

	c.Collapse()
	assert.Equal(t, a.ID, c.Focus(), "collapse on a row moves to its header")
	assert.True(t, a.Expanded)

	c.Collapse()
	assert.False(t, a.Expanded)
	c.Paint(layout.NewRecorder(1, 1))

	c.MoveCurrent(1)
	assert.Equal(t, b.ID, c.Focus(), "rows of a collapsed node are skipped")

	c.MoveCurrent(-1)
	c.Expand()
	assert.True(t, a.Expanded)
}

func TestToggleCurrentRowOwner(t *testing.T) {
	c, src, _ := newTestController(t)
	a := node(t, c, "A")
	b := node(t, c, "B")
	src.SetCurrentRow(2)

	c.ToggleCurrent()
	assert.False(t, a.Expanded)
	c.Paint(layout.NewRecorder(1, 1))

	// the hidden current row resolves to its collapsed header
	c.MoveCurrent(1)
	assert.Equal(t, b.ID, c.Focus())
}

func TestToggleCurrentUngroupedRow(t *testing.T) {
	c, src, _ := newTestController(t)
	cfg := testConfig()
	cfg.Levels = nil
	c.SetConfig(cfg)
	c.Paint(layout.NewRecorder(1, 1))
	src.SetCurrentRow(1)

	c.ToggleCurrent()

	assert.Equal(t, 1, src.CurrentRow())
	assert.True(t, c.Tree().Root().Expanded)
}

func TestPageMove(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"A", fmt.Sprint(i + 1)}
	}
	src := source.NewTable([]string{"group", "name"}, rows)
	c := NewController(testConfig(), src, TerminalOptions)
	c.SetClientSize(40, 4)
	c.Paint(layout.NewRecorder(1, 1))
	src.SetCurrentRow(1)

	c.PageMove(1)
	assert.Equal(t, 5, src.CurrentRow())

	c.PageMove(-1)
	assert.Equal(t, 1, src.CurrentRow())
}

func TestToggleSelectCurrent(t *testing.T) {
	c, src, events := newTestController(t)
	src.SetCurrentRow(2)
	*events = nil

	c.ToggleSelectCurrent()
	assert.True(t, src.IsRowSelected(2))
	c.ToggleSelectCurrent()
	assert.False(t, src.IsRowSelected(2))
	assert.Equal(t, []Event{ClickEvent{Line: 2}, ClickEvent{Line: 2}}, *events)

	c.Config().ShowSelected = false
	c.ToggleSelectCurrent()
	assert.False(t, src.IsRowSelected(2))
}

func TestFocusedHeaderScrollsIntoView(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{fmt.Sprint("G", i/5), fmt.Sprint(i + 1)}
	}
	src := source.NewTable([]string{"group", "name"}, rows)
	c := NewController(testConfig(), src, TerminalOptions)
	c.SetClientSize(40, 4)
	c.Paint(layout.NewRecorder(1, 1))

	c.End()
	c.MoveCurrent(-5)
	assert.NotZero(t, c.Focus())
	c.Paint(layout.NewRecorder(1, 1))

	_, y := c.Offset()
	top := c.Tree().Node(c.Focus()).Top
	assert.LessOrEqual(t, y, top)
	assert.Greater(t, y+4, top)
}
