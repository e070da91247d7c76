package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/groupview/internal/config"
	"github.com/lumipallolabs/groupview/internal/core"
	"github.com/lumipallolabs/groupview/internal/grouping"
	"github.com/lumipallolabs/groupview/internal/source"
)

// pathTable is a table whose rows name files
type pathTable struct {
	*source.Table
}

func (p pathTable) PathOf(line int) string {
	return "/data/" + p.ColumnValue(line, 1)
}

func testApp(t *testing.T, opts Options) (App, *source.Table) {
	t.Helper()
	src := source.NewTable([]string{"group", "name"}, [][]string{
		{"A", "one"},
		{"A", "two"},
		{"B", "three"},
	})
	cfg := &config.Config{
		ColumnCount:  1,
		Columns:      []config.Column{{Width: 30, Expr: "name"}},
		Levels:       []grouping.Level{{Group: "group"}},
		Indent:       2,
		ShowSelected: true,
	}
	var rs source.RowSource = src
	if opts.Open != nil {
		rs = pathTable{src}
	}
	ctrl := core.NewController(cfg, rs, core.TerminalOptions)
	a := NewApp(ctrl, opts)
	a = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 10})
	a.View()
	return a, src
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	out, ok := m.(App)
	require.True(t, ok)
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestViewRendersOutline(t *testing.T) {
	a, _ := testApp(t, Options{})

	view := a.View()

	assert.Contains(t, view, "GROUPVIEW")
	assert.Contains(t, view, "three")
	assert.Contains(t, view, "3 rows")
	assert.Contains(t, view, "2 groups")
	w, h := a.canvas.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 8, h)
}

func TestKeysMoveCursor(t *testing.T) {
	a, src := testApp(t, Options{})

	a = update(t, a, keyMsg("down"))
	a = update(t, a, keyMsg("down"))
	assert.Equal(t, 1, src.CurrentRow())

	a = update(t, a, keyMsg(" "))
	assert.True(t, src.IsRowSelected(1))

	a = update(t, a, keyMsg("enter"))
	a.View()
	a = update(t, a, keyMsg("down"))
	assert.Equal(t, 0, src.CurrentRow(), "rows of the collapsed group are skipped")

	update(t, a, keyMsg("ctrl+a"))
	assert.Equal(t, 3, src.SelectedCount())
}

func TestMouseClickAndDoubleClick(t *testing.T) {
	var opened []string
	a, src := testApp(t, Options{Open: func(path string) error {
		opened = append(opened, path)
		return nil
	}})
	now := time.Unix(1000, 0)
	a.now = func() time.Time { return now }

	// row 2 is on client row 2, screen row 3
	a = update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 3))
	a = update(t, a, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 10, 3))
	assert.Equal(t, 2, src.CurrentRow())
	assert.Empty(t, opened)

	now = now.Add(100 * time.Millisecond)
	a = update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 3))
	assert.Equal(t, []string{"/data/two"}, opened)

	// too slow for a double click
	now = now.Add(time.Second)
	a = update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 3))
	now = now.Add(time.Second)
	update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 3))
	assert.Len(t, opened, 1)
}

func TestMouseOutsideOutlineIgnored(t *testing.T) {
	a, src := testApp(t, Options{})

	a = update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 0))
	update(t, a, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 10, 0))

	assert.Equal(t, 0, src.CurrentRow())
}

func TestMouseDragResizesColumn(t *testing.T) {
	a, _ := testApp(t, Options{})

	a = update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 30, 2))
	a = update(t, a, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 25, 2))
	update(t, a, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 25, 2))

	assert.Equal(t, 25, a.ctrl.Config().Columns[0].Width)
}

func TestHelpOverlay(t *testing.T) {
	a, src := testApp(t, Options{})

	a = update(t, a, keyMsg("?"))
	assert.True(t, a.help.IsVisible())
	assert.Contains(t, a.View(), "Navigation")

	a = update(t, a, keyMsg("down"))
	assert.False(t, a.help.IsVisible())
	assert.Equal(t, 0, src.CurrentRow(), "the closing key is swallowed")
}

func TestQuit(t *testing.T) {
	a, _ := testApp(t, Options{})

	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestReload(t *testing.T) {
	fresh := source.NewTable([]string{"group", "name"}, [][]string{{"C", "four"}, {"C", "five"}})
	a, src := testApp(t, Options{Load: func(context.Context) (source.RowSource, error) {
		return fresh, nil
	}})
	src.SetCurrentRow(2)

	m, cmd := a.Update(keyMsg("r"))
	a = m.(App)
	require.NotNil(t, cmd)
	assert.True(t, a.header.loading)

	a = update(t, a, cmd())
	assert.False(t, a.header.loading)
	assert.Same(t, fresh, a.ctrl.Source())
	assert.Equal(t, 2, fresh.CurrentRow())
	assert.Contains(t, a.View(), "five")
}

func TestReloadError(t *testing.T) {
	a, _ := testApp(t, Options{Load: func(context.Context) (source.RowSource, error) {
		return nil, errors.New("disk gone")
	}})

	_, cmd := a.Update(keyMsg("r"))
	a = update(t, a, cmd())

	assert.True(t, strings.Contains(a.View(), "disk gone"))
}

func TestWatcherEventsDebounced(t *testing.T) {
	loads := 0
	a, _ := testApp(t, Options{Load: func(context.Context) (source.RowSource, error) {
		loads++
		return source.NewTable(nil, nil), nil
	}})

	a = update(t, a, watcherEventMsg{})
	a = update(t, a, watcherEventMsg{})

	_, cmd := a.Update(reloadMsg{version: 1})
	assert.Nil(t, cmd, "a superseded debounce does not reload")

	_, cmd = a.Update(reloadMsg{version: 2})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, loads)
}

func TestWheelScrollsAndPages(t *testing.T) {
	rows := make([][]string, 30)
	for i := range rows {
		rows[i] = []string{"row"}
	}
	src := source.NewTable([]string{"name"}, rows)
	cfg := &config.Config{ColumnCount: 1, Columns: []config.Column{{Width: 30}}}
	a := NewApp(core.NewController(cfg, src, core.TerminalOptions), Options{})
	a = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 10})
	a.View()

	a = update(t, a, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 5, 3))
	_, y := a.ctrl.Offset()
	assert.Equal(t, wheelStep, y)

	msg := mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 5, 3)
	msg.Ctrl = true
	a = update(t, a, msg)
	_, y = a.ctrl.Offset()
	assert.Equal(t, wheelStep+4, y, "a page is half the 8 line outline")

	msg = mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 5, 3)
	msg.Shift = true
	a = update(t, a, msg)
	x, _ := a.ctrl.Offset()
	assert.Equal(t, 0, x, "horizontal scroll clamps at the left edge")
}
