package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/groupview/internal/core"
	"github.com/lumipallolabs/groupview/internal/logging"
	"github.com/lumipallolabs/groupview/internal/model"
	"github.com/lumipallolabs/groupview/internal/source"
	"github.com/lumipallolabs/groupview/internal/watcher"
)

// Loader produces a fresh row source, used for reloads
type Loader func(ctx context.Context) (source.RowSource, error)

// Options configure the terminal host
type Options struct {
	Title      string
	SourceName string
	Load       Loader // nil disables reloading
	WatchRoot  string // directory to watch for changes; empty disables watching
	BandColor  string

	// Open reveals a file in the platform file manager
	Open func(path string) error
}

// watcherEventMsg is sent when the filesystem watcher detects a change
type watcherEventMsg struct {
	event watcher.Event
}

// startWatcherMsg triggers starting the filesystem watcher
type startWatcherMsg struct {
	root string
}

// reloadMsg fires after the debounce delay of a burst of watcher events
type reloadMsg struct {
	version int
}

// reloadDoneMsg carries a freshly loaded source
type reloadDoneMsg struct {
	src source.RowSource
	err error
}

// Timing constants
const (
	doubleClickTimeout = 400 * time.Millisecond
	reloadDebounce     = 300 * time.Millisecond
	wheelStep          = 3
)

// Layout rows around the outline
const (
	headerHeight  = 1
	helpBarHeight = 1
)

type press struct {
	at   time.Time
	x, y int
}

// App is the main application model
type App struct {
	// Components
	header Header
	help   HelpOverlay
	canvas *Canvas
	ctrl   *core.Controller

	keys KeyMap
	opts Options

	// Filesystem watcher
	watcher       *watcher.Watcher
	reloadVersion int

	lastPress press
	now       func() time.Time

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance around ctrl
func NewApp(ctrl *core.Controller, opts Options) App {
	if opts.Title == "" {
		opts.Title = "GROUPVIEW"
	}
	if opts.Open == nil {
		opts.Open = openInFileManager
	}
	keys := DefaultKeyMap()

	open := opts.Open
	ctrl.Subscribe(func(e core.Event) {
		if dc, ok := e.(core.DoubleClickEvent); ok {
			openLine(ctrl.Source(), dc.Line, open)
		}
	})

	return App{
		header: NewHeader(opts.Title, opts.SourceName),
		help:   NewHelpOverlay(opts.Title, keys),
		canvas: NewCanvas(BandStyles(opts.BandColor)),
		ctrl:   ctrl,
		keys:   keys,
		opts:   opts,
		now:    time.Now,
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	titleCmd := tea.SetWindowTitle(a.opts.Title)
	if a.opts.WatchRoot != "" && a.opts.Load != nil {
		root := a.opts.WatchRoot
		return tea.Batch(titleCmd, func() tea.Msg {
			return startWatcherMsg{root: root}
		})
	}
	return titleCmd
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case startWatcherMsg:
		if a.watcher != nil {
			_ = a.watcher.Stop()
		}

		w, err := watcher.New()
		if err != nil {
			logging.Debug.Debug().Err(err).Msg("failed to create watcher")
			return a, nil
		}

		a.watcher = w
		if err := w.AddRecursive(msg.root); err != nil {
			logging.Debug.Debug().Err(err).Msg("failed to add recursive watch")
		}
		w.Start()
		logging.Debug.Debug().Str("root", msg.root).Msg("filesystem watcher started")

		return a, a.listenForWatcherEvents()

	case watcherEventMsg:
		// Coalesce bursts into one reload
		a.reloadVersion++
		version := a.reloadVersion
		debounce := tea.Tick(reloadDebounce, func(time.Time) tea.Msg {
			return reloadMsg{version: version}
		})
		return a, tea.Batch(debounce, a.listenForWatcherEvents())

	case reloadMsg:
		if msg.version != a.reloadVersion {
			return a, nil
		}
		cmd := a.startReload()
		return a, cmd

	case reloadDoneMsg:
		a.header.SetLoading(false)
		if msg.err != nil {
			logging.Debug.Debug().Err(msg.err).Msg("reload failed")
			a.header.SetError(msg.err)
			return a, nil
		}
		a.header.SetError(nil)
		a.ctrl.SetSource(carryCursor(a.ctrl.Source(), msg.src))
		return a, nil
	}

	return a, nil
}

// carryCursor moves the current row of old onto the same line of src
func carryCursor(old, src source.RowSource) source.RowSource {
	if line := old.CurrentRow(); line > 0 && line <= src.RowCount() {
		src.SetCurrentRow(line)
	}
	return src
}

// startReload loads a fresh source in the background
func (a *App) startReload() tea.Cmd {
	if a.opts.Load == nil {
		return nil
	}
	a.header.SetLoading(true)
	load := a.opts.Load
	return func() tea.Msg {
		src, err := load(context.Background())
		return reloadDoneMsg{src: src, err: err}
	}
}

// listenForWatcherEvents returns a command that waits for the next watcher event
func (a *App) listenForWatcherEvents() tea.Cmd {
	if a.watcher == nil {
		return nil
	}

	w := a.watcher
	return func() tea.Msg {
		event, ok := <-w.Events()
		if !ok {
			return nil // Channel closed
		}
		return watcherEventMsg{event: event}
	}
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence; any key closes it
	if a.help.IsVisible() {
		a.help.SetVisible(false)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.watcher != nil {
			_ = a.watcher.Stop()
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.Up):
		a.ctrl.MoveCurrent(-1)

	case key.Matches(msg, a.keys.Down):
		a.ctrl.MoveCurrent(1)

	case key.Matches(msg, a.keys.Left):
		a.ctrl.Collapse()

	case key.Matches(msg, a.keys.Right):
		a.ctrl.Expand()

	case key.Matches(msg, a.keys.ScrollLeft):
		a.ctrl.ScrollBy(-wheelStep, 0)

	case key.Matches(msg, a.keys.ScrollRight):
		a.ctrl.ScrollBy(wheelStep, 0)

	case key.Matches(msg, a.keys.Top):
		a.ctrl.Home()

	case key.Matches(msg, a.keys.Bottom):
		a.ctrl.End()

	case key.Matches(msg, a.keys.PageUp):
		a.ctrl.PageMove(-1)

	case key.Matches(msg, a.keys.PageDown):
		a.ctrl.PageMove(1)

	case key.Matches(msg, a.keys.Toggle):
		a.ctrl.ToggleCurrent()

	case key.Matches(msg, a.keys.Select):
		a.ctrl.ToggleSelectCurrent()

	case key.Matches(msg, a.keys.SelectAll):
		a.ctrl.SelectAll()

	case key.Matches(msg, a.keys.Open):
		openLine(a.ctrl.Source(), a.ctrl.Source().CurrentRow(), a.opts.Open)

	case key.Matches(msg, a.keys.Reload):
		cmd := a.startReload()
		return a, cmd
	}

	return a, nil
}

// handleMouse feeds pointer input to the controller
func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.help.IsVisible() {
		return a, nil
	}

	p := model.Point{X: msg.X, Y: msg.Y - headerHeight}
	mods := core.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl || msg.Alt}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(msg.Shift, msg.Ctrl, -1)
		case tea.MouseButtonWheelDown:
			a.scroll(msg.Shift, msg.Ctrl, 1)
		case tea.MouseButtonWheelLeft:
			a.ctrl.ScrollBy(-wheelStep, 0)
		case tea.MouseButtonWheelRight:
			a.ctrl.ScrollBy(wheelStep, 0)
		case tea.MouseButtonLeft:
			if !a.inOutline(p) {
				return a, nil
			}
			now := a.now()
			last := a.lastPress
			if last.x == p.X && last.y == p.Y && now.Sub(last.at) < doubleClickTimeout {
				a.lastPress = press{}
				a.ctrl.DoubleClick(p)
				return a, nil
			}
			a.lastPress = press{at: now, x: p.X, y: p.Y}
			a.ctrl.MouseDown(p)
		case tea.MouseButtonRight:
			if a.inOutline(p) {
				a.ctrl.RightDown(p)
			}
		}

	case tea.MouseActionMotion:
		a.ctrl.MouseMove(p)

	case tea.MouseActionRelease:
		a.ctrl.MouseUp(p, mods)
	}

	return a, nil
}

// scroll moves the outline by wheel notches, or by pages when paging
func (a *App) scroll(horizontal, paging bool, dir int) {
	dx, dy := 0, dir
	if horizontal {
		dx, dy = dir, 0
	}
	if paging {
		a.ctrl.ScrollPage(dx, dy)
		return
	}
	a.ctrl.ScrollBy(dx*wheelStep, dy*wheelStep)
}

func (a *App) inOutline(p model.Point) bool {
	w, h := a.canvas.Size()
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

// openLine reveals the file behind a row, for sources backed by files
func openLine(src source.RowSource, line int, open func(string) error) {
	pathed, ok := src.(source.Pathed)
	if !ok || line <= 0 {
		return
	}
	path := pathed.PathOf(line)
	if path == "" {
		return
	}
	logging.Debug.Debug().Str("path", path).Msg("opening in file manager")
	if err := open(path); err != nil {
		logging.Debug.Debug().Err(err).Msg("open in file manager failed")
	}
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	outlineHeight := max(a.height-headerHeight-helpBarHeight, 1)

	a.header.SetWidth(a.width)
	a.canvas.Resize(a.width, outlineHeight)
	a.ctrl.SetClientSize(a.width, outlineHeight)
	a.help.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	a.ctrl.Paint(a.canvas)
	a.header.SetState(a.ctrl.State())

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		a.canvas.Render(),
		HelpBar(a.keys, a.width),
	)

	if a.help.IsVisible() {
		return lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.help.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(ColorBackground),
		)
	}

	return content
}
