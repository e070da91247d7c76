// Package core ties the outline tree, grouping, layout, viewport and hit
// testing into one widget controller. A controller is driven from a single
// goroutine.
package core

import (
	"github.com/lumipallolabs/groupview/internal/config"
	"github.com/lumipallolabs/groupview/internal/grouping"
	"github.com/lumipallolabs/groupview/internal/hittest"
	"github.com/lumipallolabs/groupview/internal/layout"
	"github.com/lumipallolabs/groupview/internal/logging"
	"github.com/lumipallolabs/groupview/internal/model"
	"github.com/lumipallolabs/groupview/internal/source"
	"github.com/lumipallolabs/groupview/internal/viewport"
)

// Options are the device-dependent settings of a controller
type Options struct {
	Metrics layout.Metrics
	Limits  config.Limits
}

// PixelOptions suit a pixel painter
var PixelOptions = Options{Metrics: layout.DefaultMetrics, Limits: config.DefaultLimits}

// TerminalOptions suit a character-cell painter
var TerminalOptions = Options{Metrics: layout.TerminalMetrics, Limits: config.TerminalLimits}

// drag tracks a column divider being dragged
type drag struct {
	column int
	startX int
	width  int
}

// Controller manages one outline widget
type Controller struct {
	opts   Options
	cfg    *config.Config
	src    source.RowSource
	tree   *model.Tree
	engine *grouping.Engine
	layout *layout.Engine
	view   *viewport.Controller
	hits   hittest.Cache
	dirty  model.Dirty

	drag     *drag
	focus    model.NodeID
	stats    grouping.Stats
	contentH int
	painting bool

	// Event handling
	listeners []func(Event)
}

// NewController creates a controller over src. The config is normalized
// in place.
func NewController(cfg *config.Config, src source.RowSource, opts Options) *Controller {
	c := &Controller{
		opts:   opts,
		src:    src,
		tree:   model.NewTree(),
		layout: layout.NewEngine(opts.Metrics),
		view:   viewport.New(opts.Metrics.ScrollMargin),
		dirty:  model.StructureDirty,
	}
	c.SetConfig(cfg)
	return c
}

// Subscribe registers a listener for controller events
func (c *Controller) Subscribe(fn func(Event)) {
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) emit(e Event) {
	for _, fn := range c.listeners {
		fn(e)
	}
}

// Tree returns the outline tree
func (c *Controller) Tree() *model.Tree {
	return c.tree
}

// Source returns the row source
func (c *Controller) Source() source.RowSource {
	return c.src
}

// Config returns the active configuration
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// State returns a read-only snapshot of the controller
func (c *Controller) State() State {
	x, y := c.view.Offset()
	return State{
		Dirty:         c.dirty,
		Stats:         c.stats,
		Nodes:         c.tree.Len(),
		Current:       c.src.CurrentRow(),
		Focus:         c.focus,
		OffsetX:       x,
		OffsetY:       y,
		ContentWidth:  c.cfg.TotalWidth(),
		ContentHeight: c.contentH,
		Errors:        c.engine.Errors(),
	}
}

// SetConfig replaces the configuration with a normalized copy of cfg and
// regroups
func (c *Controller) SetConfig(cfg *config.Config) {
	cfg = cfg.Clone()
	cfg.Normalize(c.opts.Limits)
	c.cfg = cfg
	c.compile()
	c.dirty.Mark(model.StructureDirty)
}

// SetSource replaces the row source and regroups
func (c *Controller) SetSource(src source.RowSource) {
	c.src = src
	c.compile()
	c.dirty.Mark(model.StructureDirty)
}

// Invalidate marks the source contents as changed
func (c *Controller) Invalidate() {
	c.dirty.Mark(model.StructureDirty)
}

// InvalidateGeometry marks cached positions as stale
func (c *Controller) InvalidateGeometry() {
	c.dirty.Mark(model.GeometryDirty)
}

func (c *Controller) compile() {
	var names []string
	if n, ok := c.src.(source.Named); ok {
		names = n.ColumnNames()
	}
	c.engine = grouping.New(c.cfg.Rules(), names)
}

// SetColumnWidth resizes a column, floored at the minimum width
func (c *Controller) SetColumnWidth(col, width int) {
	if col < 0 || col >= len(c.cfg.Columns) {
		return
	}
	width = max(width, c.opts.Limits.MinWidth)
	if c.cfg.Columns[col].Width == width {
		return
	}
	c.cfg.Columns[col].Width = width
	c.dirty.Mark(model.GeometryDirty)
	c.emit(ColumnResizedEvent{Column: col, Width: width})
}

// Toggle flips a node between expanded and collapsed
func (c *Controller) Toggle(id model.NodeID) {
	if n := c.tree.Node(id); n != nil && id != model.RootID {
		c.SetExpanded(id, !n.Expanded)
	}
}

// SetExpanded expands or collapses a node
func (c *Controller) SetExpanded(id model.NodeID, expanded bool) {
	n := c.tree.Node(id)
	if n == nil || id == model.RootID || n.Expanded == expanded {
		return
	}
	n.Expanded = expanded
	c.dirty.Mark(model.GeometryDirty)
}

// IsVisible reports whether line is present in the tree
func (c *Controller) IsVisible(line int) bool {
	return c.tree.FindTopForRow(line) != model.NotFound
}

// Cell returns the display text of a column for a line
func (c *Controller) Cell(col, line int) string {
	return c.engine.Column(col, grouping.Cursor{Source: c.src, Line: line})
}

// selected reports whether line is drawn highlighted
func (c *Controller) selected(line int) bool {
	if c.cfg.ShowSelected {
		return c.src.IsRowSelected(line)
	}
	return line == c.src.CurrentRow()
}

func (c *Controller) columns() []layout.Column {
	visible := c.cfg.Visible()
	cols := make([]layout.Column, len(visible))
	for i, col := range visible {
		cols[i] = layout.Column{Width: col.Width, Align: col.Align, Extend: col.Extends()}
	}
	return cols
}

// Rebuild regroups the source now if the structure is stale
func (c *Controller) Rebuild() bool {
	if !c.dirty.Structure() {
		return false
	}
	c.stats = grouping.Rebuild(c.tree, c.src, c.engine)
	c.dirty.Lower(model.GeometryDirty)
	c.hits.Revalidate(c.tree)
	if c.focus != 0 && c.tree.Node(c.focus) == nil {
		c.focus = 0
	}
	c.emit(RebuiltEvent{Stats: c.stats})
	return true
}

// Paint brings the tree and its geometry up to date and paints the visible
// part. A pass that moves the scroll offsets is followed by exactly one
// more pass.
func (c *Controller) Paint(p layout.Painter) PaintResult {
	var res PaintResult
	if c.painting {
		return res
	}
	c.painting = true
	defer func() { c.painting = false }()

	for res.Passes < 2 {
		res.Passes++
		if c.Rebuild() {
			res.Rebuilt = true
		}

		out := c.layout.Layout(p, &layout.Pass{
			Tree:          c.tree,
			Columns:       c.columns(),
			Indent:        c.cfg.Indent,
			LineSpacing:   c.cfg.LineSpacing,
			MaxRowHeight:  c.cfg.MaxRowHeight,
			EvenBand:      c.cfg.EvenBand,
			Cell:          c.Cell,
			Selected:      c.selected,
			Focus:         c.focus,
			Viewport:      c.view.Viewport(),
			GeometryValid: !c.dirty.Geometry(),
		})
		res.Painted = out.Painted
		res.Culled = out.Culled
		c.contentH = out.Height

		again := false
		if out.Corrupt {
			c.dirty.Mark(model.GeometryDirty)
			again = true
		} else {
			c.dirty.Lower(model.Clean)
		}

		if c.settle(c.currentTop()) {
			again = true
		}
		if !again {
			break
		}
	}
	logging.Debug.Debug().
		Int("passes", res.Passes).
		Int("painted", res.Painted).
		Int("culled", res.Culled).
		Msg("paint")
	return res
}

// settle feeds the new extents to the viewport and emits scroll events
func (c *Controller) settle(currentTop int) bool {
	x, y := c.view.Offset()
	moved := c.view.Settle(c.cfg.TotalWidth(), c.contentH, currentTop)
	c.emitScroll(x, y)
	return moved
}

func (c *Controller) emitScroll(oldX, oldY int) {
	x, y := c.view.Offset()
	if x != oldX {
		c.emit(ScrolledEvent{Horizontal: true, Offset: x})
	}
	if y != oldY {
		c.emit(ScrolledEvent{Offset: y})
	}
}

// SetClientSize resizes the visible area
func (c *Controller) SetClientSize(w, h int) {
	c.view.SetClient(w, h)
}

// Offset returns the scroll offsets
func (c *Controller) Offset() (x, y int) {
	return c.view.Offset()
}

// SetScroll scrolls to an absolute position
func (c *Controller) SetScroll(x, y int) {
	ox, oy := c.view.Offset()
	c.view.ScrollTo(x, y)
	c.emitScroll(ox, oy)
}

// ScrollBy scrolls relative to the current position
func (c *Controller) ScrollBy(dx, dy int) {
	ox, oy := c.view.Offset()
	c.view.ScrollBy(dx, dy)
	c.emitScroll(ox, oy)
}

// ScrollPage scrolls by whole pages
func (c *Controller) ScrollPage(dx, dy int) {
	px, py := c.view.Page()
	c.ScrollBy(dx*px, dy*py)
}

// Extent returns the scrollable size
func (c *Controller) Extent() (w, h int) {
	return c.view.Extent()
}
