// Package viewport tracks scroll offsets against content extents.
package viewport

import "github.com/lumipallolabs/groupview/internal/model"

// Controller holds the scroll state of one outline
type Controller struct {
	offsetX, offsetY int
	clientW, clientH int
	contentW         int
	contentH         int
	margin           int

	// lastCurrentTop is the current row's top at the previous settle;
	// auto-scroll only fires when it changes
	lastCurrentTop int
}

// New creates a controller whose scroll range extends margin past the
// content
func New(margin int) *Controller {
	return &Controller{margin: margin, lastCurrentTop: model.NotFound}
}

// Offset returns the scroll position
func (c *Controller) Offset() (x, y int) {
	return c.offsetX, c.offsetY
}

// Client returns the client size
func (c *Controller) Client() (w, h int) {
	return c.clientW, c.clientH
}

// Extent returns the scrollable size, content plus margin
func (c *Controller) Extent() (w, h int) {
	return c.contentW + c.margin, c.contentH + c.margin
}

// Viewport returns the visible rect in content coordinates
func (c *Controller) Viewport() model.Rect {
	return model.RectXYWH(c.offsetX, c.offsetY, c.clientW, c.clientH)
}

// SetClient resizes the visible area. It returns true if the size changed.
func (c *Controller) SetClient(w, h int) bool {
	if w == c.clientW && h == c.clientH {
		return false
	}
	c.clientW, c.clientH = w, h
	return true
}

// Page returns the page step for each axis
func (c *Controller) Page() (x, y int) {
	return max(1, c.clientW/2), max(1, c.clientH/2)
}

func (c *Controller) maxX() int {
	w, _ := c.Extent()
	return max(0, w-c.clientW)
}

func (c *Controller) maxY() int {
	_, h := c.Extent()
	return max(0, h-c.clientH)
}

func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	return max(v, 0)
}

// ScrollTo moves to an absolute position and reports which axes moved
func (c *Controller) ScrollTo(x, y int) (movedX, movedY bool) {
	x, y = clamp(x, c.maxX()), clamp(y, c.maxY())
	movedX, movedY = x != c.offsetX, y != c.offsetY
	c.offsetX, c.offsetY = x, y
	return movedX, movedY
}

// ScrollBy moves relative to the current position
func (c *Controller) ScrollBy(dx, dy int) (movedX, movedY bool) {
	return c.ScrollTo(c.offsetX+dx, c.offsetY+dy)
}

// Settle records new content extents after a layout pass, clamps the
// offsets and scrolls the current row into view when its top moved since
// the previous settle. currentTop is model.NotFound when there is no
// current row in the tree. It returns true when the offsets changed and
// the pass needs repainting.
func (c *Controller) Settle(contentW, contentH, currentTop int) bool {
	c.contentW, c.contentH = contentW, contentH
	x, y := c.offsetX, c.offsetY

	c.offsetX = clamp(c.offsetX, c.maxX())
	c.offsetY = clamp(c.offsetY, c.maxY())

	switch {
	case currentTop == model.NotFound:
		c.lastCurrentTop = model.NotFound
	case currentTop != c.lastCurrentTop:
		c.lastCurrentTop = currentTop
		if currentTop < c.offsetY || currentTop+c.margin > c.offsetY+c.clientH {
			c.offsetY = clamp(currentTop-c.clientH/2, c.maxY())
		}
	}

	return x != c.offsetX || y != c.offsetY
}
