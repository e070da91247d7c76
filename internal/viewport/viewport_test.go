package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumipallolabs/groupview/internal/model"
)

func TestScrollClamps(t *testing.T) {
	c := New(32)
	c.SetClient(100, 200)
	c.Settle(300, 1000, model.NotFound)

	_, movedY := c.ScrollTo(0, 5000)
	assert.True(t, movedY)
	_, y := c.Offset()
	assert.Equal(t, 832, y, "content plus margin minus client height")

	c.ScrollBy(-1000, -5000)
	x, y := c.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)

	c.ScrollBy(1000, 0)
	x, _ = c.Offset()
	assert.Equal(t, 232, x)

	w, h := c.Extent()
	assert.Equal(t, 332, w)
	assert.Equal(t, 1032, h)
}

func TestSettleClampsShrunkContent(t *testing.T) {
	c := New(32)
	c.SetClient(100, 200)
	c.Settle(100, 1000, model.NotFound)
	c.ScrollTo(0, 800)

	again := c.Settle(100, 300, model.NotFound)

	assert.True(t, again)
	_, y := c.Offset()
	assert.Equal(t, 132, y)
	assert.False(t, c.Settle(100, 300, model.NotFound), "a settled viewport needs no further pass")
}

func TestAutoScrollOnlyWhenTopMoves(t *testing.T) {
	c := New(32)
	c.SetClient(100, 200)

	// Current row far below the fold scrolls it to mid-client
	assert.True(t, c.Settle(100, 2000, 900))
	_, y := c.Offset()
	assert.Equal(t, 800, y)

	// The user scrolls away; the same top keeps their position
	c.ScrollTo(0, 0)
	assert.False(t, c.Settle(100, 2000, 900))
	_, y = c.Offset()
	assert.Zero(t, y)

	// The row moved, so it is brought back
	assert.True(t, c.Settle(100, 2000, 950))
	_, y = c.Offset()
	assert.Equal(t, 850, y)

	// Already visible rows do not scroll
	assert.False(t, c.Settle(100, 2000, 900))
}

func TestAutoScrollNearBottomEdge(t *testing.T) {
	c := New(32)
	c.SetClient(100, 200)
	c.Settle(100, 2000, model.NotFound)

	// 180+32 passes the client bottom
	assert.True(t, c.Settle(100, 2000, 180))
	_, y := c.Offset()
	assert.Equal(t, 80, y)
}

func TestNotFoundResetsMemory(t *testing.T) {
	c := New(32)
	c.SetClient(100, 200)
	c.Settle(100, 2000, 900)
	c.ScrollTo(0, 0)

	c.Settle(100, 2000, model.NotFound)
	assert.True(t, c.Settle(100, 2000, 900), "after losing the row the same top scrolls again")
}

func TestPageAndViewport(t *testing.T) {
	c := New(1)
	c.SetClient(1, 1)
	px, py := c.Page()
	assert.Equal(t, 1, px)
	assert.Equal(t, 1, py)

	assert.False(t, c.SetClient(1, 1))
	assert.True(t, c.SetClient(80, 24))
	c.Settle(200, 200, model.NotFound)
	c.ScrollTo(10, 20)
	assert.Equal(t, model.Rect{Left: 10, Top: 20, Right: 90, Bottom: 44}, c.Viewport())
}
