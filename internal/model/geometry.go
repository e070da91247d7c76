package model

// Point is a position in content coordinates
type Point struct {
	X, Y int
}

// Rect is a half-open rectangle [Left, Right) x [Top, Bottom)
type Rect struct {
	Left, Top, Right, Bottom int
}

// RectXYWH builds a rect from origin and size
func RectXYWH(x, y, w, h int) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty returns true if the rect has no area
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Offset returns r moved by dx, dy
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}
