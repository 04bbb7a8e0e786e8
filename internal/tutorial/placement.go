package tutorial

import "sync"

// Point is a cell position.
type Point struct {
	X, Y int
}

// Size is a width and height in cells.
type Size struct {
	W, H int
}

// Rect is a rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Placement defaults in cells.
const (
	DefaultGap      = 1
	ViewportPadding = 1
)

// Place returns the top-left corner of a tooltip placed pos of target,
// separated by gap cells and clamped so the tooltip stays inside the viewport
// with ViewportPadding around it. A nil target or a center position centers the
// tooltip in the viewport.
func Place(target *Rect, tooltip Size, viewport Size, pos Position, gap int) Point {
	var p Point
	if target == nil || pos == PositionCenter || pos == "" {
		p = Point{X: (viewport.W - tooltip.W) / 2, Y: (viewport.H - tooltip.H) / 2}
	} else {
		switch pos {
		case PositionTop:
			p = Point{X: target.X + target.W/2 - tooltip.W/2, Y: target.Y - tooltip.H - gap}
		case PositionBottom:
			p = Point{X: target.X + target.W/2 - tooltip.W/2, Y: target.Y + target.H + gap}
		case PositionLeft:
			p = Point{X: target.X - tooltip.W - gap, Y: target.Y + target.H/2 - tooltip.H/2}
		case PositionRight:
			p = Point{X: target.X + target.W + gap, Y: target.Y + target.H/2 - tooltip.H/2}
		}
	}
	return Clamp(p, tooltip, viewport, ViewportPadding)
}

// Clamp keeps a tooltip at p fully inside the viewport, pad cells from the
// edges when there is room. A tooltip larger than the viewport is pinned to
// the top-left corner.
func Clamp(p Point, tooltip Size, viewport Size, pad int) Point {
	return Point{
		X: clampAxis(p.X, tooltip.W, viewport.W, pad),
		Y: clampAxis(p.Y, tooltip.H, viewport.H, pad),
	}
}

func clampAxis(v, size, limit, pad int) int {
	lo, hi := pad, limit-size-pad
	if hi < lo {
		lo, hi = 0, limit-size
		if hi < 0 {
			return 0
		}
	}
	return max(lo, min(v, hi))
}

// AnchorRegistry maps anchor names to the rectangles views rendered them at.
type AnchorRegistry struct {
	rects map[string]Rect
	mu    sync.RWMutex
}

// NewAnchorRegistry creates an empty registry.
func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{rects: make(map[string]Rect)}
}

// Register records the rectangle for name, replacing any previous one.
func (r *AnchorRegistry) Register(name string, rect Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rects[name] = rect
}

// Unregister forgets name.
func (r *AnchorRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rects, name)
}

// Lookup returns the rectangle for name.
func (r *AnchorRegistry) Lookup(name string) (Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rect, ok := r.rects[name]
	return rect, ok
}

// Reset forgets every anchor. Views call it before a full re-render.
func (r *AnchorRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rects = make(map[string]Rect)
}
