package interaction

import (
	"github.com/ironsheep/image-crop-mcp/internal/geometry"
)

// DefaultHandleSize is the side of the square hit area around each handle.
const DefaultHandleSize = 12.0

// HandleRects returns the hit squares of all eight handles, keyed by handle.
func HandleRects(r geometry.Rect, size float64) map[geometry.Handle]geometry.Rect {
	hs := size / 2
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	sq := func(x, y float64) geometry.Rect {
		return geometry.Rect{X: x - hs, Y: y - hs, Width: size, Height: size}
	}
	return map[geometry.Handle]geometry.Rect{
		geometry.HandleNW: sq(r.X, r.Y),
		geometry.HandleN:  sq(cx, r.Y),
		geometry.HandleNE: sq(r.Right(), r.Y),
		geometry.HandleE:  sq(r.Right(), cy),
		geometry.HandleSE: sq(r.Right(), r.Bottom()),
		geometry.HandleS:  sq(cx, r.Bottom()),
		geometry.HandleSW: sq(r.X, r.Bottom()),
		geometry.HandleW:  sq(r.X, cy),
	}
}

// HitTest resolves a pointer-down at p against region r. Handles take
// priority over the body and corners over edges. It reports false when p
// misses both.
func HitTest(r geometry.Rect, p geometry.Point, handleSize float64) (Target, bool) {
	if handleSize <= 0 {
		handleSize = DefaultHandleSize
	}
	rects := HandleRects(r, handleSize)
	for _, h := range geometry.Handles() {
		if rects[h].Contains(p) {
			return OnHandle(h), true
		}
	}
	if r.Contains(p) {
		return Body(), true
	}
	return Target{}, false
}
