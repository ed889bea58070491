package geometry

import (
	"fmt"
	"math"
)

// MinSize is the default minimum width and height of a crop region, in
// display pixels.
const MinSize = 50.0

// initialFill is the share of the image box the initial region spans.
const initialFill = 0.9

// Handle identifies one of the eight resize control points.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

var handleNames = [...]string{
	HandleNone: "",
	HandleN:    "n",
	HandleS:    "s",
	HandleE:    "e",
	HandleW:    "w",
	HandleNE:   "ne",
	HandleNW:   "nw",
	HandleSE:   "se",
	HandleSW:   "sw",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleNames[h]
}

// ParseHandle parses a compass name such as "ne" into a Handle.
func ParseHandle(s string) (Handle, error) {
	for i, name := range handleNames {
		if name != "" && name == s {
			return Handle(i), nil
		}
	}
	return HandleNone, fmt.Errorf("unknown handle: %q", s)
}

// Handles lists all resize handles, corners first.
func Handles() []Handle {
	return []Handle{HandleNW, HandleNE, HandleSE, HandleSW, HandleN, HandleE, HandleS, HandleW}
}

// IsCorner reports whether h adjusts two axes.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleNE, HandleNW, HandleSE, HandleSW:
		return true
	}
	return false
}

func (h Handle) movesLeft() bool   { return h == HandleW || h == HandleNW || h == HandleSW }
func (h Handle) movesRight() bool  { return h == HandleE || h == HandleNE || h == HandleSE }
func (h Handle) movesTop() bool    { return h == HandleN || h == HandleNW || h == HandleNE }
func (h Handle) movesBottom() bool { return h == HandleS || h == HandleSW || h == HandleSE }

// Constraints are the rules a Region enforces on every mutation.
type Constraints struct {
	// AspectRatio is width/height. Zero means free-form.
	AspectRatio float64 `json:"aspect_ratio"`
	// AspectLocked enables the ratio. It has no effect when AspectRatio is 0.
	AspectLocked bool `json:"aspect_locked"`
	// MinSize is the minimum width and height. Zero selects MinSize.
	MinSize float64 `json:"min_size"`
}

// lockedRatio returns the ratio in force, or 0 when the region is free-form.
func (c Constraints) lockedRatio() float64 {
	if c.AspectLocked && c.AspectRatio > 0 {
		return c.AspectRatio
	}
	return 0
}

// Region is the crop selection in container space plus the rules that keep
// it valid. Every mutation leaves the rectangle inside the image box, at
// least MinSize on both axes (bounds permitting) and at the locked ratio.
type Region struct {
	rect Rect
	geom Geometry
	cons Constraints
}

// NewRegion returns a region initialized for g.
func NewRegion(g Geometry, c Constraints) *Region {
	if c.MinSize <= 0 {
		c.MinSize = MinSize
	}
	r := &Region{cons: c}
	r.Initialize(g)
	return r
}

// Rect returns the current selection.
func (r *Region) Rect() Rect { return r.rect }

// Geometry returns the layout the region is constrained to.
func (r *Region) Geometry() Geometry { return r.geom }

// Constraints returns the active constraints.
func (r *Region) Constraints() Constraints { return r.cons }

// Initialize discards the current rectangle and derives the default one for
// g: 90% of the display width, height from the locked ratio (or width from
// 90% of the height when that overflows), centered in the image box.
func (r *Region) Initialize(g Geometry) {
	r.geom = g

	w := g.DisplayWidth * initialFill
	h := g.DisplayHeight * initialFill
	if ratio := r.cons.lockedRatio(); ratio > 0 {
		h = w / ratio
		if h > g.DisplayHeight*initialFill {
			h = g.DisplayHeight * initialFill
			w = h * ratio
		}
	}
	w, h = r.clampSize(w, h, g.DisplayWidth, g.DisplayHeight)

	r.rect = Rect{
		X:      g.OffsetX + (g.DisplayWidth-w)/2,
		Y:      g.OffsetY + (g.DisplayHeight-h)/2,
		Width:  w,
		Height: h,
	}
}

// Move translates the rectangle and clamps each axis independently so it
// stays inside the image box.
func (r *Region) Move(dx, dy float64) {
	r.rect = r.rect.Translate(dx, dy)
	r.clampPosition()
}

// Resize drags handle h by (dx, dy).
//
// Steps run in a fixed order: raw deltas, aspect constraint, size clamp
// against the extent left from the anchored edges, then position clamp.
// None of the later steps can break the ratio set by the second.
func (r *Region) Resize(h Handle, dx, dy float64) {
	if h == HandleNone {
		return
	}
	cur := r.rect
	right, bottom := cur.Right(), cur.Bottom()
	x, y, w, ht := cur.X, cur.Y, cur.Width, cur.Height

	switch {
	case h.movesLeft():
		w -= dx
	case h.movesRight():
		w += dx
	}
	switch {
	case h.movesTop():
		ht -= dy
	case h.movesBottom():
		ht += dy
	}

	if ratio := r.cons.lockedRatio(); ratio > 0 {
		if h == HandleN || h == HandleS {
			w = ht * ratio
		} else {
			ht = w / ratio
		}
	}

	b := r.geom.Bounds()
	maxW := b.Right() - x
	if h.movesLeft() {
		maxW = right - b.X
	}
	maxH := b.Bottom() - y
	if h.movesTop() {
		maxH = bottom - b.Y
	}
	w, ht = r.clampSize(w, ht, maxW, maxH)

	if h.movesLeft() {
		x = right - w
	}
	if h.movesTop() {
		y = bottom - ht
	}
	r.rect = Rect{X: x, Y: y, Width: w, Height: ht}
	r.clampPosition()
}

// Place replaces the rectangle with rect, then applies the ratio, size and
// position clamps. The top-left corner is kept where the clamps allow.
func (r *Region) Place(rect Rect) {
	w, h := rect.Width, rect.Height
	if ratio := r.cons.lockedRatio(); ratio > 0 {
		h = w / ratio
	}
	w, h = r.clampSize(w, h, r.geom.DisplayWidth, r.geom.DisplayHeight)
	r.rect = Rect{X: rect.X, Y: rect.Y, Width: w, Height: h}
	r.clampPosition()
}

// SetAspectLock toggles the ratio lock. Locking re-initializes the
// rectangle from the current geometry; unlocking leaves it unchanged.
func (r *Region) SetAspectLock(locked bool) {
	r.cons.AspectLocked = locked
	if locked {
		r.Initialize(r.geom)
	}
}

// clampSize bounds (w, h) to [MinSize, maxW] x [MinSize, maxH]. With a
// locked ratio only the width is clamped and the height follows from it.
// When the bounds are tighter than MinSize the bounds win.
func (r *Region) clampSize(w, h, maxW, maxH float64) (float64, float64) {
	minSize := r.cons.MinSize
	if ratio := r.cons.lockedRatio(); ratio > 0 {
		lo := math.Max(minSize, minSize*ratio)
		hi := math.Min(maxW, maxH*ratio)
		if lo > hi {
			lo = hi
		}
		w = clamp(w, lo, hi)
		return w, w / ratio
	}
	return clamp(w, math.Min(minSize, maxW), maxW), clamp(h, math.Min(minSize, maxH), maxH)
}

func (r *Region) clampPosition() {
	b := r.geom.Bounds()
	r.rect.X = clamp(r.rect.X, b.X, b.Right()-r.rect.Width)
	r.rect.Y = clamp(r.rect.Y, b.Y, b.Bottom()-r.rect.Height)
}
