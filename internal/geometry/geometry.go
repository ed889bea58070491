package geometry

import (
	"fmt"
	"math"
)

// Point is a pointer position in display space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Geometry describes how a decoded image is laid out inside its container.
//
// It is derived once per image load and again on container resize; every
// other component treats it as read-only.
type Geometry struct {
	NaturalWidth  float64 `json:"natural_width"`
	NaturalHeight float64 `json:"natural_height"`
	DisplayWidth  float64 `json:"display_width"`
	DisplayHeight float64 `json:"display_height"`

	// OffsetX and OffsetY locate the image box inside the container. They
	// are non-zero when the image is centered with empty space around it.
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// LaidOut reports whether the image has non-zero display extent.
func (g Geometry) LaidOut() bool {
	return g.DisplayWidth > 0 && g.DisplayHeight > 0
}

// Bounds returns the image box in container coordinates.
func (g Geometry) Bounds() Rect {
	return Rect{X: g.OffsetX, Y: g.OffsetY, Width: g.DisplayWidth, Height: g.DisplayHeight}
}

// Fit lays out a naturalW x naturalH image inside a containerW x containerH
// container: scaled down uniformly to fit (never up) and centered.
func Fit(naturalW, naturalH int, containerW, containerH float64) (Geometry, error) {
	if naturalW <= 0 || naturalH <= 0 {
		return Geometry{}, fmt.Errorf("invalid natural size %dx%d", naturalW, naturalH)
	}
	if containerW <= 0 || containerH <= 0 {
		return Geometry{}, fmt.Errorf("invalid container size %gx%g", containerW, containerH)
	}

	nw, nh := float64(naturalW), float64(naturalH)
	scale := math.Min(1, math.Min(containerW/nw, containerH/nh))
	dw, dh := nw*scale, nh*scale

	return Geometry{
		NaturalWidth:  nw,
		NaturalHeight: nh,
		DisplayWidth:  dw,
		DisplayHeight: dh,
		OffsetX:       (containerW - dw) / 2,
		OffsetY:       (containerH - dh) / 2,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
