package geometry

import "errors"

// ErrNotLaidOut is returned when a mapper is requested for an image whose
// display box has zero width or height.
var ErrNotLaidOut = errors.New("image has no display extent")

// Mapper converts rectangles between display (container) space and the
// image's natural pixel grid.
type Mapper struct {
	geom Geometry

	// ScaleX is NaturalWidth / DisplayWidth.
	ScaleX float64
	// ScaleY is NaturalHeight / DisplayHeight.
	ScaleY float64
}

// NewMapper returns a mapper for g. It fails with ErrNotLaidOut if the image
// has not finished laying out.
func NewMapper(g Geometry) (*Mapper, error) {
	if !g.LaidOut() {
		return nil, ErrNotLaidOut
	}
	return &Mapper{
		geom:   g,
		ScaleX: g.NaturalWidth / g.DisplayWidth,
		ScaleY: g.NaturalHeight / g.DisplayHeight,
	}, nil
}

// ToNatural maps a container-space rectangle onto the natural pixel grid.
// The container offset is removed first, then each axis is scaled.
func (m *Mapper) ToNatural(r Rect) Rect {
	return Rect{
		X:      (r.X - m.geom.OffsetX) * m.ScaleX,
		Y:      (r.Y - m.geom.OffsetY) * m.ScaleY,
		Width:  r.Width * m.ScaleX,
		Height: r.Height * m.ScaleY,
	}
}

// ToDisplay is the inverse of ToNatural.
func (m *Mapper) ToDisplay(r Rect) Rect {
	return Rect{
		X:      r.X/m.ScaleX + m.geom.OffsetX,
		Y:      r.Y/m.ScaleY + m.geom.OffsetY,
		Width:  r.Width / m.ScaleX,
		Height: r.Height / m.ScaleY,
	}
}
