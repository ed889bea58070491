package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-crop-mcp/internal/geometry"
)

// RenderView draws src at its display size with the preview zoom and
// rotation applied, the way the editor shows it on screen. Rotation is
// clockwise in degrees and the canvas grows to fit the rotated image.
func RenderView(src image.Image, geom geometry.Geometry, scale float64, rotationDegrees int) image.Image {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(geom.DisplayWidth * scale))
	h := int(math.Round(geom.DisplayHeight * scale))
	if w < 1 || h < 1 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	view := imaging.Resize(src, w, h, imaging.Linear)
	if rotationDegrees%360 == 0 {
		return view
	}
	return transform.Rotate(view, float64(rotationDegrees), &transform.RotationOptions{ResizeBounds: true})
}

// CircularMask returns a copy of img with everything outside the inscribed
// circle made transparent. The circle's diameter is the shorter side.
func CircularMask(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	b := out.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	radius := math.Min(cx, cy)
	r2 := radius * radius

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				out.SetNRGBA(b.Min.X+x, b.Min.Y+y, color.NRGBA{})
			}
		}
	}
	return out
}
