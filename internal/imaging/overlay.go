package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-crop-mcp/internal/geometry"
)

// Overlay defaults.
const (
	DefaultShadeColor      = "#000000"
	DefaultShadeOpacity    = 0.55
	DefaultGuideColor      = "#FFFFFF"
	DefaultBackgroundColor = "#202020"
	DefaultHandleSize      = 12
)

// OverlayOptions control how RenderOverlay draws the editor surface.
type OverlayOptions struct {
	// ContainerWidth and ContainerHeight size the canvas. Zero derives them
	// from the geometry assuming the image is centered.
	ContainerWidth  int
	ContainerHeight int

	// ShadeColor tints everything outside the selection, as "#RRGGBB".
	ShadeColor string
	// ShadeOpacity is the blend factor of the tint, 0..1.
	ShadeOpacity float64
	// GuideColor draws the rule-of-thirds lines and handles.
	GuideColor string
	// BackgroundColor fills the container around the image.
	BackgroundColor string

	// Circular shades outside the circle inscribed in the selection.
	Circular bool
	// HideHandles skips the handle squares.
	HideHandles bool
	HandleSize  int
}

// OverlayResult contains the rendered editor surface.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderOverlay draws src into its container at the laid-out size with the
// crop selection on top: shade outside it, thirds guides and handles.
func RenderOverlay(src image.Image, geom geometry.Geometry, region geometry.Rect, opts OverlayOptions) (*image.NRGBA, error) {
	if !geom.LaidOut() {
		return nil, geometry.ErrNotLaidOut
	}
	opts = withOverlayDefaults(opts, geom)

	shade, err := colorful.Hex(opts.ShadeColor)
	if err != nil {
		return nil, fmt.Errorf("invalid shade color: %w", err)
	}
	guide, err := colorful.Hex(opts.GuideColor)
	if err != nil {
		return nil, fmt.Errorf("invalid guide color: %w", err)
	}
	bg, err := colorful.Hex(opts.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}

	canvas := imaging.New(opts.ContainerWidth, opts.ContainerHeight, toNRGBA(bg))
	dw := int(math.Round(geom.DisplayWidth))
	dh := int(math.Round(geom.DisplayHeight))
	view := imaging.Resize(src, dw, dh, imaging.Linear)
	canvas = imaging.Paste(canvas, view, image.Pt(int(math.Round(geom.OffsetX)), int(math.Round(geom.OffsetY))))

	inside := selectionTest(region, opts.Circular)
	b := canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				continue
			}
			c, ok := colorful.MakeColor(canvas.NRGBAAt(x, y))
			if !ok {
				continue
			}
			canvas.SetNRGBA(x, y, toNRGBA(c.BlendRgb(shade, opts.ShadeOpacity)))
		}
	}

	drawGuides(canvas, region, toNRGBA(guide))
	if !opts.HideHandles {
		drawHandles(canvas, region, opts.HandleSize, toNRGBA(guide))
	}
	return canvas, nil
}

// EncodeOverlay renders the overlay and returns it as base64 PNG.
func EncodeOverlay(src image.Image, geom geometry.Geometry, region geometry.Rect, opts OverlayOptions) (*OverlayResult, error) {
	canvas, err := RenderOverlay(src, geom, region, opts)
	if err != nil {
		return nil, err
	}
	return EncodePNG(canvas)
}

// EncodePNG wraps img as a base64 PNG result.
func EncodePNG(img image.Image) (*OverlayResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &OverlayResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func withOverlayDefaults(opts OverlayOptions, geom geometry.Geometry) OverlayOptions {
	if opts.ContainerWidth <= 0 {
		opts.ContainerWidth = int(math.Round(geom.DisplayWidth + 2*geom.OffsetX))
	}
	if opts.ContainerHeight <= 0 {
		opts.ContainerHeight = int(math.Round(geom.DisplayHeight + 2*geom.OffsetY))
	}
	if opts.ShadeColor == "" {
		opts.ShadeColor = DefaultShadeColor
	}
	if opts.ShadeOpacity <= 0 || opts.ShadeOpacity > 1 {
		opts.ShadeOpacity = DefaultShadeOpacity
	}
	if opts.GuideColor == "" {
		opts.GuideColor = DefaultGuideColor
	}
	if opts.BackgroundColor == "" {
		opts.BackgroundColor = DefaultBackgroundColor
	}
	if opts.HandleSize <= 0 {
		opts.HandleSize = DefaultHandleSize
	}
	return opts
}

// selectionTest returns a predicate for points inside the selection.
func selectionTest(r geometry.Rect, circular bool) func(x, y float64) bool {
	if !circular {
		return func(x, y float64) bool {
			return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
		}
	}
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	radius := math.Min(r.Width, r.Height) / 2
	return func(x, y float64) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}
}

// drawGuides draws the selection border and the rule-of-thirds lines.
func drawGuides(img *image.NRGBA, r geometry.Rect, c color.NRGBA) {
	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	x1, y1 := int(math.Round(r.Right()))-1, int(math.Round(r.Bottom()))-1

	for _, x := range []int{x0, x0 + (x1-x0)/3, x0 + 2*(x1-x0)/3, x1} {
		for y := y0; y <= y1; y++ {
			setClipped(img, x, y, c)
		}
	}
	for _, y := range []int{y0, y0 + (y1-y0)/3, y0 + 2*(y1-y0)/3, y1} {
		for x := x0; x <= x1; x++ {
			setClipped(img, x, y, c)
		}
	}
}

// drawHandles fills a square at each of the eight handle positions.
func drawHandles(img *image.NRGBA, r geometry.Rect, size int, c color.NRGBA) {
	hs := size / 2
	cx := int(math.Round(r.X + r.Width/2))
	cy := int(math.Round(r.Y + r.Height/2))
	left, top := int(math.Round(r.X)), int(math.Round(r.Y))
	right, bottom := int(math.Round(r.Right())), int(math.Round(r.Bottom()))

	for _, p := range []image.Point{
		{left, top}, {cx, top}, {right, top}, {right, cy},
		{right, bottom}, {cx, bottom}, {left, bottom}, {left, cy},
	} {
		for y := p.Y - hs; y < p.Y+hs; y++ {
			for x := p.X - hs; x < p.X+hs; x++ {
				setClipped(img, x, y, c)
			}
		}
	}
}

func setClipped(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
