package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/image-crop-mcp/internal/geometry"
)

const (
	// OutputMimeType is the MIME type of every exported crop.
	OutputMimeType = "image/jpeg"
	// OutputExt is the extension appended to the caller's base name.
	OutputExt = ".jpg"
	// DefaultBaseName is used when the caller supplies no base name.
	DefaultBaseName = "cropped"

	// maxOutputPixels guards the surface allocation.
	maxOutputPixels = 1 << 28
)

var (
	// ErrEmptyCrop is returned when the selection covers no source pixels.
	ErrEmptyCrop = errors.New("crop covers no source pixels")
	// ErrSurfaceAllocation is returned when the output surface is too large
	// to allocate.
	ErrSurfaceAllocation = errors.New("output surface cannot be allocated")
	// ErrEmptyOutput is returned when the encoder produced no bytes.
	ErrEmptyOutput = errors.New("encoder produced no output")
)

// ExportOptions bound the output of Export.
type ExportOptions struct {
	// MaxOutputSize caps the longer side of the output, in pixels.
	MaxOutputSize int
	// Quality is the JPEG quality in 0..1.
	Quality float64
	// BaseName names the output file; its extension, if any, is replaced.
	BaseName string
	// Interpolator resamples when the output is smaller than the crop.
	// Nil selects Catmull-Rom.
	Interpolator xdraw.Interpolator
}

// OutputFile is the encoded payload tagged with a file name.
type OutputFile struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// CropResult is the artifact of one export. It is not modified after
// Export returns; the caller owns it.
type CropResult struct {
	// PreviewURI is a data: URI of the payload, usable as an image source.
	PreviewURI string `json:"preview_uri"`
	// File is the payload with its file name.
	File OutputFile `json:"file"`
	// Blob is the raw encoded payload.
	Blob []byte `json:"-"`

	Width  int `json:"width"`
	Height int `json:"height"`
	// SourceRect is the natural-space pixel rectangle that was exported.
	SourceRect image.Rectangle `json:"source_rect"`
}

// OutputSize returns the output dimensions for a cropW x cropH natural-space
// crop. Crops that fit inside maxSize are kept as-is; larger ones are scaled
// down by a single factor applied to both axes. It never upscales.
func OutputSize(cropW, cropH, maxSize int) (int, int) {
	if maxSize <= 0 || (cropW <= maxSize && cropH <= maxSize) {
		return cropW, cropH
	}
	f := math.Min(float64(maxSize)/float64(cropW), float64(maxSize)/float64(cropH))
	w := int(math.Round(float64(cropW) * f))
	h := int(math.Round(float64(cropH) * f))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Export rasterizes the container-space region of src laid out as geom and
// encodes it as JPEG.
//
// The region is mapped to natural space, snapped to the pixel grid and
// clipped to the source. A crop within MaxOutputSize is copied without
// resampling; a larger one is cropped and scaled in a single draw.
func Export(ctx context.Context, src image.Image, region geometry.Rect, geom geometry.Geometry, opts ExportOptions) (*CropResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapper, err := geometry.NewMapper(geom)
	if err != nil {
		return nil, err
	}
	sr := pixelRect(mapper.ToNatural(region), src.Bounds())
	if sr.Empty() {
		return nil, ErrEmptyCrop
	}

	outW, outH := OutputSize(sr.Dx(), sr.Dy(), opts.MaxOutputSize)
	if outW*outH > maxOutputPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceAllocation, outW, outH)
	}

	var out image.Image
	if outW == sr.Dx() && outH == sr.Dy() {
		out = imaging.Crop(src, sr)
	} else {
		dst := image.NewNRGBA(image.Rect(0, 0, outW, outH))
		interp := opts.Interpolator
		if interp == nil {
			interp = xdraw.CatmullRom
		}
		interp.Scale(dst, dst.Bounds(), src, sr, xdraw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(jpegQuality(opts.Quality))); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyOutput
	}

	blob := buf.Bytes()
	return &CropResult{
		PreviewURI: "data:" + OutputMimeType + ";base64," + base64.StdEncoding.EncodeToString(blob),
		File: OutputFile{
			Name:     OutputName(opts.BaseName),
			MimeType: OutputMimeType,
			Data:     blob,
		},
		Blob:       blob,
		Width:      outW,
		Height:     outH,
		SourceRect: sr,
	}, nil
}

// OutputName returns base with its extension replaced by OutputExt.
func OutputName(base string) string {
	base = strings.TrimSpace(filepath.Base(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = DefaultBaseName
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base + OutputExt
}

// jpegQuality maps 0..1 onto the encoder's 1..100 scale.
func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

// pixelRect snaps a natural-space rectangle to whole pixels, relative to the
// source bounds origin, and clips it to those bounds.
func pixelRect(r geometry.Rect, bounds image.Rectangle) image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.X + r.Width))
	y1 := int(math.Round(r.Y + r.Height))
	return image.Rect(x0, y0, x1, y1).Add(bounds.Min).Intersect(bounds)
}
