package imaging

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// ratioBase scales a float aspect ratio to the integer width/height pair the
// analyzer expects.
const ratioBase = 1000

// Suggest finds the most interesting region of src at the given aspect
// ratio (width/height). A ratio of zero uses the image's own ratio. The
// returned rectangle is in src's natural pixel space.
func Suggest(ctx context.Context, src image.Image, ratio float64) (image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, err
	}
	b := src.Bounds()
	if b.Empty() {
		return image.Rectangle{}, ErrEmptyCrop
	}
	if ratio <= 0 {
		ratio = float64(b.Dx()) / float64(b.Dy())
	}
	w := int(math.Round(ratio * ratioBase))
	h := ratioBase

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		analyzer := smartcrop.NewAnalyzer(&resizer{filter: imaging.Lanczos})
		crop, err := analyzer.FindBestCrop(src, w, h)
		resultChan <- cropResult{crop: crop, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Rectangle{}, ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			return image.Rectangle{}, fmt.Errorf("finding best crop: %w", res.err)
		}
		return res.crop.Sub(b.Min), nil
	}
}

// resizer adapts imaging.Resize to the analyzer's resize hook.
type resizer struct {
	filter imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.filter)
}
