package editor

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-crop-mcp/internal/geometry"
)

// Defaults for Options.
const (
	DefaultAspectRatio   = 1.0
	DefaultMaxOutputSize = 1200
	DefaultQuality       = 0.7
)

// Environment variables read by OptionsFromEnv.
const (
	EnvAspectRatio   = "IMAGE_CROP_ASPECT_RATIO"
	EnvMaxOutputSize = "IMAGE_CROP_MAX_OUTPUT_SIZE"
	EnvQuality       = "IMAGE_CROP_QUALITY"
	EnvCircular      = "IMAGE_CROP_CIRCULAR"
)

// Options configure an editing session.
type Options struct {
	// AspectRatio is width/height of the locked selection. Zero means
	// free-form cropping.
	AspectRatio float64 `json:"aspect_ratio"`
	// MaxOutputSize caps both output dimensions, in pixels.
	MaxOutputSize int `json:"max_output_size"`
	// Quality is the JPEG quality of the export, 0..1.
	Quality float64 `json:"quality"`
	// CircularPreview shows a round selection. Only honored at ratio 1.
	CircularPreview bool `json:"circular_preview"`
	// MinSize is the smallest selection side, in display pixels.
	MinSize float64 `json:"min_size"`
	// Verbose logs lifecycle transitions.
	Verbose bool `json:"-"`
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		AspectRatio:   DefaultAspectRatio,
		MaxOutputSize: DefaultMaxOutputSize,
		Quality:       DefaultQuality,
		MinSize:       geometry.MinSize,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if !finite(o.AspectRatio) {
		return fmt.Errorf("aspect ratio must be finite, got %g", o.AspectRatio)
	}
	if o.AspectRatio < 0 {
		return fmt.Errorf("aspect ratio must not be negative, got %g", o.AspectRatio)
	}
	if o.MaxOutputSize <= 0 {
		return fmt.Errorf("max output size must be positive, got %d", o.MaxOutputSize)
	}
	if !finite(o.Quality) || o.Quality < 0 || o.Quality > 1 {
		return fmt.Errorf("quality must be within 0..1, got %g", o.Quality)
	}
	if !finite(o.MinSize) || o.MinSize < 0 {
		return fmt.Errorf("min size must be finite and not negative, got %g", o.MinSize)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Circular reports whether the round preview is in effect.
func (o Options) Circular() bool {
	return o.CircularPreview && o.AspectRatio == 1
}

// Constraints returns the region constraints for these options, locked
// whenever a ratio is set.
func (o Options) Constraints() geometry.Constraints {
	return geometry.Constraints{
		AspectRatio:  o.AspectRatio,
		AspectLocked: o.AspectRatio > 0,
		MinSize:      o.MinSize,
	}
}

// OptionsFromEnv returns DefaultOptions overridden by the IMAGE_CROP_*
// environment variables. Unparseable values are logged and skipped.
// Non-finite floats parse and are left for Validate to reject.
func OptionsFromEnv() Options {
	o := DefaultOptions()
	if v, ok := envFloat(EnvAspectRatio); ok {
		o.AspectRatio = v
	}
	if s := strings.TrimSpace(os.Getenv(EnvMaxOutputSize)); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		switch {
		case err != nil:
			log.Printf("Ignoring %s=%q: %v", EnvMaxOutputSize, s, err)
		case n <= 0:
			log.Printf("Ignoring %s=%q: must be positive", EnvMaxOutputSize, s)
		default:
			o.MaxOutputSize = int(n)
		}
	}
	if v, ok := envFloat(EnvQuality); ok {
		o.Quality = v
	}
	if s := os.Getenv(EnvCircular); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			log.Printf("Ignoring %s=%q: %v", EnvCircular, s, err)
		} else {
			o.CircularPreview = b
		}
	}
	return o
}

func envFloat(name string) (float64, bool) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", name, s, err)
		return 0, false
	}
	return v, true
}
