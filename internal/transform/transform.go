// Package transform tracks the zoom and rotation applied to the preview of
// the source image.
//
// These values only change how the image is presented. The crop region and
// the export always work on the untransformed layout box.
package transform

import "math"

const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ScaleStep    = 0.1
	RotationStep = 90
)

// State is a snapshot of the preview transform.
type State struct {
	Scale           float64 `json:"scale"`
	RotationDegrees int     `json:"rotation_degrees"`
}

// Controller owns the preview transform.
type Controller struct {
	state State
}

// NewController returns a controller at scale 1 and no rotation.
func NewController() *Controller {
	return &Controller{state: State{Scale: 1}}
}

// State returns the current transform.
func (c *Controller) State() State { return c.state }

// AdjustScale adds delta to the scale, clamped to [MinScale, MaxScale].
func (c *Controller) AdjustScale(delta float64) float64 {
	return c.SetScale(c.state.Scale + delta)
}

// SetScale sets the scale, clamped to [MinScale, MaxScale]. Values are
// rounded to 1e-9 so repeated steps do not drift.
func (c *Controller) SetScale(scale float64) float64 {
	if math.IsNaN(scale) {
		return c.state.Scale
	}
	scale = math.Max(MinScale, math.Min(MaxScale, scale))
	c.state.Scale = math.Round(scale*1e9) / 1e9
	return c.state.Scale
}

// ZoomIn steps the scale up by ScaleStep.
func (c *Controller) ZoomIn() float64 { return c.AdjustScale(ScaleStep) }

// ZoomOut steps the scale down by ScaleStep.
func (c *Controller) ZoomOut() float64 { return c.AdjustScale(-ScaleStep) }

// Rotate turns the preview a further 90 degrees clockwise.
func (c *Controller) Rotate() int {
	c.state.RotationDegrees = (c.state.RotationDegrees + RotationStep) % 360
	return c.state.RotationDegrees
}

// Reset restores scale 1 and no rotation.
func (c *Controller) Reset() {
	c.state = State{Scale: 1}
}
