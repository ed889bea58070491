// Package interaction turns pointer gestures into crop region mutations.
//
// The Controller is a three-state machine (Idle, Dragging, Resizing). A
// pointer-down on the region body starts a drag and a pointer-down on a
// handle starts a resize. Moves update the region, and pointer-up ends the
// gesture. At most one gesture is live at a time.
package interaction

import (
	"github.com/ironsheep/image-crop-mcp/internal/geometry"
)

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "unknown"
}

// Kind is what a gesture does to the region.
type Kind int

const (
	KindMove Kind = iota
	KindResize
)

// Target is what a pointer-down landed on.
type Target struct {
	Kind   Kind
	Handle geometry.Handle // only set for KindResize
}

// Body targets the region body.
func Body() Target { return Target{Kind: KindMove} }

// OnHandle targets a resize handle.
func OnHandle(h geometry.Handle) Target { return Target{Kind: KindResize, Handle: h} }

// DragSession holds the state of one live gesture.
type DragSession struct {
	Kind          Kind
	Handle        geometry.Handle
	AnchorPointer geometry.Point
	AnchorRegion  geometry.Rect
}

// capture is the input scope of one gesture. It exists from pointer-down to
// pointer-up and tracks the pointer wherever it goes, including outside the
// region's bounds.
type capture struct {
	session DragSession
	last    geometry.Point
}

// Controller drives a Region from pointer events.
type Controller struct {
	region *geometry.Region
	cap    *capture
	closed bool
}

// NewController returns an idle controller bound to region.
func NewController(region *geometry.Region) *Controller {
	return &Controller{region: region}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	if c.cap == nil {
		return Idle
	}
	if c.cap.session.Kind == KindResize {
		return Resizing
	}
	return Dragging
}

// Session returns a copy of the live gesture, if any.
func (c *Controller) Session() (DragSession, bool) {
	if c.cap == nil {
		return DragSession{}, false
	}
	return c.cap.session, true
}

// PointerDown starts a gesture on target at p. It reports false and does
// nothing when a gesture is already live or the controller is closed.
func (c *Controller) PointerDown(p geometry.Point, target Target) bool {
	if c.closed || c.cap != nil {
		return false
	}
	if target.Kind == KindResize && target.Handle == geometry.HandleNone {
		return false
	}
	c.cap = &capture{
		session: DragSession{
			Kind:          target.Kind,
			Handle:        target.Handle,
			AnchorPointer: p,
			AnchorRegion:  c.region.Rect(),
		},
		last: p,
	}
	return true
}

// PointerMove updates the region for a pointer at p. It reports whether a
// gesture consumed the event.
//
// A drag always measures from the anchor pointer and re-applies the offset
// to the anchor region, so a clamped move never loses track of the pointer.
// A resize applies the delta since the previous move and re-anchors on
// every event, so truncation by a clamp does not compound.
func (c *Controller) PointerMove(p geometry.Point) bool {
	if c.closed || c.cap == nil {
		return false
	}
	s := c.cap.session
	switch s.Kind {
	case KindMove:
		d := p.Sub(s.AnchorPointer)
		c.region.Place(s.AnchorRegion)
		c.region.Move(d.X, d.Y)
	case KindResize:
		d := p.Sub(c.cap.last)
		c.region.Resize(s.Handle, d.X, d.Y)
	}
	c.cap.last = p
	return true
}

// PointerUp ends the live gesture. It reports whether one was live.
func (c *Controller) PointerUp() bool {
	if c.cap == nil {
		return false
	}
	c.cap = nil
	return true
}

// Close releases the input capture for good. Any live gesture is dropped
// and later events are ignored.
func (c *Controller) Close() {
	c.cap = nil
	c.closed = true
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }
