// Package editor runs one interactive crop session from source decode to a
// single outcome.
//
// A Session moves through Idle, Loading, Ready and Saving, and ends in
// exactly one of Resolved (a CropResult) or Rejected (a LoadError,
// ExportError or ErrUserCancelled). Pointer, zoom, rotate and aspect-lock
// events are accepted only while Ready.
//
// All methods are safe for concurrent use. Cancel during Saving is refused
// with ErrSaveInProgress; the export's outcome wins.
package editor

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ironsheep/image-crop-mcp/internal/geometry"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/interaction"
	"github.com/ironsheep/image-crop-mcp/internal/transform"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSaving
	StateResolved
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	case StateResolved:
		return "resolved"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Terminal reports whether s is Resolved or Rejected.
func (s State) Terminal() bool {
	return s == StateResolved || s == StateRejected
}

// Container is the size of the box the image is laid out in.
type Container struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	State         string               `json:"state"`
	Geometry      *geometry.Geometry   `json:"geometry,omitempty"`
	Region        *geometry.Rect       `json:"region,omitempty"`
	NaturalRegion *geometry.Rect       `json:"natural_region,omitempty"`
	Transform     *transform.State     `json:"transform,omitempty"`
	Constraints   geometry.Constraints `json:"constraints"`
	Circular      bool                 `json:"circular"`
	Gesture       string               `json:"gesture"`
	Handle        string               `json:"handle,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// Session is one editing lifecycle.
type Session struct {
	mu    sync.Mutex
	opts  Options
	state State

	img       image.Image
	container Container
	geom      geometry.Geometry
	region    *geometry.Region
	input     *interaction.Controller
	view      *transform.Controller

	result *imaging.CropResult
	err    error
	done   chan struct{}

	logf func(format string, v ...interface{})
}

// New returns an idle session.
func New(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.MinSize == 0 {
		opts.MinSize = geometry.MinSize
	}
	s := &Session{
		opts: opts,
		done: make(chan struct{}),
		logf: func(string, ...interface{}) {},
	}
	if opts.Verbose {
		s.logf = log.Printf
	}
	if opts.CircularPreview && !opts.Circular() {
		log.Printf("Circular preview needs aspect ratio 1, got %g; ignoring", opts.AspectRatio)
	}
	return s, nil
}

// Options returns the session configuration.
func (s *Session) Options() Options { return s.opts }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load decodes src and lays it out in container, moving Idle → Loading →
// Ready. A decode failure rejects the session with a *LoadError. If the
// session is cancelled while decoding, the decoded image is discarded and
// ErrUserCancelled is returned.
func (s *Session) Load(ctx context.Context, src imaging.Source, container Container) error {
	if container.Width <= 0 || container.Height <= 0 {
		return fmt.Errorf("invalid container size %gx%g", container.Width, container.Height)
	}

	s.mu.Lock()
	if s.state != StateIdle {
		defer s.mu.Unlock()
		return s.stateErrLocked()
	}
	s.state = StateLoading
	s.mu.Unlock()

	img, err := src.Decode(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return ErrUserCancelled
	}
	if err != nil {
		lerr := &LoadError{Err: err}
		s.rejectLocked(lerr)
		return lerr
	}

	b := img.Bounds()
	geom, err := geometry.Fit(b.Dx(), b.Dy(), container.Width, container.Height)
	if err != nil {
		lerr := &LoadError{Err: err}
		s.rejectLocked(lerr)
		return lerr
	}

	s.img = img
	s.container = container
	s.geom = geom
	s.region = geometry.NewRegion(geom, s.opts.Constraints())
	s.input = interaction.NewController(s.region)
	s.view = transform.NewController()
	s.state = StateReady
	s.logf("Loaded %dx%d image, display %gx%g at (%g,%g)", b.Dx(), b.Dy(), geom.DisplayWidth, geom.DisplayHeight, geom.OffsetX, geom.OffsetY)
	return nil
}

// Relayout lays the image out in a new container. The geometry is derived
// again and the selection is re-initialized; a live gesture is dropped.
func (s *Session) Relayout(container Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return s.stateErrLocked()
	}
	b := s.img.Bounds()
	geom, err := geometry.Fit(b.Dx(), b.Dy(), container.Width, container.Height)
	if err != nil {
		return err
	}
	s.container = container
	s.geom = geom
	s.input.PointerUp()
	s.region.Initialize(geom)
	return nil
}

// PointerDown starts a gesture at p. With a nil target the point is hit
// tested against the selection. It reports whether a gesture started.
func (s *Session) PointerDown(p geometry.Point, target *interaction.Target) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return false, s.stateErrLocked()
	}
	t := interaction.Target{}
	if target != nil {
		t = *target
	} else {
		hit, ok := interaction.HitTest(s.region.Rect(), p, interaction.DefaultHandleSize)
		if !ok {
			return false, nil
		}
		t = hit
	}
	return s.input.PointerDown(p, t), nil
}

// PointerMove feeds a pointer position to the live gesture.
func (s *Session) PointerMove(p geometry.Point) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return false, s.stateErrLocked()
	}
	return s.input.PointerMove(p), nil
}

// PointerUp ends the live gesture.
func (s *Session) PointerUp() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return false, s.stateErrLocked()
	}
	return s.input.PointerUp(), nil
}

// Zoom adjusts the preview scale by delta.
func (s *Session) Zoom(delta float64) (transform.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return transform.State{}, s.stateErrLocked()
	}
	s.view.AdjustScale(delta)
	return s.view.State(), nil
}

// SetZoom sets the preview scale.
func (s *Session) SetZoom(scale float64) (transform.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return transform.State{}, s.stateErrLocked()
	}
	s.view.SetScale(scale)
	return s.view.State(), nil
}

// Rotate turns the preview 90 degrees clockwise.
func (s *Session) Rotate() (transform.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return transform.State{}, s.stateErrLocked()
	}
	s.view.Rotate()
	return s.view.State(), nil
}

// SetAspectLock locks or unlocks the configured ratio. Locking resets the
// selection; a live gesture is dropped either way.
func (s *Session) SetAspectLock(locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return s.stateErrLocked()
	}
	s.input.PointerUp()
	s.region.SetAspectLock(locked)
	return nil
}

// Suggest places the selection on the most interesting part of the image
// at the locked ratio, or at the image ratio when free-form.
func (s *Session) Suggest(ctx context.Context) (geometry.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return geometry.Rect{}, s.stateErrLocked()
	}

	ratio := 0.0
	if c := s.region.Constraints(); c.AspectLocked {
		ratio = c.AspectRatio
	}
	crop, err := imaging.Suggest(ctx, s.img, ratio)
	if err != nil {
		return geometry.Rect{}, err
	}
	mapper, err := geometry.NewMapper(s.geom)
	if err != nil {
		return geometry.Rect{}, err
	}

	s.input.PointerUp()
	s.region.Place(mapper.ToDisplay(geometry.Rect{
		X:      float64(crop.Min.X),
		Y:      float64(crop.Min.Y),
		Width:  float64(crop.Dx()),
		Height: float64(crop.Dy()),
	}))
	return s.region.Rect(), nil
}

// RenderOverlay draws the editor surface with the current selection.
func (s *Session) RenderOverlay(opts imaging.OverlayOptions) (*imaging.OverlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, s.stateErrLocked()
	}
	opts.Circular = s.opts.Circular()
	if opts.ContainerWidth <= 0 {
		opts.ContainerWidth = int(s.container.Width)
	}
	if opts.ContainerHeight <= 0 {
		opts.ContainerHeight = int(s.container.Height)
	}
	return imaging.EncodeOverlay(s.img, s.geom, s.region.Rect(), opts)
}

// RenderView draws the image with the preview zoom and rotation applied.
// A circular session masks the view to its inscribed circle.
func (s *Session) RenderView() (*imaging.OverlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, s.stateErrLocked()
	}
	st := s.view.State()
	view := imaging.RenderView(s.img, s.geom, st.Scale, st.RotationDegrees)
	if s.opts.Circular() {
		view = imaging.CircularMask(view)
	}
	return imaging.EncodePNG(view)
}

// Save exports the selection, moving Ready → Saving → Resolved. A failed
// export rejects the session with an *ExportError. The preview zoom and
// rotation are not applied to the export.
func (s *Session) Save(ctx context.Context, baseName string) (*imaging.CropResult, error) {
	s.mu.Lock()
	if s.state != StateReady {
		defer s.mu.Unlock()
		return nil, s.stateErrLocked()
	}
	s.state = StateSaving
	s.input.Close()
	img, geom, region := s.img, s.geom, s.region.Rect()
	opts := imaging.ExportOptions{
		MaxOutputSize: s.opts.MaxOutputSize,
		Quality:       s.opts.Quality,
		BaseName:      baseName,
	}
	s.mu.Unlock()

	res, err := imaging.Export(ctx, img, region, geom, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		eerr := &ExportError{Err: err}
		s.rejectLocked(eerr)
		return nil, eerr
	}
	s.resolveLocked(res)
	return res, nil
}

// Cancel dismisses the editor. Before Saving it rejects the session with
// ErrUserCancelled; during Saving it returns ErrSaveInProgress; after the
// session has resolved it returns ErrSessionClosed.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateIdle, StateLoading, StateReady:
		s.rejectLocked(ErrUserCancelled)
		return nil
	case StateSaving:
		return ErrSaveInProgress
	default:
		return ErrSessionClosed
	}
}

// Done is closed when the session reaches its terminal state.
func (s *Session) Done() <-chan struct{} { return s.done }

// Outcome returns the terminal result, or ErrNotReady while the session is
// still running.
func (s *Session) Outcome() (*imaging.CropResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Terminal() {
		return nil, ErrNotReady
	}
	return s.result, s.err
}

// Wait blocks until the session resolves or ctx is done.
func (s *Session) Wait(ctx context.Context) (*imaging.CropResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
	}
	return s.Outcome()
}

// Snapshot returns the observable state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:       s.state.String(),
		Constraints: s.opts.Constraints(),
		Circular:    s.opts.Circular(),
		Gesture:     interaction.Idle.String(),
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	if s.region == nil || s.state.Terminal() {
		return snap
	}

	geom := s.geom
	rect := s.region.Rect()
	ts := s.view.State()
	snap.Geometry = &geom
	snap.Region = &rect
	snap.Transform = &ts
	snap.Constraints = s.region.Constraints()
	if m, err := geometry.NewMapper(geom); err == nil {
		nat := m.ToNatural(rect)
		snap.NaturalRegion = &nat
	}
	snap.Gesture = s.input.State().String()
	if ds, ok := s.input.Session(); ok && ds.Kind == interaction.KindResize {
		snap.Handle = ds.Handle.String()
	}
	return snap
}

func (s *Session) resolveLocked(res *imaging.CropResult) {
	s.result = res
	s.state = StateResolved
	s.teardownLocked()
	s.logf("Session resolved: %s %dx%d (%d bytes)", res.File.Name, res.Width, res.Height, len(res.Blob))
}

func (s *Session) rejectLocked(err error) {
	s.err = err
	s.state = StateRejected
	s.teardownLocked()
	if IsCancelled(err) {
		s.logf("Session cancelled")
	} else {
		log.Printf("Session rejected: %v", err)
	}
}

// teardownLocked releases the editing surface and signals Done.
func (s *Session) teardownLocked() {
	if s.input != nil {
		s.input.Close()
	}
	s.img = nil
	close(s.done)
}

func (s *Session) stateErrLocked() error {
	if s.state.Terminal() {
		return ErrSessionClosed
	}
	return fmt.Errorf("%w (state %s)", ErrNotReady, s.state)
}
