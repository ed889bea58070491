package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/image-crop-mcp/internal/editor"
	"github.com/ironsheep/image-crop-mcp/internal/geometry"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/interaction"
)

// Default container size for crop_open.
const (
	DefaultContainerWidth  = 800.0
	DefaultContainerHeight = 600.0
)

// errNoSession is returned by tools that need an open session.
var errNoSession = errors.New("no crop session open, call crop_open first")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "crop_open", "crop_pointer").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Looks up the open crop session as needed
//  4. Calls the appropriate editor.Session method
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session Lifecycle
	case "crop_open":
		return s.handleCropOpen(args)
	case "crop_state":
		return s.handleCropState(args)
	case "crop_save":
		return s.handleCropSave(args)
	case "crop_cancel":
		return s.handleCropCancel(args)

	// Selection Editing
	case "crop_pointer":
		return s.handleCropPointer(args)
	case "crop_aspect_lock":
		return s.handleCropAspectLock(args)
	case "crop_relayout":
		return s.handleCropRelayout(args)
	case "crop_suggest":
		return s.handleCropSuggest(args)

	// Preview
	case "crop_zoom":
		return s.handleCropZoom(args)
	case "crop_rotate":
		return s.handleCropRotate(args)
	case "crop_preview":
		return s.handleCropPreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating absent arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Session Handling ===

// currentSession returns the open session, resolved or not.
func (s *Server) currentSession() (*editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errNoSession
	}
	return s.session, nil
}

// replaceSession installs next, opened on path, and cancels the session it
// replaces. The old image leaves the cache unless next reuses its path.
func (s *Server) replaceSession(next *editor.Session, path string) {
	s.mu.Lock()
	prev, prevPath := s.session, s.path
	s.session, s.path = next, path
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Cancel()
	}
	if prevPath != "" && prevPath != path {
		s.cache.Evict(prevPath)
	}
}

func (s *Server) closeSession() {
	s.replaceSession(nil, "")
}

// releaseImage drops the cached image of sess once it has resolved or
// rejected. The session itself stays current for crop_state.
func (s *Server) releaseImage(sess *editor.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == sess && s.path != "" {
		s.cache.Evict(s.path)
	}
}

// === Session Lifecycle Handlers ===

type cropOpenArgs struct {
	Path            string   `json:"path"`
	ContainerWidth  float64  `json:"container_width"`
	ContainerHeight float64  `json:"container_height"`
	AspectRatio     *float64 `json:"aspect_ratio"`
	MaxOutputSize   *int     `json:"max_output_size"`
	Quality         *float64 `json:"quality"`
	CircularPreview *bool    `json:"circular_preview"`
}

func (s *Server) handleCropOpen(args json.RawMessage) (interface{}, error) {
	var a cropOpenArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if a.ContainerWidth == 0 {
		a.ContainerWidth = DefaultContainerWidth
	}
	if a.ContainerHeight == 0 {
		a.ContainerHeight = DefaultContainerHeight
	}

	opts := s.opts
	if a.AspectRatio != nil {
		opts.AspectRatio = *a.AspectRatio
	}
	if a.MaxOutputSize != nil {
		opts.MaxOutputSize = *a.MaxOutputSize
	}
	if a.Quality != nil {
		opts.Quality = *a.Quality
	}
	if a.CircularPreview != nil {
		opts.CircularPreview = *a.CircularPreview
	}

	sess, err := editor.New(opts)
	if err != nil {
		return nil, err
	}
	s.replaceSession(sess, a.Path)

	src := imaging.FileSource{Cache: s.cache, Path: a.Path}
	container := editor.Container{Width: a.ContainerWidth, Height: a.ContainerHeight}
	if err := sess.Load(context.Background(), src, container); err != nil {
		s.releaseImage(sess)
		return nil, err
	}
	return sess.Snapshot(), nil
}

func (s *Server) handleCropState(_ json.RawMessage) (interface{}, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

type cropSaveArgs struct {
	BaseName  string `json:"base_name"`
	OutputDir string `json:"output_dir"`
}

// cropSaveResult summarizes an export. SourceRect is in natural pixels.
type cropSaveResult struct {
	Name       string          `json:"name"`
	MimeType   string          `json:"mime_type"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	SizeBytes  int             `json:"size_bytes"`
	SourceRect image.Rectangle `json:"source_rect"`
	Path       string          `json:"path,omitempty"`
	DataBase64 string          `json:"data_base64"`
}

func (s *Server) handleCropSave(args json.RawMessage) (interface{}, error) {
	var a cropSaveArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}

	res, err := sess.Save(context.Background(), a.BaseName)
	if sess.State().Terminal() {
		s.releaseImage(sess)
	}
	if err != nil {
		return nil, err
	}

	out := &cropSaveResult{
		Name:       res.File.Name,
		MimeType:   res.File.MimeType,
		Width:      res.Width,
		Height:     res.Height,
		SizeBytes:  len(res.Blob),
		SourceRect: res.SourceRect,
		DataBase64: base64.StdEncoding.EncodeToString(res.Blob),
	}
	if a.OutputDir != "" {
		path := filepath.Join(a.OutputDir, res.File.Name)
		if err := os.WriteFile(path, res.File.Data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		out.Path = path
	}
	return out, nil
}

type cropCancelResult struct {
	Outcome string `json:"outcome"`
}

func (s *Server) handleCropCancel(_ json.RawMessage) (interface{}, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	if err := sess.Cancel(); err != nil {
		return nil, err
	}
	s.releaseImage(sess)
	return &cropCancelResult{Outcome: "cancelled"}, nil
}

// === Selection Editing Handlers ===

type cropPointerArgs struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Handle string  `json:"handle"`
}

type cropPointerResult struct {
	// Handled reports whether the event changed the gesture or selection.
	Handled bool            `json:"handled"`
	Session editor.Snapshot `json:"session"`
}

func (s *Server) handleCropPointer(args json.RawMessage) (interface{}, error) {
	var a cropPointerArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}

	p := geometry.Point{X: a.X, Y: a.Y}
	var handled bool
	switch a.Action {
	case "down":
		target, err := parseTarget(a.Handle)
		if err != nil {
			return nil, err
		}
		handled, err = sess.PointerDown(p, target)
		if err != nil {
			return nil, err
		}
	case "move":
		if handled, err = sess.PointerMove(p); err != nil {
			return nil, err
		}
	case "up":
		if handled, err = sess.PointerUp(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid action %q: must be down, move or up", a.Action)
	}
	return &cropPointerResult{Handled: handled, Session: sess.Snapshot()}, nil
}

// parseTarget maps a handle argument to a gesture target. An empty name
// returns nil so the session hit tests the pointer.
func parseTarget(name string) (*interaction.Target, error) {
	switch name {
	case "":
		return nil, nil
	case "body":
		t := interaction.Body()
		return &t, nil
	}
	h, err := geometry.ParseHandle(name)
	if err != nil {
		return nil, err
	}
	t := interaction.OnHandle(h)
	return &t, nil
}

type cropAspectLockArgs struct {
	Locked *bool `json:"locked"`
}

func (s *Server) handleCropAspectLock(args json.RawMessage) (interface{}, error) {
	var a cropAspectLockArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Locked == nil {
		return nil, errors.New("locked is required")
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	if err := sess.SetAspectLock(*a.Locked); err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

type cropRelayoutArgs struct {
	ContainerWidth  float64 `json:"container_width"`
	ContainerHeight float64 `json:"container_height"`
}

func (s *Server) handleCropRelayout(args json.RawMessage) (interface{}, error) {
	var a cropRelayoutArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	if err := sess.Relayout(editor.Container{Width: a.ContainerWidth, Height: a.ContainerHeight}); err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

func (s *Server) handleCropSuggest(_ json.RawMessage) (interface{}, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	if _, err := sess.Suggest(context.Background()); err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// === Preview Handlers ===

type cropZoomArgs struct {
	Delta *float64 `json:"delta"`
	Value *float64 `json:"value"`
}

func (s *Server) handleCropZoom(args json.RawMessage) (interface{}, error) {
	var a cropZoomArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	switch {
	case a.Value != nil:
		return sess.SetZoom(*a.Value)
	case a.Delta != nil:
		return sess.Zoom(*a.Delta)
	default:
		return nil, errors.New("delta or value is required")
	}
}

func (s *Server) handleCropRotate(_ json.RawMessage) (interface{}, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	return sess.Rotate()
}

type cropPreviewArgs struct {
	View         string  `json:"view"`
	ShadeColor   string  `json:"shade_color"`
	ShadeOpacity float64 `json:"shade_opacity"`
	GuideColor   string  `json:"guide_color"`
	HideHandles  bool    `json:"hide_handles"`
}

func (s *Server) handleCropPreview(args json.RawMessage) (interface{}, error) {
	var a cropPreviewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}
	switch a.View {
	case "", "overlay":
		return sess.RenderOverlay(imaging.OverlayOptions{
			ShadeColor:   a.ShadeColor,
			ShadeOpacity: a.ShadeOpacity,
			GuideColor:   a.GuideColor,
			HideHandles:  a.HideHandles,
		})
	case "transform":
		return sess.RenderView()
	default:
		return nil, fmt.Errorf("invalid view %q: must be overlay or transform", a.View)
	}
}
