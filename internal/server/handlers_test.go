package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-crop-mcp/internal/editor"
	"github.com/ironsheep/image-crop-mcp/internal/geometry"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/transform"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful tool response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v (%v)", resp.Error.Message, resp.Error.Data)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("Result content malformed: %v", result["content"])
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content text should be a string")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
}

// openSession opens an 800x600 image in an 800x600 container, which lays
// out at scale 1 with a 540x540 selection at (130,30).
func openSession(t *testing.T, s *Server) {
	t.Helper()

	imgPath := createTestImageFile(t, 800, 600, color.RGBA{200, 100, 50, 255})
	t.Cleanup(func() { os.Remove(imgPath) })

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_open", map[string]interface{}{
		"path":             imgPath,
		"container_width":  800,
		"container_height": 600,
	}), &snap)
	if snap.State != "ready" {
		t.Fatalf("State after crop_open: got %s, want ready", snap.State)
	}
}

func assertRegion(t *testing.T, snap editor.Snapshot, want geometry.Rect) {
	t.Helper()

	if snap.Region == nil {
		t.Fatal("Snapshot has no region")
	}
	if *snap.Region != want {
		t.Errorf("Region: got %+v, want %+v", *snap.Region, want)
	}
}

func TestHandleToolsCall_CropOpen(t *testing.T) {
	s := New(editor.DefaultOptions())
	imgPath := createTestImageFile(t, 1600, 1200, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_open", map[string]interface{}{"path": imgPath}), &snap)

	if snap.State != "ready" {
		t.Errorf("State: got %s, want ready", snap.State)
	}
	if snap.Geometry == nil || snap.Geometry.DisplayWidth != 800 || snap.Geometry.DisplayHeight != 600 {
		t.Errorf("Geometry: got %+v, want 800x600 display", snap.Geometry)
	}
	assertRegion(t, snap, geometry.Rect{X: 130, Y: 30, Width: 540, Height: 540})
	if snap.NaturalRegion == nil || *snap.NaturalRegion != (geometry.Rect{X: 260, Y: 60, Width: 1080, Height: 1080}) {
		t.Errorf("NaturalRegion: got %+v", snap.NaturalRegion)
	}
	if !snap.Constraints.AspectLocked || snap.Constraints.AspectRatio != 1 {
		t.Errorf("Constraints: got %+v", snap.Constraints)
	}
	if snap.Gesture != "idle" {
		t.Errorf("Gesture: got %s, want idle", snap.Gesture)
	}
}

func TestHandleToolsCall_CropOpen_Overrides(t *testing.T) {
	s := New(editor.DefaultOptions())
	imgPath := createTestImageFile(t, 400, 400, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_open", map[string]interface{}{
		"path":             imgPath,
		"container_width":  400,
		"container_height": 400,
		"aspect_ratio":     0,
		"circular_preview": true,
	}), &snap)

	if snap.Constraints.AspectLocked {
		t.Error("aspect_ratio 0 should open a free-form session")
	}
	if snap.Circular {
		t.Error("circular preview needs ratio 1")
	}
	assertRegion(t, snap, geometry.Rect{X: 20, Y: 20, Width: 360, Height: 360})
}

func TestHandleToolsCall_CropOpen_Errors(t *testing.T) {
	s := New(editor.DefaultOptions())

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing path", map[string]interface{}{}},
		{"nonexistent file", map[string]interface{}{"path": "/nonexistent/image.png"}},
		{"invalid quality", map[string]interface{}{"path": "/nonexistent/image.png", "quality": 2}},
		{"invalid container", map[string]interface{}{"path": "/nonexistent/image.png", "container_width": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "crop_open", tt.args)
			if resp.Error == nil {
				t.Fatal("Expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_LoadFailureRejectsSession(t *testing.T) {
	s := New(editor.DefaultOptions())

	resp := callTool(t, s, "crop_open", map[string]interface{}{"path": "/nonexistent/image.png"})
	if resp.Error == nil {
		t.Fatal("Expected error for nonexistent file")
	}

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_state", nil), &snap)
	if snap.State != "rejected" {
		t.Errorf("State: got %s, want rejected", snap.State)
	}
	if !strings.Contains(snap.Error, "load failed") {
		t.Errorf("Error: got %q, want a load failure", snap.Error)
	}
}

func TestHandleToolsCall_CropOpenReplacesSession(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)
	first := s.session

	openSession(t, s)

	if s.session == first {
		t.Fatal("crop_open should install a new session")
	}
	if first.State() != editor.StateRejected {
		t.Errorf("Previous session state: got %s, want rejected", first.State())
	}
	if _, err := first.Outcome(); !editor.IsCancelled(err) {
		t.Errorf("Previous session outcome: got %v, want cancellation", err)
	}
}

func TestHandleToolsCall_SessionReleasesCachedImage(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)
	if s.cache.Len() != 1 {
		t.Fatalf("cache after crop_open: got %d, want 1", s.cache.Len())
	}

	openSession(t, s)
	if s.cache.Len() != 1 {
		t.Errorf("cache after reopening on a new file: got %d, want 1", s.cache.Len())
	}

	callTool(t, s, "crop_cancel", nil)
	if s.cache.Len() != 0 {
		t.Errorf("cache after crop_cancel: got %d, want 0", s.cache.Len())
	}

	openSession(t, s)
	decodeResult(t, callTool(t, s, "crop_save", nil), &cropSaveResult{})
	if s.cache.Len() != 0 {
		t.Errorf("cache after crop_save: got %d, want 0", s.cache.Len())
	}

	openSession(t, s)
	s.closeSession()
	if s.cache.Len() != 0 {
		t.Errorf("cache after close: got %d, want 0", s.cache.Len())
	}
}

func TestHandleToolsCall_NoSession(t *testing.T) {
	s := New(editor.DefaultOptions())

	for _, name := range []string{
		"crop_state", "crop_save", "crop_cancel", "crop_pointer", "crop_aspect_lock",
		"crop_relayout", "crop_suggest", "crop_zoom", "crop_rotate", "crop_preview",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.executeTool(name, json.RawMessage(`{"action":"up","locked":true,"delta":0.1}`))
			if err != errNoSession {
				t.Errorf("got %v, want errNoSession", err)
			}
		})
	}
}

func TestHandleToolsCall_PointerDrag(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var res cropPointerResult
	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "down", "x": 400, "y": 300}), &res)
	if !res.Handled || res.Session.Gesture != "dragging" {
		t.Fatalf("down on body: got handled=%v gesture=%s", res.Handled, res.Session.Gesture)
	}

	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "move", "x": 450, "y": 250}), &res)
	assertRegion(t, res.Session, geometry.Rect{X: 180, Y: 0, Width: 540, Height: 540})

	// Dragging far past the edge clamps to the image.
	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "move", "x": 1400, "y": 300}), &res)
	assertRegion(t, res.Session, geometry.Rect{X: 260, Y: 30, Width: 540, Height: 540})

	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "up"}), &res)
	if !res.Handled || res.Session.Gesture != "idle" {
		t.Errorf("up: got handled=%v gesture=%s", res.Handled, res.Session.Gesture)
	}

	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "move", "x": 0, "y": 0}), &res)
	if res.Handled {
		t.Error("move without a gesture should be ignored")
	}
}

func TestHandleToolsCall_PointerResize(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var res cropPointerResult
	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{
		"action": "down", "x": 670, "y": 570, "handle": "se",
	}), &res)
	if !res.Handled || res.Session.Gesture != "resizing" || res.Session.Handle != "se" {
		t.Fatalf("down on se: got handled=%v gesture=%s handle=%s", res.Handled, res.Session.Gesture, res.Session.Handle)
	}

	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "move", "x": 620, "y": 520}), &res)
	assertRegion(t, res.Session, geometry.Rect{X: 130, Y: 30, Width: 490, Height: 490})
}

func TestHandleToolsCall_PointerHitTest(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var res cropPointerResult
	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "down", "x": 130, "y": 30}), &res)
	if res.Session.Gesture != "resizing" || res.Session.Handle != "nw" {
		t.Errorf("down on corner: got gesture=%s handle=%s", res.Session.Gesture, res.Session.Handle)
	}
	callTool(t, s, "crop_pointer", map[string]interface{}{"action": "up"})

	decodeResult(t, callTool(t, s, "crop_pointer", map[string]interface{}{"action": "down", "x": 20, "y": 20}), &res)
	if res.Handled || res.Session.Gesture != "idle" {
		t.Errorf("down outside selection: got handled=%v gesture=%s", res.Handled, res.Session.Gesture)
	}
}

func TestHandleToolsCall_PointerErrors(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	for _, args := range []map[string]interface{}{
		{"action": "click"},
		{},
		{"action": "down", "handle": "middle"},
	} {
		if resp := callTool(t, s, "crop_pointer", args); resp.Error == nil {
			t.Errorf("crop_pointer(%v) should fail", args)
		}
	}
}

func TestHandleToolsCall_ZoomAndRotate(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var st transform.State
	decodeResult(t, callTool(t, s, "crop_zoom", map[string]interface{}{"value": 2}), &st)
	if st.Scale != 2 {
		t.Errorf("Scale after value 2: got %g", st.Scale)
	}

	decodeResult(t, callTool(t, s, "crop_zoom", map[string]interface{}{"delta": 5}), &st)
	if st.Scale != transform.MaxScale {
		t.Errorf("Scale should clamp to %g, got %g", transform.MaxScale, st.Scale)
	}

	decodeResult(t, callTool(t, s, "crop_rotate", nil), &st)
	if st.RotationDegrees != 90 {
		t.Errorf("Rotation: got %d, want 90", st.RotationDegrees)
	}

	if resp := callTool(t, s, "crop_zoom", map[string]interface{}{}); resp.Error == nil {
		t.Error("crop_zoom without delta or value should fail")
	}

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_state", nil), &snap)
	assertRegion(t, snap, geometry.Rect{X: 130, Y: 30, Width: 540, Height: 540})
}

func TestHandleToolsCall_AspectLock(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_aspect_lock", map[string]interface{}{"locked": false}), &snap)
	if snap.Constraints.AspectLocked {
		t.Error("aspect lock should be off")
	}

	decodeResult(t, callTool(t, s, "crop_aspect_lock", map[string]interface{}{"locked": true}), &snap)
	if !snap.Constraints.AspectLocked {
		t.Error("aspect lock should be on")
	}
	assertRegion(t, snap, geometry.Rect{X: 130, Y: 30, Width: 540, Height: 540})

	if resp := callTool(t, s, "crop_aspect_lock", map[string]interface{}{}); resp.Error == nil {
		t.Error("crop_aspect_lock without locked should fail")
	}
}

func TestHandleToolsCall_Relayout(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_relayout", map[string]interface{}{
		"container_width":  400,
		"container_height": 300,
	}), &snap)
	assertRegion(t, snap, geometry.Rect{X: 65, Y: 15, Width: 270, Height: 270})

	if resp := callTool(t, s, "crop_relayout", map[string]interface{}{"container_width": 0}); resp.Error == nil {
		t.Error("crop_relayout with an empty container should fail")
	}
}

func TestHandleToolsCall_Suggest(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_suggest", nil), &snap)
	if snap.Region == nil {
		t.Fatal("Snapshot has no region")
	}
	r := *snap.Region
	if r.X < 0 || r.Y < 0 || r.Right() > 800 || r.Bottom() > 600 {
		t.Errorf("suggested region %+v outside the image", r)
	}
	if d := r.Width - r.Height; d > 1 || d < -1 {
		t.Errorf("suggested region %+v should keep the 1:1 lock", r)
	}
}

func TestHandleToolsCall_Preview(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var res imaging.OverlayResult
	decodeResult(t, callTool(t, s, "crop_preview", nil), &res)
	if res.Width != 800 || res.Height != 600 || res.MimeType != "image/png" {
		t.Errorf("overlay: got %dx%d %s", res.Width, res.Height, res.MimeType)
	}
	if res.ImageBase64 == "" {
		t.Error("overlay image is empty")
	}

	callTool(t, s, "crop_zoom", map[string]interface{}{"value": 0.5})
	decodeResult(t, callTool(t, s, "crop_preview", map[string]interface{}{"view": "transform"}), &res)
	if res.Width != 400 || res.Height != 300 {
		t.Errorf("transform view: got %dx%d, want 400x300", res.Width, res.Height)
	}

	if resp := callTool(t, s, "crop_preview", map[string]interface{}{"view": "sideways"}); resp.Error == nil {
		t.Error("unknown view should fail")
	}
	if resp := callTool(t, s, "crop_preview", map[string]interface{}{"shade_color": "nope"}); resp.Error == nil {
		t.Error("invalid shade color should fail")
	}
}

func TestHandleToolsCall_PreviewCircular(t *testing.T) {
	s := New(editor.DefaultOptions())
	imgPath := createTestImageFile(t, 200, 200, color.RGBA{0, 0, 200, 255})
	defer os.Remove(imgPath)

	decodeResult(t, callTool(t, s, "crop_open", map[string]interface{}{
		"path":             imgPath,
		"circular_preview": true,
	}), &editor.Snapshot{})

	var res imaging.OverlayResult
	decodeResult(t, callTool(t, s, "crop_preview", map[string]interface{}{"view": "transform"}), &res)
	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("preview is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("preview is not a PNG: %v", err)
	}

	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha: got %d, want 0", a)
	}
	if _, _, _, a := img.At(100, 100).RGBA(); a != 0xffff {
		t.Errorf("center alpha: got %d, want opaque", a)
	}
}

func TestHandleToolsCall_Save(t *testing.T) {
	s := New(editor.DefaultOptions())
	imgPath := createTestImageFile(t, 1600, 1200, color.RGBA{0, 200, 0, 255})
	defer os.Remove(imgPath)
	outDir := t.TempDir()

	decodeResult(t, callTool(t, s, "crop_open", map[string]interface{}{"path": imgPath}), &editor.Snapshot{})
	// Preview state must not leak into the export.
	callTool(t, s, "crop_rotate", nil)
	callTool(t, s, "crop_zoom", map[string]interface{}{"value": 2})

	var res cropSaveResult
	decodeResult(t, callTool(t, s, "crop_save", map[string]interface{}{
		"base_name":  "avatar.png",
		"output_dir": outDir,
	}), &res)

	if res.Name != "avatar.jpg" || res.MimeType != "image/jpeg" {
		t.Errorf("file: got %s (%s)", res.Name, res.MimeType)
	}
	if res.Width != 1080 || res.Height != 1080 {
		t.Errorf("size: got %dx%d, want 1080x1080", res.Width, res.Height)
	}
	if res.SourceRect != image.Rect(260, 60, 1340, 1140) {
		t.Errorf("source rect: got %v", res.SourceRect)
	}
	if res.Path != filepath.Join(outDir, "avatar.jpg") {
		t.Errorf("path: got %s", res.Path)
	}

	f, err := os.Open(res.Path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		t.Fatalf("saved file is not a JPEG: %v", err)
	}
	if cfg.Width != 1080 || cfg.Height != 1080 {
		t.Errorf("saved JPEG: got %dx%d", cfg.Width, cfg.Height)
	}
	info, _ := f.Stat()
	if int(info.Size()) != res.SizeBytes {
		t.Errorf("size_bytes %d does not match file size %d", res.SizeBytes, info.Size())
	}

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_state", nil), &snap)
	if snap.State != "resolved" {
		t.Errorf("State after save: got %s, want resolved", snap.State)
	}

	for _, name := range []string{"crop_save", "crop_cancel", "crop_rotate"} {
		if resp := callTool(t, s, name, nil); resp.Error == nil {
			t.Errorf("%s after save should fail", name)
		}
	}
}

func TestHandleToolsCall_SaveWithoutDir(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var res cropSaveResult
	decodeResult(t, callTool(t, s, "crop_save", nil), &res)
	if res.Name != "cropped.jpg" {
		t.Errorf("default name: got %s, want cropped.jpg", res.Name)
	}
	if res.Path != "" {
		t.Errorf("nothing should be written without output_dir, got path %s", res.Path)
	}
	if res.DataBase64 == "" {
		t.Error("payload is empty")
	}
}

func TestHandleToolsCall_Cancel(t *testing.T) {
	s := New(editor.DefaultOptions())
	openSession(t, s)

	var res cropCancelResult
	decodeResult(t, callTool(t, s, "crop_cancel", nil), &res)
	if res.Outcome != "cancelled" {
		t.Errorf("outcome: got %s, want cancelled", res.Outcome)
	}

	var snap editor.Snapshot
	decodeResult(t, callTool(t, s, "crop_state", nil), &snap)
	if snap.State != "rejected" {
		t.Errorf("State after cancel: got %s, want rejected", snap.State)
	}

	if resp := callTool(t, s, "crop_cancel", nil); resp.Error == nil {
		t.Error("second cancel should fail")
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New(editor.DefaultOptions())

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(editor.DefaultOptions())

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New(editor.DefaultOptions())
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"crop_open", map[string]interface{}{"path": imgPath, "container_width": 200, "container_height": 200}},
		{"crop_state", nil},
		{"crop_pointer", map[string]interface{}{"action": "down", "x": 50, "y": 50}},
		{"crop_pointer", map[string]interface{}{"action": "move", "x": 55, "y": 55}},
		{"crop_pointer", map[string]interface{}{"action": "up"}},
		{"crop_aspect_lock", map[string]interface{}{"locked": false}},
		{"crop_relayout", map[string]interface{}{"container_width": 150, "container_height": 150}},
		{"crop_suggest", nil},
		{"crop_zoom", map[string]interface{}{"delta": 0.1}},
		{"crop_rotate", nil},
		{"crop_preview", map[string]interface{}{"view": "overlay"}},
		{"crop_preview", map[string]interface{}{"view": "transform"}},
		{"crop_save", map[string]interface{}{"base_name": "out"}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New(editor.DefaultOptions())

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(editor.DefaultOptions())

	_, err := s.executeTool("crop_open", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
