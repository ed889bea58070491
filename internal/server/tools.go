package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session Lifecycle
		{
			Name:        "crop_open",
			Description: "Open an image in a new crop session. Any session still open is cancelled first. Returns the session state with the initial selection centered on the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"container_width": map[string]interface{}{
						"type":        "number",
						"description": "Width of the editor container in display pixels. Default 800",
						"default":     DefaultContainerWidth,
					},
					"container_height": map[string]interface{}{
						"type":        "number",
						"description": "Height of the editor container in display pixels. Default 600",
						"default":     DefaultContainerHeight,
					},
					"aspect_ratio": map[string]interface{}{
						"type":        "number",
						"description": "Selection width/height. 0 for free-form cropping. Defaults to the server setting",
					},
					"max_output_size": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum output width and height in pixels. Defaults to the server setting",
					},
					"quality": map[string]interface{}{
						"type":        "number",
						"description": "JPEG quality from 0 to 1. Defaults to the server setting",
					},
					"circular_preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Show a round selection. Only honored when aspect_ratio is 1",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "crop_state",
			Description: "Get the current session state: lifecycle state, layout geometry, selection in display and natural pixels, preview transform, aspect lock and the live gesture.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "crop_save",
			Description: "Export the selection as JPEG and close the session. The preview zoom and rotation are not applied. Returns the file name, size and base64 payload.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base_name": map[string]interface{}{
						"type":        "string",
						"description": "Output file name; its extension is replaced with .jpg. Default \"cropped\"",
						"default":     "cropped",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Optional directory to write the file to",
					},
				},
			},
		},
		{
			Name:        "crop_cancel",
			Description: "Dismiss the crop session without producing output. Refused once a save is in progress.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Selection Editing
		{
			Name:        "crop_pointer",
			Description: "Feed a pointer event to the editor. A down on the selection body starts a move, a down on a handle starts a resize; move updates the selection and up ends the gesture.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"description": "Pointer action",
						"enum":        []string{"down", "move", "up"},
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Pointer X in container coordinates",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Pointer Y in container coordinates",
					},
					"handle": map[string]interface{}{
						"type":        "string",
						"description": "Target for a down event. Omit to hit test the pointer position",
						"enum":        []string{"body", "n", "s", "e", "w", "ne", "nw", "se", "sw"},
					},
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "crop_aspect_lock",
			Description: "Lock or unlock the configured aspect ratio. Locking resets the selection to the initial placement.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"locked": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the aspect ratio is enforced",
					},
				},
				"required": []string{"locked"},
			},
		},
		{
			Name:        "crop_relayout",
			Description: "Lay the image out in a resized container. The selection is reset.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"container_width": map[string]interface{}{
						"type":        "number",
						"description": "New container width in display pixels",
					},
					"container_height": map[string]interface{}{
						"type":        "number",
						"description": "New container height in display pixels",
					},
				},
				"required": []string{"container_width", "container_height"},
			},
		},
		{
			Name:        "crop_suggest",
			Description: "Move the selection onto the most interesting part of the image, keeping the locked aspect ratio.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Preview
		{
			Name:        "crop_zoom",
			Description: "Change the preview zoom, clamped to 0.5-3. Give either a delta or an absolute value. Preview only; the export is unaffected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"delta": map[string]interface{}{
						"type":        "number",
						"description": "Amount to add to the current scale, e.g. 0.1 or -0.1",
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Absolute scale to set",
					},
				},
			},
		},
		{
			Name:        "crop_rotate",
			Description: "Rotate the preview 90 degrees clockwise. Preview only; the export is unaffected.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "crop_preview",
			Description: "Render the editor as base64 PNG. The overlay view shows the container with the selection shaded, guides and handles; the transform view shows the image with the preview zoom and rotation, masked to a circle when the circular preview is on.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"view": map[string]interface{}{
						"type":        "string",
						"description": "Which view to render",
						"enum":        []string{"overlay", "transform"},
						"default":     "overlay",
					},
					"shade_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color of the shading outside the selection",
						"default":     "#000000",
					},
					"shade_opacity": map[string]interface{}{
						"type":        "number",
						"description": "Opacity of the shading, 0-1",
						"default":     0.55,
					},
					"guide_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color of the guides and handles",
						"default":     "#FFFFFF",
					},
					"hide_handles": map[string]interface{}{
						"type":        "boolean",
						"description": "Omit the resize handles",
						"default":     false,
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
