// Package server implements the MCP (Model Context Protocol) server for the
// image crop editor.
//
// This package provides a JSON-RPC 2.0 server that drives one editor.Session
// at a time through the MCP protocol. A client opens an image, adjusts the
// selection with pointer events, previews the result and saves it as JPEG.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session Lifecycle:
//   - crop_open: Load an image into a new session
//   - crop_state: Report the session state and selection
//   - crop_save: Export the selection as JPEG
//   - crop_cancel: Dismiss the session
//
// Selection Editing:
//   - crop_pointer: Pointer down, move and up
//   - crop_aspect_lock: Toggle the aspect ratio lock
//   - crop_relayout: Resize the editor container
//   - crop_suggest: Place the selection on the salient region
//
// Preview:
//   - crop_zoom: Set or adjust the preview zoom
//   - crop_rotate: Rotate the preview 90 degrees
//   - crop_preview: Render the editor as PNG
//
// # Sessions
//
// Only one session is open at a time. crop_open cancels the previous one.
// A resolved session stays visible to crop_state until the next crop_open;
// editing tools on it fail. Decoded images are cached by path for the
// lifetime of the process, so reopening a file skips the decode.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(editor.OptionsFromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
