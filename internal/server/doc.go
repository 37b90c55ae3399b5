// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one interactive
// editing session through the MCP protocol: an image is loaded, cropped with
// a draggable selection, adjusted with brightness, contrast and color filters,
// previewed and exported.
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
// Session:
//   - editor_load: Load an image file into the editor
//   - editor_info: Describe the session
//   - editor_set_display: Map screen positions to image pixels
//
// Crop:
//   - editor_crop_start, editor_crop_cancel, editor_crop_confirm
//   - editor_pointer: down / move / up on the selection handles
//   - editor_crop_aspect: Lock or free the aspect ratio
//
// Adjustments:
//   - editor_brightness, editor_contrast: Sliders from -100 to 100
//   - editor_filter: none, grayscale, sepia, vintage, cool, warm
//   - editor_reset: Restore the unadjusted image
//   - editor_rotate: Quarter turn clockwise
//
// Output:
//   - editor_preview: PNG of the current frame with the selection overlay
//   - editor_sample_color: Colors at pixel coordinates
//   - editor_export: Encode to a file or base64
//
// Adjustments are always recomputed from the unadjusted image, so any
// sequence of slider changes followed by editor_reset restores it exactly.
//
// # Image Caching
//
// Decoded files are cached by path. The editor keeps its own copy, so edits
// never touch the cache. Exporting over a path evicts it so the next
// editor_load sees the new file.
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
//	srv := server.New(server.DefaultOptions())
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server error")
//	}
package server
