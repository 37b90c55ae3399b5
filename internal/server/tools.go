package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "editor_load",
			Description: "Load an image file into the editor. Replaces any image being edited, resets adjustments and discards the crop selection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_info",
			Description: "Describe the editing session: image size, adjustments, crop state and selection.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_set_display",
			Description: "Tell the editor where the image is shown on screen so pointer positions in screen units map to image pixels. Until set, pointer positions are image pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"left": map[string]interface{}{
						"type":        "number",
						"description": "Left edge of the displayed image",
						"default":     0.0,
					},
					"top": map[string]interface{}{
						"type":        "number",
						"description": "Top edge of the displayed image",
						"default":     0.0,
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Displayed width",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Displayed height",
					},
				},
				"required": []string{"width", "height"},
			},
		},

		// Crop
		{
			Name:        "editor_crop_start",
			Description: "Show a crop selection centered on the image. Drag it with editor_pointer, then confirm or cancel.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_crop_cancel",
			Description: "Discard the crop selection without changing the image.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_crop_confirm",
			Description: "Crop the image to the selection. Adjustments are reset.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_pointer",
			Description: "Send a pointer event. Pressing on a corner or edge handle resizes the selection, pressing inside moves it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"down", "move", "up"},
						"description": "Pointer action",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X position in display units",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y position in display units",
					},
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "editor_crop_aspect",
			Description: "Lock the crop selection to an aspect ratio such as \"16:9\", \"4/3\" or \"1.5\", or unlock it with \"free\".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"ratio": map[string]interface{}{
						"type":        "string",
						"description": "Width to height ratio, or \"free\"",
						"default":     "free",
					},
				},
				"required": []string{"ratio"},
			},
		},

		// Adjustments
		{
			Name:        "editor_brightness",
			Description: "Set brightness from -100 to 100. Recomputed from the original image, never cumulative.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": map[string]interface{}{
						"type":        "integer",
						"minimum":     -100,
						"maximum":     100,
						"description": "Brightness offset, 0 = unchanged",
					},
				},
				"required": []string{"value"},
			},
		},
		{
			Name:        "editor_contrast",
			Description: "Set contrast from -100 to 100. Recomputed from the original image, never cumulative.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": map[string]interface{}{
						"type":        "integer",
						"minimum":     -100,
						"maximum":     100,
						"description": "Contrast level, 0 = unchanged",
					},
				},
				"required": []string{"value"},
			},
		},
		{
			Name:        "editor_filter",
			Description: "Apply a color filter on top of brightness and contrast.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "grayscale", "sepia", "vintage", "cool", "warm"},
						"description": "Filter name",
						"default":     "none",
					},
				},
				"required": []string{"filter"},
			},
		},
		{
			Name:        "editor_reset",
			Description: "Reset brightness, contrast and filter, restoring the image exactly.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_rotate",
			Description: "Rotate the image 90 degrees clockwise. Discards the crop selection and keeps the adjustments.",
			InputSchema: noArgs(),
		},

		// Output
		{
			Name:        "editor_preview",
			Description: "Render the current image as base64-encoded PNG, with the crop selection drawn on top when one is shown.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 0.5 for half size). Default 1.0",
						"default":     1.0,
					},
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the crop selection. Default true",
						"default":     true,
					},
				},
			},
		},
		{
			Name:        "editor_sample_color",
			Description: "Get the exact color of the edited image at one or more pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Sample several points instead of x/y",
					},
				},
			},
		},
		{
			Name:        "editor_export",
			Description: "Encode the edited image. Writes to path when given (format from the extension), otherwise returns base64 data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute output path",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "gif", "bmp", "tiff"},
						"description": "Encoding when no path is given",
						"default":     "png",
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
