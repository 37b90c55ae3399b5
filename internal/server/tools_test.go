package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"editor_load",
		"editor_info",
		"editor_set_display",
		"editor_crop_start",
		"editor_crop_cancel",
		"editor_crop_confirm",
		"editor_pointer",
		"editor_crop_aspect",
		"editor_brightness",
		"editor_contrast",
		"editor_filter",
		"editor_reset",
		"editor_rotate",
		"editor_preview",
		"editor_sample_color",
		"editor_export",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	// Check all expected tools exist
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}

	// Every defined tool must be dispatched
	s := New(DefaultOptions())
	for _, tool := range tools {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
		if err != nil && strings.HasPrefix(err.Error(), "unknown tool") {
			t.Errorf("Tool %s is defined but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			// Name should not be empty
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}

			// Description should not be empty
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should exist
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			// InputSchema should be an object type
			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	toolRequired := map[string][]string{
		"editor_load":        {"path"},
		"editor_set_display": {"width", "height"},
		"editor_pointer":     {"action"},
		"editor_crop_aspect": {"ratio"},
		"editor_brightness":  {"value"},
		"editor_contrast":    {"value"},
		"editor_filter":      {"filter"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, want := range toolRequired {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("Tool %s not found", name)
			continue
		}

		t.Run(name, func(t *testing.T) {
			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			have := make(map[string]bool)
			for _, r := range requiredList {
				have[r] = true
			}
			for _, w := range want {
				if !have[w] {
					t.Errorf("Tool should require '%s' parameter", w)
				}
			}
		})
	}
}

func TestToolDefinitions_Enums(t *testing.T) {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	tests := []struct {
		tool  string
		param string
		want  []string
	}{
		{"editor_pointer", "action", []string{"down", "move", "up"}},
		{"editor_filter", "filter", []string{"none", "grayscale", "sepia", "vintage", "cool", "warm"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			props, ok := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			prop, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("%s property should exist and be a map", tt.param)
			}
			enum, ok := prop["enum"].([]string)
			if !ok {
				t.Fatalf("%s should have enum", tt.param)
			}

			enumMap := make(map[string]bool)
			for _, e := range enum {
				enumMap[e] = true
			}
			for _, v := range tt.want {
				if !enumMap[v] {
					t.Errorf("Expected '%s' in enum", v)
				}
			}
		})
	}
}

func TestToolDefinitions_FilterEnumMatchesImaging(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "editor_filter" {
			tool = tt
			break
		}
	}

	props := tool.InputSchema["properties"].(map[string]interface{})
	enum := props["filter"].(map[string]interface{})["enum"].([]string)

	filters := imaging.Filters()
	if len(enum) != len(filters) {
		t.Fatalf("enum has %d filters, imaging supports %d", len(enum), len(filters))
	}
	for i, f := range filters {
		if enum[i] != f.String() {
			t.Errorf("enum[%d]: got %s, want %s", i, enum[i], f)
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tools := GetToolDefinitions()

	// Tools with optional parameters that should have defaults
	toolDefaults := map[string]map[string]interface{}{
		"editor_preview":     {"scale": 1.0, "overlay": true},
		"editor_export":      {"format": "png"},
		"editor_crop_aspect": {"ratio": "free"},
		"editor_filter":      {"filter": "none"},
		"editor_set_display": {"left": 0.0, "top": 0.0},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}

			if actualDefault != expectedDefault {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expectedDefault)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(DefaultOptions())
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	// Should match GetToolDefinitions
	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}

func TestToolStruct(t *testing.T) {
	tool := Tool{
		Name:        "test_tool",
		Description: "A test tool",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"param1": map[string]interface{}{
					"type":        "string",
					"description": "A test parameter",
				},
			},
			"required": []string{"param1"},
		},
	}

	if tool.Name != "test_tool" {
		t.Errorf("Name: got %s, want test_tool", tool.Name)
	}
	if tool.Description != "A test tool" {
		t.Errorf("Description: got %s, want 'A test tool'", tool.Description)
	}
	if tool.InputSchema == nil {
		t.Error("InputSchema should not be nil")
	}
}
