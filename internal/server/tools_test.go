package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"sprite_load",
		"sprite_keyout",
		"sprite_bounds",
		"sprite_prepare",
		"cache_clear",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}

	if len(toolMap) != len(tools) {
		t.Error("Duplicate tool names in definitions")
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok || schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want object", schemaType)
			}

			if _, ok := tool.InputSchema["properties"]; !ok {
				t.Error("InputSchema missing properties")
			}
		})
	}
}

func TestToolDefinitions_SpriteToolsRequireLocator(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "cache_clear" {
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("InputSchema missing required list")
			}
			found := false
			for _, r := range required {
				if r == "locator" {
					found = true
				}
			}
			if !found {
				t.Error("locator not listed as required")
			}
		})
	}
}

func TestToolDefinitions_SerializeToJSON(t *testing.T) {
	// MCP clients consume the definitions as JSON; the maps must marshal.
	if _, err := json.Marshal(GetToolDefinitions()); err != nil {
		t.Fatalf("tool definitions do not marshal: %v", err)
	}
}
