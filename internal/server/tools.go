package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// locatorProperty is the shared schema for the locator argument every sprite
// tool takes.
func locatorProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path or http(s) URL of the sprite image. PNG locators are transparently upgraded to WebP when the runtime supports it.",
	}
}

// backgroundProperties is the shared schema for the chroma-key arguments.
func backgroundProperties() map[string]interface{} {
	return map[string]interface{}{
		"background": map[string]interface{}{
			"type":        "string",
			"description": "Chroma-key background color as #RRGGBB, or \"auto\" to sample the sprite's dominant color. Default: " + defaultBackground,
		},
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Maximum Euclidean RGB color distance (0-441.67) at which a pixel still counts as background. Default: 60",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	keyoutProps := map[string]interface{}{
		"locator": locatorProperty(),
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional uniform scale factor applied to the keyed-out result (default 1.0)",
		},
	}
	prepareProps := map[string]interface{}{
		"locator": locatorProperty(),
	}
	for k, v := range backgroundProperties() {
		keyoutProps[k] = v
		prepareProps[k] = v
	}

	return []Tool{
		{
			Name:        "sprite_load",
			Description: "Load a sprite image through the format negotiator and bitmap cache, returning its dimensions. Subsequent tools reuse the cached bitmap.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"locator": locatorProperty(),
				},
				"required": []string{"locator"},
			},
		},
		{
			Name:        "sprite_keyout",
			Description: "Remove the chroma-key background from a sprite by color-distance thresholding and return the transparent result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": keyoutProps,
				"required":   []string{"locator"},
			},
		},
		{
			Name:        "sprite_bounds",
			Description: "Compute the tight bounding box of a sprite's opaque content plus centering-offset and fill-ratio metrics, after keying out the background. Results are cached per locator.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": prepareProps,
				"required":   []string{"locator"},
			},
		},
		{
			Name:        "sprite_prepare",
			Description: "Run the full pipeline: load, remove the chroma-key background, and analyze content bounds. Returns the transparent sprite as base64 PNG together with its bounds record.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": prepareProps,
				"required":   []string{"locator"},
			},
		},
		{
			Name:        "cache_clear",
			Description: "Clear all cached bitmaps, filtered variants, and content-bounds records. The next load of any locator fetches again.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
