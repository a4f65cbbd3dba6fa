package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/spriteforge/sprite-prep-mcp/internal/sprite"
)

const (
	// defaultBackground is the chroma key our generation prompts ask for.
	defaultBackground = "#00FF00"

	// defaultThreshold tolerates the compression noise AI-generated
	// backgrounds typically carry around the requested key color.
	defaultThreshold = 60.0
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sprite_load", "sprite_prepare").
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "sprite_load":
		return s.handleSpriteLoad(args)
	case "sprite_keyout":
		return s.handleSpriteKeyout(args)
	case "sprite_bounds":
		return s.handleSpriteBounds(args)
	case "sprite_prepare":
		return s.handleSpritePrepare(args)
	case "cache_clear":
		return s.handleCacheClear(args)
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

// resolveSpec turns the optional background/threshold arguments into a
// sprite.BackgroundSpec, applying the server defaults. The special value
// "auto" samples the sprite's dominant color instead of using a fixed key;
// the load it requires is served from the bitmap cache on the next pipeline
// step.
func (s *Server) resolveSpec(locator, hex string, threshold float64) (sprite.BackgroundSpec, error) {
	if threshold == 0 {
		threshold = defaultThreshold
	}
	if hex == "auto" {
		img, err := s.pipeline.Loader.Load(context.Background(), locator)
		if err != nil {
			return sprite.BackgroundSpec{}, err
		}
		return sprite.DetectBackground(img, threshold), nil
	}
	if hex == "" {
		hex = defaultBackground
	}
	return sprite.ParseBackgroundSpec(hex, threshold)
}

// encodePNGBase64 materializes img as a base64 PNG payload.
func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode sprite: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// === Tool Handlers ===

type spriteLoadArgs struct {
	Locator string `json:"locator"`
}

// SpriteInfo describes a loaded sprite bitmap.
type SpriteInfo struct {
	Locator  string `json:"locator"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	HasAlpha bool   `json:"has_alpha"`
}

// hasTransparency reports whether any pixel of img is less than fully opaque.
// Loader output is an origin-anchored contiguous buffer, so the alpha bytes
// sit at every fourth offset.
func hasTransparency(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xFF {
			return true
		}
	}
	return false
}

func (s *Server) handleSpriteLoad(args json.RawMessage) (interface{}, error) {
	var a spriteLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.pipeline.Loader.Load(context.Background(), a.Locator)
	if err != nil {
		return nil, err
	}

	return &SpriteInfo{
		Locator:  a.Locator,
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		HasAlpha: hasTransparency(img),
	}, nil
}

type spriteKeyoutArgs struct {
	Locator    string  `json:"locator"`
	Background string  `json:"background"`
	Threshold  float64 `json:"threshold"`
	Scale      float64 `json:"scale"`
}

// KeyoutResult contains the background-removed sprite image data.
type KeyoutResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleSpriteKeyout(args json.RawMessage) (interface{}, error) {
	var a spriteKeyoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	spec, err := s.resolveSpec(a.Locator, a.Background, a.Threshold)
	if err != nil {
		return nil, err
	}

	filtered, _, err := s.pipeline.Prepare(context.Background(), a.Locator, spec)
	if err != nil {
		return nil, err
	}

	out := filtered
	if a.Scale != 1.0 && a.Scale > 0 {
		newWidth := int(float64(out.Bounds().Dx()) * a.Scale)
		newHeight := int(float64(out.Bounds().Dy()) * a.Scale)
		out = imaging.Resize(out, newWidth, newHeight, imaging.Lanczos)
	}

	encoded, err := encodePNGBase64(out)
	if err != nil {
		return nil, err
	}

	return &KeyoutResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

type spriteBoundsArgs struct {
	Locator    string  `json:"locator"`
	Background string  `json:"background"`
	Threshold  float64 `json:"threshold"`
}

func (s *Server) handleSpriteBounds(args json.RawMessage) (interface{}, error) {
	var a spriteBoundsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	spec, err := s.resolveSpec(a.Locator, a.Background, a.Threshold)
	if err != nil {
		return nil, err
	}

	_, bounds, err := s.pipeline.Prepare(context.Background(), a.Locator, spec)
	if err != nil {
		return nil, err
	}
	return bounds, nil
}

// PrepareResult combines the transparent sprite with its bounds record.
type PrepareResult struct {
	Bounds      *sprite.ContentBounds `json:"bounds"`
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	ImageBase64 string                `json:"image_base64"`
	MimeType    string                `json:"mime_type"`
}

func (s *Server) handleSpritePrepare(args json.RawMessage) (interface{}, error) {
	var a spriteBoundsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	spec, err := s.resolveSpec(a.Locator, a.Background, a.Threshold)
	if err != nil {
		return nil, err
	}

	filtered, bounds, err := s.pipeline.Prepare(context.Background(), a.Locator, spec)
	if err != nil {
		return nil, err
	}

	encoded, err := encodePNGBase64(filtered)
	if err != nil {
		return nil, err
	}

	return &PrepareResult{
		Bounds:      bounds,
		Width:       filtered.Bounds().Dx(),
		Height:      filtered.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// CacheClearResult reports the outcome of a cache_clear call.
type CacheClearResult struct {
	Cleared bool `json:"cleared"`
}

func (s *Server) handleCacheClear(json.RawMessage) (interface{}, error) {
	s.pipeline.ClearCaches()
	return &CacheClearResult{Cleared: true}, nil
}
