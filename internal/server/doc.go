// Package server implements the MCP (Model Context Protocol) server for
// sprite preparation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the sprite
// pipeline (format-negotiated loading, chroma-key background removal, and
// content-bounds analysis) through the MCP protocol, so AI-assisted asset
// workflows can turn generated bitmaps into registered game sprites.
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
//   - sprite_load: Load a sprite and report its dimensions
//   - sprite_keyout: Remove the chroma-key background, returning a PNG
//   - sprite_bounds: Compute content bounds and centering offsets
//   - sprite_prepare: Full pipeline: load, key out, analyze
//   - cache_clear: Drop all cached bitmaps and bounds records
//
// # Caching
//
// The server keeps one process-wide sprite pipeline. Decoded bitmaps, their
// filtered variants, and content-bounds records are cached by source locator
// and reused across tool calls for the lifetime of the process; cache_clear
// is the only teardown short of exiting.
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
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
