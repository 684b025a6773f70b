// Package server implements an MCP (Model Context Protocol) server that exposes
// the image-to-memfile pipeline as tools.
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
// Source Image Information:
//   - image_load: Read header metadata (size, format, color model)
//   - image_dimensions: Get width and height
//
// Memory File Operations:
//   - memfile_convert: Write (or return) one token per pixel
//   - memfile_sample_pixel: Inspect one pixel of the target grid
//   - memfile_formats: List pixel formats, encodings and flip modes
//
// Conversion arguments use the same names and defaults as the command-line
// flags: width, height, pixfmt, out, flip and thresh.
//
// # Image Caching
//
// Decoded source images are cached by path for the lifetime of the server
// process, so repeated conversions of one image at different sizes or
// formats decode it only once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, naming the failing stage and value
package server
