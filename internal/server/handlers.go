package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironsheep/image2memfile/internal/convert"
	"github.com/ironsheep/image2memfile/internal/imaging"
	"github.com/ironsheep/image2memfile/internal/memfile"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "memfile_convert").
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
	// Source Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Memory File Operations
	case "memfile_convert":
		return s.handleMemfileConvert(args)
	case "memfile_sample_pixel":
		return s.handleMemfileSamplePixel(args)
	case "memfile_formats":
		return handleMemfileFormats(), nil

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments; absent arguments decode as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Source Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Memory File Handlers ===

// pipelineArgs mirrors the CLI flags. Zero values select the defaults.
type pipelineArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	PixFmt string `json:"pixfmt"`
	Out    string `json:"out"`
	Flip   string `json:"flip"`
	Thresh *int   `json:"thresh,omitempty"`
}

// options converts tool arguments into pipeline options. Explicit
// non-positive dimensions are passed through so the pipeline rejects them.
func (a pipelineArgs) options(raw json.RawMessage) (convert.Options, error) {
	opts := convert.Defaults()
	opts.Input = a.Path

	var present map[string]json.RawMessage
	_ = unmarshalArgs(raw, &present)
	if _, ok := present["width"]; ok {
		opts.Width = a.Width
	}
	if _, ok := present["height"]; ok {
		opts.Height = a.Height
	}

	if a.PixFmt != "" {
		f, err := memfile.ParsePixelFormat(a.PixFmt)
		if err != nil {
			return opts, err
		}
		opts.PixelFormat = f
	}
	if a.Out != "" {
		o, err := memfile.ParseOutputFormat(a.Out)
		if err != nil {
			return opts, err
		}
		opts.OutputFormat = o
	}
	if a.Flip != "" {
		m, err := imaging.ParseFlipMode(a.Flip)
		if err != nil {
			return opts, err
		}
		opts.Flip = m
	}
	if a.Thresh != nil {
		opts.Threshold = *a.Thresh
	}
	return opts, opts.Validate()
}

type memfileConvertArgs struct {
	pipelineArgs
	Output  string `json:"output"`
	Preview string `json:"preview"`
}

// memfileConvertResult adds inline tokens when no output path was given.
type memfileConvertResult struct {
	*convert.Result
	Tokens []string `json:"tokens,omitempty"`
}

func (s *Server) handleMemfileConvert(args json.RawMessage) (interface{}, error) {
	var a memfileConvertArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options(args)
	if err != nil {
		return nil, err
	}
	if a.Output == convert.StdoutPath {
		return nil, fmt.Errorf("output %q is not available in server mode: stdout carries the protocol", a.Output)
	}
	opts.Preview = a.Preview

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if a.Output != "" {
		opts.Output = a.Output
		res, err := convert.RunImage(img, opts, nil)
		if err != nil {
			return nil, err
		}
		return &memfileConvertResult{Result: res}, nil
	}

	var buf bytes.Buffer
	opts.Output = convert.StdoutPath
	res, err := convert.RunImage(img, opts, &buf)
	if err != nil {
		return nil, err
	}
	res.Output = ""
	return &memfileConvertResult{
		Result: res,
		Tokens: strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"),
	}, nil
}

type memfileSamplePixelArgs struct {
	pipelineArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleMemfileSamplePixel(args json.RawMessage) (interface{}, error) {
	var a memfileSamplePixelArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options(args)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	frame, err := convert.Process(img, opts)
	if err != nil {
		return nil, err
	}
	return frame.Sample(a.X, a.Y, opts.OutputFormat)
}

// PixelFormatInfo describes one supported pixel format.
type PixelFormatInfo struct {
	Name     string `json:"name"`
	Bits     int    `json:"bits"`
	BinWidth int    `json:"bin_width"`
	HexWidth int    `json:"hex_width"`
}

// FormatsResult lists every accepted token of the conversion options.
type FormatsResult struct {
	PixelFormats  []PixelFormatInfo `json:"pixel_formats"`
	OutputFormats []string          `json:"output_formats"`
	FlipModes     []string          `json:"flip_modes"`
}

func handleMemfileFormats() *FormatsResult {
	res := &FormatsResult{
		OutputFormats: []string{memfile.Bin.String(), memfile.Hex.String()},
		FlipModes: []string{
			imaging.FlipNone.String(),
			imaging.FlipHorizontal.String(),
			imaging.FlipVertical.String(),
			imaging.FlipAuto.String(),
		},
	}
	for _, f := range memfile.PixelFormats() {
		res.PixelFormats = append(res.PixelFormats, PixelFormatInfo{
			Name:     f.String(),
			Bits:     f.Bits(),
			BinWidth: memfile.Bin.Width(f.Bits()),
			HexWidth: memfile.Hex.Width(f.Bits()),
		})
	}
	return res
}
