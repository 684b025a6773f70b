package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pipelineProperties are the conversion parameters shared by
// memfile_convert and memfile_sample_pixel.
func pipelineProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source image file",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Target width in pixels. Default 20",
			"default":     20,
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Target height in pixels. Default 10",
			"default":     10,
		},
		"pixfmt": map[string]interface{}{
			"type":        "string",
			"description": "Pixel format. Default RGB332",
			"enum":        []string{"RGB565", "RGB332", "GREY4", "BIN1"},
			"default":     "RGB332",
		},
		"out": map[string]interface{}{
			"type":        "string",
			"description": "Token encoding: bin for $readmemb, hex for $readmemh. Default bin",
			"enum":        []string{"bin", "hex"},
			"default":     "bin",
		},
		"flip": map[string]interface{}{
			"type":        "string",
			"description": "Mirror axis applied after resizing. auto mirrors horizontally when width >= height, otherwise vertically. Default none",
			"enum":        []string{"none", "h", "v", "auto"},
			"default":     "none",
		},
		"thresh": map[string]interface{}{
			"type":        "integer",
			"description": "BIN1 luma threshold (0-255). Pixels with luma >= thresh become 1. Default 128",
			"default":     128,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	convertProps := pipelineProperties()
	convertProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Path of the memory file to write. When omitted the tokens are returned in the result instead",
	}
	convertProps["preview"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path of a PNG rendering of the quantized image",
	}

	sampleProps := pipelineProperties()
	sampleProps["x"] = map[string]interface{}{
		"type":        "integer",
		"description": "X coordinate in the target grid (0-based)",
	}
	sampleProps["y"] = map[string]interface{}{
		"type":        "integer",
		"description": "Y coordinate in the target grid (0-based)",
	}

	return []Tool{
		// Source Image Information
		{
			Name:        "image_load",
			Description: "Read an image file header and return its dimensions, format, color model and file size.",
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
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
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

		// Memory File Operations
		{
			Name:        "memfile_convert",
			Description: "Resize an image with nearest-neighbor sampling, optionally mirror it, quantize every pixel to a fixed-width word and write one binary or hex token per line in row-major order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": convertProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "memfile_sample_pixel",
			Description: "Run the conversion pipeline without writing and report the color, word and token of one pixel of the target grid.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sampleProps,
				"required":   []string{"path", "x", "y"},
			},
		},
		{
			Name:        "memfile_formats",
			Description: "List the supported pixel formats with their word widths and token lengths, plus the output encodings and flip modes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
