package convert

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image2memfile/internal/imaging"
	"github.com/ironsheep/image2memfile/internal/memfile"
)

// StdoutPath as Options.Output writes the memory file to the supplied
// stdout writer instead of a file.
const StdoutPath = "-"

// Options configures one conversion.
type Options struct {
	Input        string
	Output       string
	Width        int
	Height       int
	PixelFormat  memfile.PixelFormat
	OutputFormat memfile.OutputFormat
	Flip         imaging.FlipMode
	Threshold    int // BIN1 only

	// Preview, when set, is a PNG path that receives the dequantized frame.
	Preview string

	// Verbose enables per-stage log lines.
	Verbose bool
}

// Defaults returns the canonical option set: 20x10, RGB332, bin, no
// mirroring, threshold 128.
func Defaults() Options {
	return Options{
		Width:        20,
		Height:       10,
		PixelFormat:  memfile.RGB332,
		OutputFormat: memfile.Bin,
		Flip:         imaging.FlipNone,
		Threshold:    memfile.DefaultThreshold,
	}
}

// Validate checks the options that do not depend on the input image.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return &imaging.DimensionError{Width: o.Width, Height: o.Height}
	}
	if !o.PixelFormat.Valid() {
		return &memfile.PixelFormatError{Value: o.PixelFormat.String()}
	}
	if o.OutputFormat != memfile.Bin && o.OutputFormat != memfile.Hex {
		return &memfile.OutputFormatError{Value: o.OutputFormat.String()}
	}
	switch o.Flip {
	case imaging.FlipNone, imaging.FlipHorizontal, imaging.FlipVertical, imaging.FlipAuto:
	default:
		return &imaging.FlipModeError{Value: o.Flip.String()}
	}
	return nil
}

// Result summarizes a completed conversion.
type Result struct {
	Output       string `json:"output"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PixelFormat  string `json:"pixel_format"`
	OutputFormat string `json:"output_format"`
	Flip         string `json:"flip"` // resolved axis, never "auto"
	Bits         int    `json:"bits"`
	Lines        int    `json:"lines"`
	Preview      string `json:"preview,omitempty"`
}

// Run loads opts.Input and writes the memory file to opts.Output. An Output
// of StdoutPath writes to stdout.
func Run(opts Options, stdout io.Writer) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src, err := imaging.Load(opts.Input)
	if err != nil {
		return nil, err
	}
	return RunImage(src, opts, stdout)
}

// RunImage is Run for an already loaded source image; opts.Input is only
// used for logging.
func RunImage(src *imaging.Image, opts Options, stdout io.Writer) (*Result, error) {
	frame, err := Process(src, opts)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("convert %s: %dx%d -> %dx%d %s flip=%s", opts.Input,
			src.Width(), src.Height(), frame.Image.Width(), frame.Image.Height(),
			frame.Format, frame.Flip)
	}

	bits := frame.Format.Bits()
	if opts.Output == StdoutPath {
		if stdout == nil {
			stdout = os.Stdout
		}
		if err := memfile.Write(stdout, frame.Values, bits, opts.OutputFormat); err != nil {
			return nil, &memfile.WriteError{Path: "stdout", Err: err}
		}
	} else if err := memfile.WriteFile(opts.Output, frame.Values, bits, opts.OutputFormat); err != nil {
		return nil, err
	}

	if opts.Preview != "" {
		if err := frame.SavePreview(opts.Preview); err != nil {
			return nil, err
		}
		if opts.Verbose {
			log.Printf("convert %s: preview written to %s", opts.Input, opts.Preview)
		}
	}

	return &Result{
		Output:       opts.Output,
		SourceWidth:  src.Width(),
		SourceHeight: src.Height(),
		Width:        frame.Image.Width(),
		Height:       frame.Image.Height(),
		PixelFormat:  frame.Format.String(),
		OutputFormat: opts.OutputFormat.String(),
		Flip:         frame.Flip.String(),
		Bits:         bits,
		Lines:        len(frame.Values),
		Preview:      opts.Preview,
	}, nil
}

// Frame is the quantized target grid, before text formatting.
type Frame struct {
	// Image is the resized and mirrored RGB grid.
	Image *imaging.Image

	// Values holds one word per pixel of Image in row-major order.
	Values []uint32

	Format memfile.PixelFormat
	Flip   imaging.FlipMode // resolved; never FlipAuto
}

// Process runs the resize, mirror and quantize stages on src.
func Process(src *imaging.Image, opts Options) (*Frame, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	q, err := memfile.NewQuantizer(opts.PixelFormat, opts.Threshold)
	if err != nil {
		return nil, err
	}

	resized, err := imaging.Resize(src, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	flip := opts.Flip.Resolve(resized.Width(), resized.Height())
	mirrored, err := imaging.Mirror(resized, flip)
	if err != nil {
		return nil, err
	}

	pix := mirrored.Pixels()
	values := make([]uint32, len(pix))
	for i, p := range pix {
		values[i] = q.Quantize(p.R, p.G, p.B)
	}

	return &Frame{
		Image:  mirrored,
		Values: values,
		Format: opts.PixelFormat,
		Flip:   flip,
	}, nil
}

// Dequantized renders Values back to RGB with memfile.Unpack.
func (f *Frame) Dequantized() (*imaging.Image, error) {
	pix := make([]imaging.RGB, len(f.Values))
	for i, v := range f.Values {
		r, g, b, err := memfile.Unpack(f.Format, v)
		if err != nil {
			return nil, err
		}
		pix[i] = imaging.RGB{R: r, G: g, B: b}
	}
	return imaging.New(f.Image.Width(), f.Image.Height(), pix)
}

// SavePreview writes the dequantized frame to path as PNG.
func (f *Frame) SavePreview(path string) error {
	img, err := f.Dequantized()
	if err != nil {
		return err
	}
	return imaging.SavePreview(path, img)
}

// PixelReport describes one target pixel and the token it produces.
type PixelReport struct {
	imaging.ColorResult
	Value uint32 `json:"value"`
	Token string `json:"token"`
}

// Sample reports the processed color at (x, y) and its token in format o.
func (f *Frame) Sample(x, y int, o memfile.OutputFormat) (*PixelReport, error) {
	c, err := imaging.SampleColor(f.Image, x, y)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	v := f.Values[y*f.Image.Width()+x]
	return &PixelReport{
		ColorResult: *c,
		Value:       v,
		Token:       memfile.FormatValue(v, f.Format.Bits(), o),
	}, nil
}
