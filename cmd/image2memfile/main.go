package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image2memfile/internal/convert"
	"github.com/ironsheep/image2memfile/internal/imaging"
	"github.com/ironsheep/image2memfile/internal/memfile"
	"github.com/ironsheep/image2memfile/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errUsage marks argument errors that should exit with status 2.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "image2memfile %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "serve":
			return serve(stderr)
		}
	}

	// Configure logging to stderr (stdout may carry the memory file)
	log.SetOutput(stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	opts, sample, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "Run 'image2memfile --help' for usage.")
			return 2
		}
		return 1
	}
	opts.Verbose = os.Getenv("IMAGE2MEMFILE_LOG_LEVEL") == "debug"
	if opts.Verbose {
		log.Printf("image2memfile v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	src, err := imaging.Load(opts.Input)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	res, err := convert.RunImage(src, opts, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if sample != nil {
		frame, err := convert.Process(src, opts)
		if err == nil {
			var rep *convert.PixelReport
			rep, err = frame.Sample(sample.X, sample.Y, opts.OutputFormat)
			if err == nil {
				fmt.Fprintf(stderr, "pixel (%d,%d): %s -> %s\n", rep.X, rep.Y, rep.Hex, rep.Token)
			}
		}
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	done := stdout
	if res.Output == convert.StdoutPath {
		done = stderr
	}
	fmt.Fprintf(done, "Done: %s\n", res.Output)
	return 0
}

func serve(stderr io.Writer) int {
	// stdout is reserved for the MCP protocol
	log.SetOutput(stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("IMAGE2MEMFILE_LOG_LEVEL") == "debug" {
		log.Printf("image2memfile MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

// parseArgs parses "<input> <output> [flags]"; flags may precede, follow or
// sit between the positional arguments.
func parseArgs(args []string, stderr io.Writer) (convert.Options, *point, error) {
	opts := convert.Defaults()

	fs := flag.NewFlagSet("image2memfile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }

	width := fs.Int("width", opts.Width, "Target width in pixels")
	height := fs.Int("height", opts.Height, "Target height in pixels")
	pixfmt := fs.String("pixfmt", opts.PixelFormat.String(), "Pixel format: RGB565, RGB332, GREY4 or BIN1")
	out := fs.String("out", opts.OutputFormat.String(), "Line format: bin for $readmemb, hex for $readmemh")
	flip := fs.String("flip", opts.Flip.String(), "Mirror axis: none, h, v or auto (h when width >= height, else v)")
	thresh := fs.Int("thresh", opts.Threshold, "BIN1 luma threshold (0-255)")
	preview := fs.String("preview", "", "Also write a PNG rendering of the quantized image to this path")
	sampleArg := fs.String("sample", "", "Report the processed color and token of target pixel `x,y` on stderr")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return opts, nil, err
			}
			return opts, nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	if len(positional) != 2 {
		return opts, nil, fmt.Errorf("%w: expected <input-image> <output-text>, got %d arguments", errUsage, len(positional))
	}
	opts.Input, opts.Output = positional[0], positional[1]

	var err error
	opts.Width, opts.Height = *width, *height
	if opts.PixelFormat, err = memfile.ParsePixelFormat(*pixfmt); err != nil {
		return opts, nil, err
	}
	if opts.OutputFormat, err = memfile.ParseOutputFormat(*out); err != nil {
		return opts, nil, err
	}
	if opts.Flip, err = imaging.ParseFlipMode(*flip); err != nil {
		return opts, nil, err
	}
	opts.Threshold = *thresh
	opts.Preview = *preview

	var sample *point
	if *sampleArg != "" {
		if sample, err = parsePoint(*sampleArg); err != nil {
			return opts, nil, fmt.Errorf("%w: --sample: %v", errUsage, err)
		}
	}

	return opts, sample, opts.Validate()
}

type point struct {
	X, Y int
}

func parsePoint(s string) (*point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return nil, fmt.Errorf("invalid x in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return nil, fmt.Errorf("invalid y in %q", s)
	}
	return &point{X: x, Y: y}, nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "image2memfile - dump image pixels one value per line for $readmemb/$readmemh")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image2memfile <input-image> <output-text> [options]")
	fmt.Fprintln(w, "  image2memfile serve")
	fmt.Fprintln(w, "  image2memfile --version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "An output of - writes the memory file to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  IMAGE2MEMFILE_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'serve' runs an MCP server over stdin/stdout exposing the conversion as tools.")
}
