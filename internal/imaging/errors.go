package imaging

import "fmt"

// DecodeError reports that an input image could not be read or decoded.
type DecodeError struct {
	Path string // Source path, empty when decoding from a stream
	Err  error  // Underlying cause
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DimensionError reports a non-positive target width or height.
type DimensionError struct {
	Width  int
	Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("resize: invalid dimensions %dx%d (width and height must be > 0)", e.Width, e.Height)
}

// FlipModeError reports an unrecognized mirror mode.
type FlipModeError struct {
	Value string
}

func (e *FlipModeError) Error() string {
	return fmt.Sprintf("mirror: invalid flip mode %q (want none, h, v or auto)", e.Value)
}
