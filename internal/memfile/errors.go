package memfile

import "fmt"

// PixelFormatError reports an unrecognized pixel format name.
type PixelFormatError struct {
	Value string
}

func (e *PixelFormatError) Error() string {
	return fmt.Sprintf("quantize: invalid pixel format %q (want RGB565, RGB332, GREY4 or BIN1)", e.Value)
}

// OutputFormatError reports an unrecognized output encoding.
type OutputFormatError struct {
	Value string
}

func (e *OutputFormatError) Error() string {
	return fmt.Sprintf("format: invalid output format %q (want bin or hex)", e.Value)
}

// WriteError reports that the memory file could not be created or written.
// The destination may hold partial output and should not be trusted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
