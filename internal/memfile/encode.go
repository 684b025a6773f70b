package memfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputFormat selects the text alphabet of a memory file.
type OutputFormat int

const (
	Bin OutputFormat = iota + 1
	Hex
)

// ParseOutputFormat matches "bin" or "hex" case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bin":
		return Bin, nil
	case "hex":
		return Hex, nil
	}
	return 0, &OutputFormatError{Value: s}
}

func (o OutputFormat) String() string {
	switch o {
	case Bin:
		return "bin"
	case Hex:
		return "hex"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(o))
}

// Width returns the token length for a word of the given bit width.
func (o OutputFormat) Width(bits int) int {
	if o == Hex {
		return max(1, (bits+3)/4)
	}
	return bits
}

// FormatValue renders v as a zero-padded token of exactly o.Width(bits)
// characters. v must fit in bits.
func FormatValue(v uint32, bits int, o OutputFormat) string {
	if o == Hex {
		return fmt.Sprintf("%0*X", o.Width(bits), v)
	}
	return fmt.Sprintf("%0*b", bits, v)
}

// Encoder writes one token per line to an underlying writer.
type Encoder struct {
	w     *bufio.Writer
	bits  int
	out   OutputFormat
	count int
}

// NewEncoder returns an Encoder for bits-wide words in format o.
func NewEncoder(w io.Writer, bits int, o OutputFormat) (*Encoder, error) {
	if o != Bin && o != Hex {
		return nil, &OutputFormatError{Value: o.String()}
	}
	if bits < 1 || bits > 32 {
		return nil, fmt.Errorf("format: word width %d outside 1..32", bits)
	}
	return &Encoder{w: bufio.NewWriter(w), bits: bits, out: o}, nil
}

// Encode writes v followed by a newline.
func (e *Encoder) Encode(v uint32) error {
	if _, err := e.w.WriteString(FormatValue(v, e.bits, e.out)); err != nil {
		return err
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return err
	}
	e.count++
	return nil
}

// Flush writes any buffered tokens to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Count returns the number of lines encoded so far.
func (e *Encoder) Count() int {
	return e.count
}

// Write encodes every value, in order, to w and flushes.
func Write(w io.Writer, values []uint32, bits int, o OutputFormat) error {
	enc, err := NewEncoder(w, bits, o)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return enc.Flush()
}

// WriteFile creates path and writes values to it, one token per line.
//
// The file is always closed, including on error paths. I/O failures are
// returned as *WriteError; a partially written file is left in place.
func WriteFile(path string, values []uint32, bits int, o OutputFormat) (err error) {
	if o != Bin && o != Hex {
		return &OutputFormatError{Value: o.String()}
	}
	if bits < 1 || bits > 32 {
		return fmt.Errorf("format: word width %d outside 1..32", bits)
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	if err := Write(f, values, bits, o); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
