package memfile

import (
	"fmt"
	"strings"
)

// DefaultThreshold is the BIN1 luma threshold used when none is given.
const DefaultThreshold = 128

// PixelFormat is a fixed-width integer encoding of an RGB pixel.
type PixelFormat int

const (
	RGB565 PixelFormat = iota + 1
	RGB332
	Grey4
	Bin1
)

// PixelFormats lists every supported format in declaration order.
func PixelFormats() []PixelFormat {
	return []PixelFormat{RGB565, RGB332, Grey4, Bin1}
}

// ParsePixelFormat matches a format name case-insensitively.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RGB565":
		return RGB565, nil
	case "RGB332":
		return RGB332, nil
	case "GREY4":
		return Grey4, nil
	case "BIN1":
		return Bin1, nil
	}
	return 0, &PixelFormatError{Value: s}
}

func (f PixelFormat) String() string {
	switch f {
	case RGB565:
		return "RGB565"
	case RGB332:
		return "RGB332"
	case Grey4:
		return "GREY4"
	case Bin1:
		return "BIN1"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// Bits returns the word width of the format, or 0 for an invalid format.
func (f PixelFormat) Bits() int {
	switch f {
	case RGB565:
		return 16
	case RGB332:
		return 8
	case Grey4:
		return 4
	case Bin1:
		return 1
	}
	return 0
}

// Valid reports whether f is one of the declared formats.
func (f PixelFormat) Valid() bool {
	return f.Bits() != 0
}

// Luma returns round(0.299R + 0.587G + 0.114B) with halves rounded up.
func Luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// Quantizer converts pixels to words of a single PixelFormat.
type Quantizer struct {
	format    PixelFormat
	threshold int
}

// NewQuantizer returns a Quantizer for format. threshold only affects Bin1
// and is used as given: values above 255 map every pixel to 0 and values at
// or below 0 map every pixel to 1.
func NewQuantizer(format PixelFormat, threshold int) (*Quantizer, error) {
	if !format.Valid() {
		return nil, &PixelFormatError{Value: format.String()}
	}
	return &Quantizer{format: format, threshold: threshold}, nil
}

// Format returns the pixel format of q.
func (q *Quantizer) Format() PixelFormat { return q.format }

// Bits returns the word width of q.
func (q *Quantizer) Bits() int { return q.format.Bits() }

// Quantize maps one pixel to a word in [0, 2^Bits()-1].
func (q *Quantizer) Quantize(r, g, b uint8) uint32 {
	switch q.format {
	case RGB565:
		return uint32(r&0xF8)<<8 | uint32(g&0xFC)<<3 | uint32(b>>3)
	case RGB332:
		return uint32(r>>5)<<5 | uint32(g>>5)<<2 | uint32(b>>6)
	case Grey4:
		return uint32(Luma(r, g, b) >> 4)
	case Bin1:
		if int(Luma(r, g, b)) >= q.threshold {
			return 1
		}
		return 0
	}
	panic("memfile: quantizer has invalid format " + q.format.String())
}

// Unpack expands a word back to RGB.
//
// RGB565 and RGB332 return the retained high bits of each channel with the
// truncated low bits zero. Grey4 expands the nibble to v*0x11 on all three
// channels and Bin1 maps to black or white. Bits above the format width are
// ignored.
func Unpack(format PixelFormat, v uint32) (r, g, b uint8, err error) {
	switch format {
	case RGB565:
		return uint8(v>>11&0x1F) << 3, uint8(v>>5&0x3F) << 2, uint8(v&0x1F) << 3, nil
	case RGB332:
		return uint8(v>>5&0x07) << 5, uint8(v>>2&0x07) << 5, uint8(v&0x03) << 6, nil
	case Grey4:
		y := uint8(v&0x0F) * 0x11
		return y, y, y, nil
	case Bin1:
		if v&1 == 1 {
			return 0xFF, 0xFF, 0xFF, nil
		}
		return 0, 0, 0, nil
	}
	return 0, 0, 0, &PixelFormatError{Value: format.String()}
}
