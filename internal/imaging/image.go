package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is a single pixel with 8-bit red, green and blue samples.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Image is an immutable width x height grid of RGB pixels stored in
// row-major order.
//
// Image implements image.Image, so it can be handed directly to
// github.com/disintegration/imaging and the standard encoders. Every pixel
// reports full opacity.
type Image struct {
	width  int
	height int
	pix    []RGB
}

// New builds an Image from row-major pixels. The slice is copied.
//
// It returns a *DimensionError if width or height is not positive, and an
// error if len(pix) != width*height.
func New(width, height int, pix []RGB) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, &DimensionError{Width: width, Height: height}
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel count %d does not match %dx%d", len(pix), width, height)
	}
	cp := make([]RGB, len(pix))
	copy(cp, pix)
	return &Image{width: width, height: height, pix: cp}, nil
}

// FromImage normalizes any image.Image to an RGB grid.
//
// Colors are converted through the non-premultiplied NRGBA model and the
// alpha channel is dropped, so an RGBA source keeps its stored color
// samples regardless of transparency.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, &DimensionError{Width: w, Height: h}
	}

	pix := make([]RGB, 0, w*h)
	if n, ok := src.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := n.PixOffset(b.Min.X, y)
			for x := 0; x < w; x++ {
				pix = append(pix, RGB{R: n.Pix[i], G: n.Pix[i+1], B: n.Pix[i+2]})
				i += 4
			}
		}
		return &Image{width: w, height: h, pix: pix}, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			pix = append(pix, RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return &Image{width: w, height: h, pix: pix}, nil
}

// Width returns the number of columns.
func (m *Image) Width() int { return m.width }

// Height returns the number of rows.
func (m *Image) Height() int { return m.height }

// RGBAt returns the pixel at column x, row y. It panics if the coordinate is
// outside the grid.
func (m *Image) RGBAt(x, y int) RGB {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic(fmt.Sprintf("imaging: pixel (%d,%d) outside %dx%d grid", x, y, m.width, m.height))
	}
	return m.pix[y*m.width+x]
}

// Pixels returns a copy of all pixels in row-major order.
func (m *Image) Pixels() []RGB {
	cp := make([]RGB, len(m.pix))
	copy(cp, m.pix)
	return cp
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At implements image.Image. Coordinates outside the grid yield transparent
// black, as the standard library image types do.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return color.NRGBA{}
	}
	p := m.pix[y*m.width+x]
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xFF}
}

// fromNRGBA copies an imaging result back into an Image.
func fromNRGBA(n *image.NRGBA) *Image {
	b := n.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]RGB, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := n.PixOffset(b.Min.X, y)
		for x := 0; x < w; x++ {
			pix = append(pix, RGB{R: n.Pix[i], G: n.Pix[i+1], B: n.Pix[i+2]})
			i += 4
		}
	}
	return &Image{width: w, height: h, pix: pix}
}
