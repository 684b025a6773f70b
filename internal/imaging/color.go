package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes one pixel of an Image.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // "#RRGGBB"
	RGB RGB      `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor reports the color at a pixel coordinate.
//
// Returns an error if (x, y) lies outside the image. The HSL values are
// rounded to whole degrees and percentages.
func SampleColor(img *Image, x, y int) (*ColorResult, error) {
	if x < 0 || x >= img.Width() || y < 0 || y >= img.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, img.Width(), img.Height())
	}

	p := img.RGBAt(x, y)
	c := toColorful(p)
	h, s, l := c.Hsl()

	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: strings.ToUpper(c.Hex()),
		RGB: p,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

func toColorful(p RGB) colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
}
