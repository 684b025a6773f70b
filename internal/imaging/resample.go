package imaging

import (
	"github.com/disintegration/imaging"
)

// Resize returns a new width x height Image sampled from src with
// nearest-neighbor resampling.
//
// Each target cell (x, y) takes the source pixel containing the cell centre:
//
//	srcX = floor((x + 0.5) * srcW / width)
//	srcY = floor((y + 0.5) * srcH / height)
//
// No interpolation or anti-aliasing is applied, so every output pixel is an
// exact copy of some source pixel. Resizing to the source dimensions returns
// an identical grid.
//
// It returns a *DimensionError if width or height is not positive.
func Resize(src *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, &DimensionError{Width: width, Height: height}
	}
	return fromNRGBA(imaging.Resize(src, width, height, imaging.NearestNeighbor)), nil
}
