package imaging

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// FlipMode selects the axis an image is mirrored along.
type FlipMode int

const (
	// FlipNone leaves the image unchanged.
	FlipNone FlipMode = iota
	// FlipHorizontal reverses the column order within each row.
	FlipHorizontal
	// FlipVertical reverses the row order.
	FlipVertical
	// FlipAuto mirrors along the long axis: horizontal when width >= height,
	// vertical otherwise.
	FlipAuto
)

// ParseFlipMode parses a mirror mode token. Matching is case-insensitive and
// accepts "none", "h"/"horizontal", "v"/"vertical" and "auto".
func ParseFlipMode(s string) (FlipMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return FlipNone, nil
	case "h", "horizontal":
		return FlipHorizontal, nil
	case "v", "vertical":
		return FlipVertical, nil
	case "auto":
		return FlipAuto, nil
	}
	return FlipNone, &FlipModeError{Value: s}
}

func (m FlipMode) String() string {
	switch m {
	case FlipNone:
		return "none"
	case FlipHorizontal:
		return "h"
	case FlipVertical:
		return "v"
	case FlipAuto:
		return "auto"
	}
	return fmt.Sprintf("FlipMode(%d)", int(m))
}

// Resolve turns FlipAuto into a concrete axis for a width x height grid.
// Other modes are returned unchanged.
func (m FlipMode) Resolve(width, height int) FlipMode {
	if m != FlipAuto {
		return m
	}
	if width >= height {
		return FlipHorizontal
	}
	return FlipVertical
}

// Mirror returns src reversed along the axis selected by mode. FlipNone
// returns src itself. FlipAuto is resolved from the dimensions of src.
//
// It returns a *FlipModeError for values outside the FlipMode constants.
func Mirror(src *Image, mode FlipMode) (*Image, error) {
	switch mode.Resolve(src.Width(), src.Height()) {
	case FlipNone:
		return src, nil
	case FlipHorizontal:
		return fromNRGBA(imaging.FlipH(src)), nil
	case FlipVertical:
		return fromNRGBA(imaging.FlipV(src)), nil
	}
	return nil, &FlipModeError{Value: mode.String()}
}
