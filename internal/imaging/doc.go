// Package imaging provides the pixel-grid stages of the image-to-memfile
// pipeline: loading, nearest-neighbor resampling and axis mirroring.
//
// All stages operate on *Image, an immutable row-major grid of 8-bit RGB
// triples with its origin at the top-left corner. Any decoded source
// (paletted, greyscale, RGBA, CMYK, YCbCr) is normalized to RGB on load and
// alpha is discarded.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Supported Formats
//
// PNG, JPEG and GIF decoders come from the standard library. BMP, TIFF and
// WebP decoders are registered from golang.org/x/image.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. *Image values are never
// mutated after construction and may be shared freely between goroutines.
//
// # Error Handling
//
// Failures are reported with typed errors that callers can match with
// errors.As:
//   - *DecodeError: the source file cannot be read or is not an image
//   - *DimensionError: a requested width or height is not positive
//   - *FlipModeError: an unrecognized mirror mode
package imaging
