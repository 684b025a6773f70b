package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode reads an image from r and normalizes it to RGB.
//
// The registered format name ("png", "jpeg", "gif", "bmp", "tiff", "webp")
// is returned alongside the image. Any failure is a *DecodeError with an
// empty Path.
func Decode(r io.Reader) (*Image, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	img, err := FromImage(src)
	if err != nil {
		return nil, format, &DecodeError{Err: err}
	}
	return img, format, nil
}

// Load opens and decodes the image file at path.
//
// # Errors
//
//   - Returns *DecodeError if the file does not exist or cannot be read
//   - Returns *DecodeError if the file is not a recognized image format
//   - Returns *DecodeError if the decoded image has no pixels
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return img, nil
}

// ImageCache provides thread-safe caching of loaded images to avoid redundant
// disk reads.
//
// The cache stores normalized *Image values keyed by their file path. Once an
// image is loaded, subsequent Load() calls for the same path return the cached
// copy without disk I/O. Different paths to the same file (relative vs
// absolute) result in separate cache entries.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
// Errors are the same as the package-level Load and are never cached.
func (c *ImageCache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Contains reports whether path is currently cached.
func (c *ImageCache) Contains(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.images[path]
	return ok
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a source image file, read from its header.
type ImageInfo struct {
	// Width is the source width in pixels.
	Width int `json:"width"`

	// Height is the source height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the file: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp". Detection is based on file contents.
	Format string `json:"format"`

	// ColorModel names the source color representation before RGB
	// normalization, e.g. "rgba", "paletted", "gray", "ycbcr".
	ColorModel string `json:"color_model"`

	// HasAlpha indicates whether the source carries an alpha channel that
	// the loader will discard.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo reads the header of the image at path without decoding the
// pixel data. Failures are reported as *DecodeError.
func LoadImageInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("failed to stat file: %w", err)}
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	model, hasAlpha := describeModel(cfg.ColorModel)
	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		ColorModel:    model,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image, loading it into the cache
// if not already present.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  img.Width(),
		Height: img.Height(),
	}, nil
}

// describeModel names a decoder color model and reports whether it can
// carry transparency.
func describeModel(m color.Model) (string, bool) {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xFFFF {
				return "paletted", true
			}
		}
		return "paletted", false
	}
	switch m {
	case color.RGBAModel:
		return "rgba", true
	case color.NRGBAModel:
		return "nrgba", true
	case color.RGBA64Model:
		return "rgba64", true
	case color.NRGBA64Model:
		return "nrgba64", true
	case color.GrayModel:
		return "gray", false
	case color.Gray16Model:
		return "gray16", false
	case color.YCbCrModel:
		return "ycbcr", false
	case color.NYCbCrAModel:
		return "nycbcra", true
	case color.CMYKModel:
		return "cmyk", false
	case color.AlphaModel, color.Alpha16Model:
		return "alpha", true
	}
	return "unknown", false
}
