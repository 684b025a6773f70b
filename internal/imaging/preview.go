package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/imgio"
)

// SavePreview writes img to path as a PNG file.
func SavePreview(path string, img *Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("preview %s: %w", path, err)
	}
	return nil
}
