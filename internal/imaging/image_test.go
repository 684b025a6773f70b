package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// mustNew builds an Image or fails the test.
func mustNew(t *testing.T, width, height int, pix ...RGB) *Image {
	t.Helper()
	img, err := New(width, height, pix)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

// quadImage is the 2x2 red, green, blue, white grid.
func quadImage(t *testing.T) *Image {
	t.Helper()
	return mustNew(t, 2, 2,
		RGB{255, 0, 0}, RGB{0, 255, 0},
		RGB{0, 0, 255}, RGB{255, 255, 255},
	)
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 1},
		{"zero height", 1, 0},
		{"negative", -2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h, nil)
			var de *DimensionError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DimensionError, got %v", err)
			}
		})
	}
}

func TestNew_PixelCountMismatch(t *testing.T) {
	if _, err := New(2, 2, []RGB{{}}); err == nil {
		t.Error("New should fail when pixel count does not match dimensions")
	}
}

func TestNew_CopiesPixels(t *testing.T) {
	pix := []RGB{{1, 2, 3}}
	img := mustNew(t, 1, 1, pix...)
	pix[0] = RGB{9, 9, 9}
	if img.RGBAt(0, 0) != (RGB{1, 2, 3}) {
		t.Error("Image shares storage with caller slice")
	}

	out := img.Pixels()
	out[0] = RGB{7, 7, 7}
	if img.RGBAt(0, 0) != (RGB{1, 2, 3}) {
		t.Error("Pixels exposes internal storage")
	}
}

func TestImage_ImplementsImage(t *testing.T) {
	var _ image.Image = (*Image)(nil)

	img := quadImage(t)
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds: got %v", img.Bounds())
	}
	if got := img.At(1, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("At(1,0): got %v", got)
	}
	if got := img.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At outside bounds: got %v", got)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 12, 21))
	src.Set(10, 20, color.RGBA{1, 2, 3, 255})
	src.Set(11, 20, color.RGBA{4, 5, 6, 255})

	img, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if img.Width() != 2 || img.Height() != 1 {
		t.Fatalf("dimensions: got %dx%d", img.Width(), img.Height())
	}
	if img.RGBAt(0, 0) != (RGB{1, 2, 3}) || img.RGBAt(1, 0) != (RGB{4, 5, 6}) {
		t.Errorf("pixels: got %+v", img.Pixels())
	}
}

func TestFromImage_Empty(t *testing.T) {
	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("FromImage should fail for an empty image")
	}
}
