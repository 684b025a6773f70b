package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage creates a solid-color PNG file and returns its path.
// The file is removed when the test finishes.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, img)
}

// writePNG encodes img to a temp PNG file and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := createTestImage(t, 30, 20, color.RGBA{255, 128, 64, 255})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Width() != 30 || img.Height() != 20 {
		t.Errorf("unexpected dimensions: got %dx%d, want 30x20", img.Width(), img.Height())
	}
	if got := img.RGBAt(5, 5); got != (RGB{255, 128, 64}) {
		t.Errorf("pixel: got %+v, want {255 128 64}", got)
	}
}

func TestLoad_NormalizesColorModels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 200})
	gray.SetGray(1, 0, color.Gray{Y: 7})

	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.RGBA{10, 20, 30, 255},
		color.RGBA{250, 0, 5, 255},
	})
	pal.SetColorIndex(0, 0, 1)
	pal.SetColorIndex(1, 0, 0)

	// Alpha is dropped; the stored color samples survive.
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{100, 150, 200, 128})
	nrgba.SetNRGBA(1, 0, color.NRGBA{1, 2, 3, 255})

	tests := []struct {
		name string
		img  image.Image
		want []RGB
	}{
		{"gray", gray, []RGB{{200, 200, 200}, {7, 7, 7}}},
		{"paletted", pal, []RGB{{250, 0, 5}, {10, 20, 30}}},
		{"nrgba with alpha", nrgba, []RGB{{100, 150, 200}, {1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Load(writePNG(t, tt.img))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			got := img.Pixels()
			if len(got) != len(tt.want) {
				t.Fatalf("pixel count: got %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pixel %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
	}
	if de.Path != "/nonexistent/path/to/image.png" {
		t.Errorf("Path: got %q", de.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("DecodeError should wrap os.ErrNotExist")
	}
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
	}
	if de.Path != path {
		t.Errorf("Path: got %q, want %q", de.Path, path)
	}
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_ErrorNotCached(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/image.png"); err == nil {
		t.Fatal("Load should fail for non-existent file")
	}
	if len(cache.images) != 0 {
		t.Error("failed load was cached")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 10, 10, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cache.Contains(path) {
		t.Error("Contains should report a loaded image")
	}
	cache.Evict(path)
	if cache.Contains(path) {
		t.Error("Evict did not remove image from cache")
	}

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if len(cache.images) != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", len(cache.images))
	}

	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	path := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_ColorModel(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	info, err := LoadImageInfo(writePNG(t, gray))
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.ColorModel != "gray" {
		t.Errorf("ColorModel: got %s, want gray", info.ColorModel)
	}
	if info.HasAlpha {
		t.Error("gray image should not report alpha")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := LoadImageInfo("/nonexistent/image.png")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Errorf("expected *DecodeError, got %T", err)
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 300, 200, color.RGBA{100, 100, 100, 255})

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 300x200", dims.Width, dims.Height)
	}
}
