package imaging

import (
	"path/filepath"
	"testing"
)

func TestSavePreview(t *testing.T) {
	src := quadImage(t)
	path := filepath.Join(t.TempDir(), "preview.png")

	if err := SavePreview(path, src); err != nil {
		t.Fatalf("SavePreview failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load of preview failed: %v", err)
	}
	want := src.Pixels()
	for i, p := range got.Pixels() {
		if p != want[i] {
			t.Errorf("pixel %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSavePreview_BadPath(t *testing.T) {
	if err := SavePreview("/nonexistent/dir/preview.png", quadImage(t)); err == nil {
		t.Error("SavePreview should fail for an unwritable path")
	}
}
