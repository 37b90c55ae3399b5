package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage writes a solid PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

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

func TestNewBufferCache(t *testing.T) {
	cache := NewBufferCache()
	if cache == nil {
		t.Fatal("NewBufferCache returned nil")
	}
	if cache.Len() != 0 {
		t.Fatalf("new cache has %d entries", cache.Len())
	}
}

func TestBufferCache_Load(t *testing.T) {
	cache := NewBufferCache()
	path := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	b1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b1.Width != 100 || b1.Height != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", b1.Width, b1.Height)
	}
	if got := b1.At(10, 10); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want opaque red", got)
	}

	b2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if b1 != b2 {
		t.Error("second Load did not return cached buffer")
	}
}

func TestBufferCache_Load_NonExistent(t *testing.T) {
	cache := NewBufferCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestBufferCache_Load_InvalidImage(t *testing.T) {
	cache := NewBufferCache()
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestBufferCache_Evict(t *testing.T) {
	cache := NewBufferCache()
	path := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	if cache.Len() != 0 {
		t.Error("Evict did not remove buffer from cache")
	}

	// Unknown paths are ignored.
	cache.Evict("/nonexistent/path")
}

func TestBufferCache_ConcurrentAccess(t *testing.T) {
	cache := NewBufferCache()
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
	cache := NewBufferCache()
	path := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	b, info, err := LoadImageInfo(cache, path)
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
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
	if b.Width != 200 {
		t.Errorf("buffer width: got %d, want 200", b.Width)
	}
}

func TestEncodeDecode(t *testing.T) {
	src := gradientBuffer(t, 12, 9)

	var buf bytes.Buffer
	if err := Encode(&buf, src, "png", EncodeOptions{}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !got.Equal(src) {
		t.Error("PNG round trip changed pixels")
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, gradientBuffer(t, 2, 2), ".webp", EncodeOptions{}); err == nil {
		t.Error("Encode should fail for unsupported format")
	}
}

func TestSave(t *testing.T) {
	src := solidBuffer(t, 30, 20, color.NRGBA{0, 128, 255, 255})
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg"} {
		path := filepath.Join(dir, name)
		if err := Save(src, path, EncodeOptions{JPEGQuality: 90}); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		b, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", name, err)
		}
		if b.Width != 30 || b.Height != 20 {
			t.Errorf("%s dimensions: got %dx%d, want 30x20", name, b.Width, b.Height)
		}
	}

	if err := Save(src, filepath.Join(dir, "out.xyz"), EncodeOptions{}); err == nil {
		t.Error("Save should fail for unknown extension")
	}
}
