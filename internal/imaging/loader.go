package imaging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// Decode reads an encoded PNG, JPEG, GIF, BMP or TIFF image from r into a new
// buffer. EXIF orientation is applied so the buffer is upright.
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// Open decodes the image file at path.
func Open(path string) (*PixelBuffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return FromImage(img)
}

// EncodeOptions tunes Encode and Save.
type EncodeOptions struct {
	// JPEGQuality is used for JPEG output, 1-100. Zero selects 95.
	JPEGQuality int
}

func (o EncodeOptions) imagingOptions() []imaging.EncodeOption {
	q := o.JPEGQuality
	if q <= 0 || q > 100 {
		q = 95
	}
	return []imaging.EncodeOption{imaging.JPEGQuality(q)}
}

// Encode writes b to w in the format named by ext (".png", "jpg", ...).
func Encode(w io.Writer, b *PixelBuffer, ext string, opts EncodeOptions) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", ext, err)
	}
	if err := imaging.Encode(w, b.NRGBA(), format, opts.imagingOptions()...); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Save encodes b to path, choosing the format from the file extension.
func Save(b *PixelBuffer, path string, opts EncodeOptions) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output format for %s: %w", path, err)
	}
	if err := imaging.Save(b.NRGBA(), path, opts.imagingOptions()...); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// BufferCache keeps decoded buffers keyed by file path so reloading the same
// file skips disk I/O and decoding.
//
// BufferCache is safe for concurrent use. Buffers handed out are shared;
// callers must Clone before mutating one.
type BufferCache struct {
	mu      sync.RWMutex
	buffers map[string]*PixelBuffer
}

// NewBufferCache creates an empty cache.
func NewBufferCache() *BufferCache {
	return &BufferCache{
		buffers: make(map[string]*PixelBuffer),
	}
}

// Load returns the cached buffer for path or decodes the file.
//
// The cache key is the exact path string, so relative and absolute spellings
// of the same file are cached separately.
func (c *BufferCache) Load(path string) (*PixelBuffer, error) {
	c.mu.RLock()
	if b, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	b, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[path] = b
	c.mu.Unlock()

	return b, nil
}

// Evict removes a path from the cache. Unknown paths are ignored.
func (c *BufferCache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Len returns the number of cached buffers.
func (c *BufferCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// LoadImageInfo loads path through the cache and describes it.
//
// The format is derived from the file extension: "png", "jpeg", "gif",
// "bmp", "tiff", or "unknown".
func LoadImageInfo(cache *BufferCache, path string) (*PixelBuffer, *ImageInfo, error) {
	b, err := cache.Load(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	}

	return b, &ImageInfo{
		Width:         b.Width,
		Height:        b.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
