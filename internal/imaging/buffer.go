package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrInvalidBufferDimensions marks a pixel buffer whose size fields and pixel
// slice disagree, or whose width or height is not positive. It indicates
// corrupted input from a decoder and is never recoverable by the editor.
var ErrInvalidBufferDimensions = errors.New("invalid buffer dimensions")

// PixelBuffer is an 8-bit straight-alpha RGBA raster.
//
// Pixels are stored row-major with four bytes per pixel and no padding, so
// the pixel at (x, y) starts at Pix[4*(y*Width+x)]. The layout matches
// image.NRGBA with Stride = 4*Width, which lets the buffer be handed to the
// imaging library without copying.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed (transparent black) buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidBufferDimensions)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}, nil
}

// Validate checks the buffer invariants.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", ErrInvalidBufferDimensions)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", b.Width, b.Height, ErrInvalidBufferDimensions)
	}
	if want := 4 * b.Width * b.Height; len(b.Pix) != want {
		return fmt.Errorf("%dx%d with %d bytes, want %d: %w",
			b.Width, b.Height, len(b.Pix), want, ErrInvalidBufferDimensions)
	}
	return nil
}

// Clone returns a deep copy.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Equal reports whether both buffers have the same size and identical bytes.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Width == o.Width && b.Height == o.Height && bytes.Equal(b.Pix, o.Pix)
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At returns the pixel at (x, y). The caller must stay inside Bounds.
func (b *PixelBuffer) At(x, y int) color.NRGBA {
	i := 4 * (y*b.Width + x)
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the pixel at (x, y). The caller must stay inside Bounds.
func (b *PixelBuffer) Set(x, y int, c color.NRGBA) {
	i := 4 * (y*b.Width + x)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
}

// NRGBA returns an image view sharing the buffer's pixel memory.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: 4 * b.Width,
		Rect:   b.Bounds(),
	}
}

// FromImage copies any image into a new buffer, converting to straight
// alpha RGBA and moving the origin to (0,0).
func FromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image: %w", ErrInvalidBufferDimensions)
	}
	return fromNRGBA(imaging.Clone(img))
}

// fromNRGBA adopts img's pixel memory when its layout already matches and
// copies otherwise.
func fromNRGBA(img *image.NRGBA) (*PixelBuffer, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Rect.Min != (image.Point{}) || img.Stride != 4*w || len(img.Pix) != 4*w*h {
		img = imaging.Clone(img)
	}
	b := &PixelBuffer{Width: w, Height: h, Pix: img.Pix}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
