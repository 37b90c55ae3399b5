package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// SubBuffer extracts the region r of b into a new buffer whose pixel (i, j)
// is b's pixel (r.Min.X+i, r.Min.Y+j).
func SubBuffer(b *PixelBuffer, r image.Rectangle) (*PixelBuffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !r.In(b.Bounds()) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, b.Bounds())
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: empty", r)
	}
	return fromNRGBA(imaging.Crop(b.NRGBA(), r))
}

// Rotate90 returns b rotated a quarter turn clockwise. Width and height swap.
func Rotate90(b *PixelBuffer) (*PixelBuffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return fromNRGBA(imaging.Rotate270(b.NRGBA()))
}
