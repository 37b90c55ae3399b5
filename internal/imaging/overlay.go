package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// OverlayStyle controls how a selection is drawn over a frame.
type OverlayStyle struct {
	// Color of the outline and handles.
	Color color.NRGBA

	// Shade darkens everything outside the selection: 0 leaves it untouched,
	// 1 paints it black.
	Shade float64

	// HandleSize is the side length in pixels of the square drawn at each
	// corner and edge midpoint. Zero draws the outline only.
	HandleSize int
}

// DefaultOverlayStyle is a white outline with half-dimmed surroundings.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		Color:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Shade:      0.5,
		HandleSize: 7,
	}
}

// ParseOverlayColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseOverlayColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("overlay color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// DrawSelection renders base with the selection sel outlined on top. base is
// not modified. sel is clipped to base's bounds.
func DrawSelection(base *PixelBuffer, sel image.Rectangle, style OverlayStyle) (*PixelBuffer, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	out := base.Clone()
	sel = sel.Intersect(out.Bounds())
	if sel.Empty() {
		return out, nil
	}

	if style.Shade > 0 {
		keep := 1 - math.Min(style.Shade, 1)
		stride := 4 * out.Width
		parallel.Line(out.Height, func(start, end int) {
			for y := start; y < end; y++ {
				row := out.Pix[y*stride : (y+1)*stride]
				for x := 0; x < out.Width; x++ {
					if image.Pt(x, y).In(sel) {
						continue
					}
					i := 4 * x
					row[i] = uint8(float64(row[i]) * keep)
					row[i+1] = uint8(float64(row[i+1]) * keep)
					row[i+2] = uint8(float64(row[i+2]) * keep)
				}
			}
		})
	}

	c := style.Color
	for x := sel.Min.X; x < sel.Max.X; x++ {
		out.Set(x, sel.Min.Y, c)
		out.Set(x, sel.Max.Y-1, c)
	}
	for y := sel.Min.Y; y < sel.Max.Y; y++ {
		out.Set(sel.Min.X, y, c)
		out.Set(sel.Max.X-1, y, c)
	}

	if style.HandleSize > 0 {
		midX := (sel.Min.X + sel.Max.X - 1) / 2
		midY := (sel.Min.Y + sel.Max.Y - 1) / 2
		for _, p := range []image.Point{
			{sel.Min.X, sel.Min.Y}, {midX, sel.Min.Y}, {sel.Max.X - 1, sel.Min.Y},
			{sel.Min.X, midY}, {sel.Max.X - 1, midY},
			{sel.Min.X, sel.Max.Y - 1}, {midX, sel.Max.Y - 1}, {sel.Max.X - 1, sel.Max.Y - 1},
		} {
			fillSquare(out, p, style.HandleSize, c)
		}
	}

	return out, nil
}

// fillSquare paints a size x size square centered on p, clipped to b.
func fillSquare(b *PixelBuffer, p image.Point, size int, c color.NRGBA) {
	half := size / 2
	r := image.Rect(p.X-half, p.Y-half, p.X-half+size, p.Y-half+size).Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Set(x, y, c)
		}
	}
}

// ImageResult is a frame encoded for transport.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes b as a base64 PNG, optionally resized by scale.
// A scale of 1 or less than or equal to 0 keeps the original size.
func EncodePNGBase64(b *PixelBuffer, scale float64) (*ImageResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var img image.Image = b.NRGBA()
	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(b.Width)*scale))
		newHeight := max(1, int(float64(b.Height)*scale))
		img = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
