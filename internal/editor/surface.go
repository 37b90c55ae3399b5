package editor

import (
	"github.com/ironsheep/image-editor-mcp/internal/crop"
	"github.com/ironsheep/image-editor-mcp/internal/geometry"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Frame is what the rendering surface must show.
type Frame struct {
	// Buffer is the working buffer. Surfaces must treat it as read-only and
	// must not retain it past the next Present call.
	Buffer *imaging.PixelBuffer

	// Selection is the crop rectangle in buffer space, or nil.
	Selection *geometry.Rect

	// Handle is the handle being dragged, or crop.HandleNone.
	Handle crop.Handle

	// PixelsChanged is false when only the selection moved since the last
	// frame, so a surface may keep its cached image and redraw the overlay.
	PixelsChanged bool
}

// Surface receives redraw requests from the editor.
type Surface interface {
	Present(f Frame)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(f Frame)

// Present calls fn(f).
func (fn SurfaceFunc) Present(f Frame) { fn(f) }

type nopSurface struct{}

func (nopSurface) Present(Frame) {}

// Compose renders f into a new buffer with the selection, if any, drawn on
// top using style.
func Compose(f Frame, style imaging.OverlayStyle) (*imaging.PixelBuffer, error) {
	if f.Selection == nil {
		if err := f.Buffer.Validate(); err != nil {
			return nil, err
		}
		return f.Buffer.Clone(), nil
	}
	sel := f.Selection.Image(f.Buffer.Width, f.Buffer.Height)
	return imaging.DrawSelection(f.Buffer, sel, style)
}
