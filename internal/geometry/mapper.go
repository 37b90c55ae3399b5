package geometry

import "fmt"

// DisplayRect is the on-screen placement of the rendering surface, in the
// units the input device reports (CSS pixels, points, window pixels).
type DisplayRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sized reports whether the surface has a usable, positive size.
func (d DisplayRect) Sized() bool {
	return d.Width > 0 && d.Height > 0
}

// IdentityDisplay returns a display rectangle that maps one display unit to
// one buffer pixel.
func IdentityDisplay(bufWidth, bufHeight int) DisplayRect {
	return DisplayRect{Width: float64(bufWidth), Height: float64(bufHeight)}
}

// MapToBuffer converts a pointer position in display units to buffer space,
// compensating for the difference between the surface's displayed size and
// the buffer's intrinsic resolution.
//
//	scaleX = bufWidth / display.Width
//	scaleY = bufHeight / display.Height
//	result = ((p.X - display.Left) * scaleX, (p.Y - display.Top) * scaleY)
//
// An unsized display returns ErrSurfaceNotSized rather than NaN coordinates.
func MapToBuffer(p Point, display DisplayRect, bufWidth, bufHeight int) (Point, error) {
	if !display.Sized() {
		return Point{}, fmt.Errorf("map (%.1f,%.1f): %w", p.X, p.Y, ErrSurfaceNotSized)
	}
	scaleX := float64(bufWidth) / display.Width
	scaleY := float64(bufHeight) / display.Height
	return Point{
		X: (p.X - display.Left) * scaleX,
		Y: (p.Y - display.Top) * scaleY,
	}, nil
}
