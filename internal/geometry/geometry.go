// Package geometry holds the buffer-space primitives shared by the crop
// session and the editor, and the mapper that turns pointer positions on a
// rendering surface into buffer coordinates.
//
// Buffer space has its origin at the top-left pixel, X grows rightward and
// Y grows downward. Values are float64 so that sub-pixel pointer movement
// accumulates without rounding drift; integer pixel rectangles are produced
// only when a selection is committed.
package geometry

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Epsilon is the tolerance used for every floating point comparison on
// buffer-space geometry.
const Epsilon = 1e-6

// ErrSurfaceNotSized is returned when the rendering surface has a zero or
// negative display size and pointer positions cannot be mapped.
var ErrSurfaceNotSized = errors.New("rendering surface has not been sized")

// Point is a position in buffer or display space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle in buffer space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X-Epsilon && p.X <= r.Right()+Epsilon &&
		p.Y >= r.Y-Epsilon && p.Y <= r.Bottom()+Epsilon
}

// Within reports whether r lies entirely inside [0,w]x[0,h].
func (r Rect) Within(w, h float64) bool {
	return r.X >= -Epsilon && r.Y >= -Epsilon &&
		r.Right() <= w+Epsilon && r.Bottom() <= h+Epsilon
}

// Ratio returns Width/Height, or 0 for a degenerate rectangle.
func (r Rect) Ratio() float64 {
	if r.Height <= 0 {
		return 0
	}
	return r.Width / r.Height
}

// Image rounds each edge of r to the nearest pixel boundary and intersects
// the result with the w x h buffer.
func (r Rect) Image(w, h int) image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.Right()))
	y1 := int(math.Round(r.Bottom()))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, w, h))
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", r.X, r.Y, r.Width, r.Height)
}

// NearlyEqual compares two values with Epsilon tolerance.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
