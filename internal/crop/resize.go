package crop

import (
	"math"

	"github.com/ironsheep/image-editor-mcp/internal/geometry"
)

// apply returns the rectangle after moving handle h by d.
func (s *Session) apply(h Handle, d geometry.Point) geometry.Rect {
	r := s.rect

	switch {
	case h == HandleMove:
		r.X = clamp(r.X+d.X, 0, s.bufW-r.Width)
		r.Y = clamp(r.Y+d.Y, 0, s.bufH-r.Height)
		return r
	case h.IsEdge() && s.ratio > 0:
		return s.resizeEdgeLocked(h, d)
	case h.IsEdge():
		return s.resizeFree(h, d)
	case h.IsCorner() && s.ratio > 0:
		return s.resizeCornerLocked(h, d)
	case h.IsCorner():
		return s.resizeFree(h, d)
	}
	return r
}

// resizeFree moves the edges named by h independently. The opposite edge of
// each affected axis stays put.
func (s *Session) resizeFree(h Handle, d geometry.Point) geometry.Rect {
	r := s.rect
	minSize := s.minSize

	switch h {
	case HandleN, HandleNE, HandleNW:
		bottom := r.Bottom()
		top := clamp(r.Y+d.Y, 0, bottom-minSize)
		r.Y, r.Height = top, bottom-top
	case HandleS, HandleSE, HandleSW:
		bottom := clamp(r.Bottom()+d.Y, r.Y+minSize, s.bufH)
		r.Height = bottom - r.Y
	}

	switch h {
	case HandleW, HandleNW, HandleSW:
		right := r.Right()
		left := clamp(r.X+d.X, 0, right-minSize)
		r.X, r.Width = left, right-left
	case HandleE, HandleNE, HandleSE:
		right := clamp(r.Right()+d.X, r.X+minSize, s.bufW)
		r.Width = right - r.X
	}

	return r
}

// resizeEdgeLocked resizes along the dragged axis and derives the other axis
// from the ratio, keeping the rectangle centered on that other axis.
func (s *Session) resizeEdgeLocked(h Handle, d geometry.Point) geometry.Rect {
	r := s.rect
	c := r.Center()
	ratio := s.ratio

	switch h {
	case HandleN, HandleS:
		minH := math.Max(s.minSize, s.minSize/ratio)
		maxH := s.bufW / ratio
		height := r.Height
		if h == HandleN {
			height -= d.Y
			maxH = math.Min(maxH, r.Bottom())
		} else {
			height += d.Y
			maxH = math.Min(maxH, s.bufH-r.Y)
		}
		if minH > maxH+geometry.Epsilon {
			return r
		}
		height = clamp(height, minH, maxH)
		width := height * ratio

		if h == HandleN {
			r.Y = r.Bottom() - height
		}
		r.Height, r.Width = height, width
		r.X = clamp(c.X-width/2, 0, s.bufW-width)

	case HandleE, HandleW:
		minW := math.Max(s.minSize, s.minSize*ratio)
		maxW := s.bufH * ratio
		width := r.Width
		if h == HandleW {
			width -= d.X
			maxW = math.Min(maxW, r.Right())
		} else {
			width += d.X
			maxW = math.Min(maxW, s.bufW-r.X)
		}
		if minW > maxW+geometry.Epsilon {
			return r
		}
		width = clamp(width, minW, maxW)
		height := width / ratio

		if h == HandleW {
			r.X = r.Right() - width
		}
		r.Width, r.Height = width, height
		r.Y = clamp(c.Y-height/2, 0, s.bufH-height)
	}

	return r
}

// resizeCornerLocked resizes from a corner with the opposite corner fixed.
// The horizontal and vertical pointer components are averaged into a single
// width change and the height follows from the ratio.
func (s *Session) resizeCornerLocked(h Handle, d geometry.Point) geometry.Rect {
	r := s.rect
	ratio := s.ratio

	sx, sy := 1.0, 1.0
	if h == HandleNW || h == HandleSW {
		sx = -1
	}
	if h == HandleNW || h == HandleNE {
		sy = -1
	}

	roomX := s.bufW - r.X
	if sx < 0 {
		roomX = r.Right()
	}
	roomY := s.bufH - r.Y
	if sy < 0 {
		roomY = r.Bottom()
	}

	minW := math.Max(s.minSize, s.minSize*ratio)
	maxW := math.Min(roomX, roomY*ratio)
	if minW > maxW+geometry.Epsilon {
		return r
	}

	dw := (sx*d.X + sy*d.Y*ratio) / 2
	width := clamp(r.Width+dw, minW, maxW)
	height := width / ratio

	if sx < 0 {
		r.X = r.Right() - width
	}
	if sy < 0 {
		r.Y = r.Bottom() - height
	}
	r.Width, r.Height = width, height
	return r
}
