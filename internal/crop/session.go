package crop

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-editor-mcp/internal/geometry"
)

// Session is the crop selection state machine.
//
// A Session is not safe for concurrent use; the editor drives it from a
// single event loop.
type Session struct {
	cfg   Config
	state State

	bufW, bufH float64
	minSize    float64

	rect  geometry.Rect
	drag  *DragState
	ratio float64 // 0 = free
}

// NewSession creates an inactive session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg.withDefaults()}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Active reports whether a selection exists.
func (s *Session) Active() bool { return s.state != StateInactive }

// Rect returns the selection and whether one exists.
func (s *Session) Rect() (geometry.Rect, bool) {
	return s.rect, s.Active()
}

// Drag returns a copy of the drag in progress, or nil.
func (s *Session) Drag() *DragState {
	if s.drag == nil {
		return nil
	}
	d := *s.drag
	return &d
}

// AspectRatio returns the locked width/height ratio, or 0 when free.
func (s *Session) AspectRatio() float64 { return s.ratio }

// Start begins a selection on a bufW x bufH buffer. The rectangle is centered
// with each side half of the buffer's shorter dimension. Starting an active
// session re-initializes it.
func (s *Session) Start(bufW, bufH int) error {
	if bufW <= 0 || bufH <= 0 {
		return fmt.Errorf("start crop on %dx%d buffer: invalid size", bufW, bufH)
	}

	w, h := float64(bufW), float64(bufH)
	minSize := math.Min(s.cfg.MinSize, math.Min(w, h))
	if s.ratio > 0 && !ratioFits(s.ratio, w, h, minSize) {
		return fmt.Errorf("start crop on %dx%d buffer with ratio %v: %w", bufW, bufH, s.ratio, ErrInvalidAspectRatio)
	}

	s.bufW, s.bufH = w, h
	s.minSize = minSize

	side := 0.5 * math.Min(s.bufW, s.bufH)
	side = math.Max(side, s.minSize)
	s.rect = geometry.Rect{
		X:      (s.bufW - side) / 2,
		Y:      (s.bufH - side) / 2,
		Width:  side,
		Height: side,
	}
	if s.ratio > 0 {
		s.rect = s.fitRatio(s.rect)
	}

	s.drag = nil
	s.state = StateActiveIdle
	return nil
}

// HitTest returns the handle under p, or HandleNone.
//
// Corners are checked first (NW, NE, SW, SE), then edges (N, S, E, W), then
// the interior.
func (s *Session) HitTest(p geometry.Point) Handle {
	if !s.Active() {
		return HandleNone
	}
	r := s.rect
	tol := s.cfg.HitTolerance

	corners := []struct {
		h    Handle
		x, y float64
	}{
		{HandleNW, r.X, r.Y},
		{HandleNE, r.Right(), r.Y},
		{HandleSW, r.X, r.Bottom()},
		{HandleSE, r.Right(), r.Bottom()},
	}
	for _, c := range corners {
		if math.Hypot(p.X-c.x, p.Y-c.y) <= tol {
			return c.h
		}
	}

	inX := p.X >= r.X && p.X <= r.Right()
	inY := p.Y >= r.Y && p.Y <= r.Bottom()
	switch {
	case inX && math.Abs(p.Y-r.Y) <= tol:
		return HandleN
	case inX && math.Abs(p.Y-r.Bottom()) <= tol:
		return HandleS
	case inY && math.Abs(p.X-r.Right()) <= tol:
		return HandleE
	case inY && math.Abs(p.X-r.X) <= tol:
		return HandleW
	}

	if r.Contains(p) {
		return HandleMove
	}
	return HandleNone
}

// PointerDown starts a drag if p is over a handle. It returns the handle
// grabbed, or HandleNone when nothing was hit or no selection is idle.
func (s *Session) PointerDown(p geometry.Point) Handle {
	if s.state != StateActiveIdle {
		return HandleNone
	}
	h := s.HitTest(p)
	if h == HandleNone {
		return HandleNone
	}
	s.drag = &DragState{Handle: h, Anchor: p}
	s.state = StateDragging
	return h
}

// PointerMove applies the drag step from the anchor to p. It returns false,
// leaving everything untouched, when no drag is in progress.
func (s *Session) PointerMove(p geometry.Point) bool {
	if s.state != StateDragging || s.drag == nil {
		return false
	}
	delta := p.Sub(s.drag.Anchor)
	s.rect = s.apply(s.drag.Handle, delta)
	s.drag.Anchor = p
	return true
}

// PointerUp ends the drag. It returns false when no drag was in progress.
func (s *Session) PointerUp() bool {
	if s.state != StateDragging {
		return false
	}
	s.drag = nil
	s.state = StateActiveIdle
	return true
}

// SetAspectRatio locks width/height to ratio, or frees it when ratio is 0.
// An active selection is reshaped around its center immediately; an inactive
// session keeps the ratio for the next Start. A ratio no rectangle of at least
// the minimum size can satisfy inside the buffer is rejected and the previous
// ratio stays.
func (s *Session) SetAspectRatio(ratio float64) error {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 {
		return fmt.Errorf("%v: %w", ratio, ErrInvalidAspectRatio)
	}
	if ratio > 0 && s.Active() && !ratioFits(ratio, s.bufW, s.bufH, s.minSize) {
		return fmt.Errorf("%v on %vx%v buffer: %w", ratio, s.bufW, s.bufH, ErrInvalidAspectRatio)
	}
	s.ratio = ratio
	if ratio > 0 && s.Active() {
		s.rect = s.fitRatio(s.rect)
	}
	return nil
}

// Confirm ends the session and returns the selection rounded to whole pixels.
func (s *Session) Confirm() (image.Rectangle, error) {
	if !s.Active() {
		return image.Rectangle{}, ErrNotActive
	}
	r := s.rect.Image(int(s.bufW), int(s.bufH))
	s.reset()
	return r, nil
}

// Cancel discards the selection. It returns false if none was active.
func (s *Session) Cancel() bool {
	if !s.Active() {
		return false
	}
	s.reset()
	return true
}

func (s *Session) reset() {
	s.state = StateInactive
	s.drag = nil
	s.rect = geometry.Rect{}
}

// ratioFits reports whether a w x h buffer holds a rectangle with the given
// ratio whose sides are both at least minSize.
func ratioFits(ratio, w, h, minSize float64) bool {
	return minSize*ratio <= w+geometry.Epsilon && minSize/ratio <= h+geometry.Epsilon
}

// fitRatio reshapes r to the locked ratio around its own center, keeping the
// height where possible and staying inside the buffer.
func (s *Session) fitRatio(r geometry.Rect) geometry.Rect {
	c := r.Center()
	h := r.Height
	w := h * s.ratio

	if w < s.minSize {
		w = s.minSize
		h = w / s.ratio
	}
	if h < s.minSize {
		h = s.minSize
		w = h * s.ratio
	}
	if w > s.bufW {
		w = s.bufW
		h = w / s.ratio
	}
	if h > s.bufH {
		h = s.bufH
		w = h * s.ratio
	}

	return geometry.Rect{
		X:      clamp(c.X-w/2, 0, s.bufW-w),
		Y:      clamp(c.Y-h/2, 0, s.bufH-h),
		Width:  w,
		Height: h,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
