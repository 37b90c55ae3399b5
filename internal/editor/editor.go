package editor

import (
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-editor-mcp/internal/crop"
	"github.com/ironsheep/image-editor-mcp/internal/geometry"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ErrNoImageLoaded is returned by every operation called before LoadImage.
var ErrNoImageLoaded = errors.New("no image loaded")

// Options configures a new Editor.
type Options struct {
	Crop crop.Config

	// Surface receives redraws. Nil discards them.
	Surface Surface
}

// Stats counts the work the editor has done since it was created.
type Stats struct {
	PipelineRuns   int `json:"pipeline_runs"`
	FullRedraws    int `json:"full_redraws"`
	OverlayRedraws int `json:"overlay_redraws"`
}

// Editor is the single-session crop and adjust engine.
type Editor struct {
	original *imaging.PixelBuffer
	working  *imaging.PixelBuffer
	adjust   imaging.AdjustmentState

	session *crop.Session

	display    geometry.DisplayRect
	displaySet bool

	surface Surface
	stats   Stats
}

// New creates an editor with no image loaded.
func New(opts Options) *Editor {
	surface := opts.Surface
	if surface == nil {
		surface = nopSurface{}
	}
	return &Editor{
		session: crop.NewSession(opts.Crop),
		surface: surface,
	}
}

// Loaded reports whether an image has been loaded.
func (e *Editor) Loaded() bool {
	return e.original != nil
}

// LoadImage replaces the session image. The editor keeps its own copy of buf,
// resets the adjustments and discards any crop selection.
func (e *Editor) LoadImage(buf *imaging.PixelBuffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	e.original = buf.Clone()
	e.working = buf.Clone()
	e.adjust = imaging.DefaultAdjustments()
	e.session.Cancel()

	log.Debug().
		Int("width", buf.Width).
		Int("height", buf.Height).
		Msg("image loaded")

	e.redraw(true)
	return nil
}

// SetDisplayRect records where the surface is shown so pointer positions can
// be mapped to buffer pixels. Until it is called, display units are buffer
// pixels.
func (e *Editor) SetDisplayRect(d geometry.DisplayRect) {
	e.display = d
	e.displaySet = true
}

// DisplayRect returns the display placement used for pointer mapping.
func (e *Editor) DisplayRect() geometry.DisplayRect {
	if !e.displaySet && e.working != nil {
		return geometry.IdentityDisplay(e.working.Width, e.working.Height)
	}
	return e.display
}

func (e *Editor) toBuffer(p geometry.Point) (geometry.Point, error) {
	return geometry.MapToBuffer(p, e.DisplayRect(), e.working.Width, e.working.Height)
}

// StartCrop shows a fresh selection centered on the working buffer. Calling it
// during a crop re-initializes the selection.
func (e *Editor) StartCrop() error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	if err := e.session.Start(e.working.Width, e.working.Height); err != nil {
		return err
	}

	r, _ := e.session.Rect()
	log.Debug().Stringer("rect", r).Msg("crop started")

	e.redraw(false)
	return nil
}

// PointerDown presses the pointer at a display-space position and returns
// the handle grabbed, if any.
func (e *Editor) PointerDown(p geometry.Point) (crop.Handle, error) {
	if !e.Loaded() {
		return crop.HandleNone, ErrNoImageLoaded
	}
	bp, err := e.toBuffer(p)
	if err != nil {
		return crop.HandleNone, err
	}

	h := e.session.PointerDown(bp)
	if h != crop.HandleNone {
		log.Debug().Stringer("handle", h).Msg("drag started")
		e.redraw(false)
	}
	return h, nil
}

// PointerMove drags the grabbed handle to a display-space position. It
// reports whether the selection changed; moves without a drag are ignored.
func (e *Editor) PointerMove(p geometry.Point) (bool, error) {
	if !e.Loaded() {
		return false, ErrNoImageLoaded
	}
	bp, err := e.toBuffer(p)
	if err != nil {
		return false, err
	}

	if !e.session.PointerMove(bp) {
		return false, nil
	}
	e.redraw(false)
	return true, nil
}

// PointerUp releases the pointer. It reports whether a drag ended.
func (e *Editor) PointerUp() (bool, error) {
	if !e.Loaded() {
		return false, ErrNoImageLoaded
	}
	if !e.session.PointerUp() {
		return false, nil
	}

	r, _ := e.session.Rect()
	log.Debug().Stringer("rect", r).Msg("drag ended")

	e.redraw(false)
	return true, nil
}

// SetAspectRatio locks the selection to width/height = ratio, or unlocks it
// when ratio is 0. An active selection is reshaped immediately.
func (e *Editor) SetAspectRatio(ratio float64) error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	if err := e.session.SetAspectRatio(ratio); err != nil {
		return err
	}
	if e.session.Active() {
		e.redraw(false)
	}
	return nil
}

// AspectRatio returns the locked ratio, or 0 when free.
func (e *Editor) AspectRatio() float64 {
	return e.session.AspectRatio()
}

// ConfirmCrop replaces the image with the selected region of the original and
// resets the adjustments. It returns the region in pre-crop pixels.
func (e *Editor) ConfirmCrop() (image.Rectangle, error) {
	if !e.Loaded() {
		return image.Rectangle{}, ErrNoImageLoaded
	}
	r, err := e.session.Confirm()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("confirm crop: %w", err)
	}

	sub, err := imaging.SubBuffer(e.original, r)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("confirm crop: %w", err)
	}

	e.original = sub
	e.working = sub.Clone()
	e.adjust = imaging.DefaultAdjustments()

	log.Debug().
		Stringer("region", r).
		Int("width", sub.Width).
		Int("height", sub.Height).
		Msg("crop confirmed")

	e.redraw(true)
	return r, nil
}

// CancelCrop discards the selection. It reports whether one was active.
func (e *Editor) CancelCrop() (bool, error) {
	if !e.Loaded() {
		return false, ErrNoImageLoaded
	}
	if !e.session.Cancel() {
		return false, nil
	}
	log.Debug().Msg("crop canceled")
	e.redraw(false)
	return true, nil
}

// SetBrightness sets the brightness slider, clamped to [-100, 100].
func (e *Editor) SetBrightness(v int) error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	next := e.adjust
	next.Brightness = imaging.ClampLevel(v)
	return e.applyAdjustments(next)
}

// SetContrast sets the contrast slider, clamped to [-100, 100].
func (e *Editor) SetContrast(v int) error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	next := e.adjust
	next.Contrast = imaging.ClampLevel(v)
	return e.applyAdjustments(next)
}

// SetFilter selects the color filter. Unknown filters return
// imaging.ErrUnsupportedFilter and leave the adjustments unchanged.
func (e *Editor) SetFilter(f imaging.Filter) error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	if !f.Valid() {
		return fmt.Errorf("set filter %v: %w", f, imaging.ErrUnsupportedFilter)
	}
	next := e.adjust
	next.Filter = f
	return e.applyAdjustments(next)
}

// ResetAdjustments restores the working buffer to the original and zeroes
// every slider.
func (e *Editor) ResetAdjustments() error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	e.working = e.original.Clone()
	e.adjust = imaging.DefaultAdjustments()
	log.Debug().Msg("adjustments reset")
	e.redraw(true)
	return nil
}

// Rotate90 rotates the image 90 degrees clockwise. Any crop selection is
// discarded and the current adjustments are re-applied to the rotated image.
func (e *Editor) Rotate90() error {
	if !e.Loaded() {
		return ErrNoImageLoaded
	}
	rotated, err := imaging.Rotate90(e.original)
	if err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	working, err := imaging.Adjust(rotated, e.adjust)
	if err != nil {
		return fmt.Errorf("rotate: %w", err)
	}

	e.session.Cancel()
	e.original = rotated
	e.working = working
	e.stats.PipelineRuns++

	log.Debug().
		Int("width", rotated.Width).
		Int("height", rotated.Height).
		Msg("image rotated")

	e.redraw(true)
	return nil
}

// applyAdjustments recomputes the working buffer from the original when next
// differs from the current state.
func (e *Editor) applyAdjustments(next imaging.AdjustmentState) error {
	if next == e.adjust {
		return nil
	}
	working, err := imaging.Adjust(e.original, next)
	if err != nil {
		return fmt.Errorf("adjust: %w", err)
	}

	e.adjust = next
	e.working = working
	e.stats.PipelineRuns++

	log.Debug().
		Int("brightness", next.Brightness).
		Int("contrast", next.Contrast).
		Stringer("filter", next.Filter).
		Msg("adjustments applied")

	e.redraw(true)
	return nil
}

// WorkingBuffer returns a copy of the buffer currently shown to the user.
func (e *Editor) WorkingBuffer() (*imaging.PixelBuffer, error) {
	if !e.Loaded() {
		return nil, ErrNoImageLoaded
	}
	return e.working.Clone(), nil
}

// OriginalBuffer returns a copy of the unadjusted image.
func (e *Editor) OriginalBuffer() (*imaging.PixelBuffer, error) {
	if !e.Loaded() {
		return nil, ErrNoImageLoaded
	}
	return e.original.Clone(), nil
}

// Adjustments returns the current slider and filter state.
func (e *Editor) Adjustments() imaging.AdjustmentState {
	return e.adjust
}

// CropState returns the phase of the crop selection.
func (e *Editor) CropState() crop.State {
	return e.session.State()
}

// Selection returns the crop rectangle in buffer pixels and whether a crop
// is in progress.
func (e *Editor) Selection() (geometry.Rect, bool) {
	return e.session.Rect()
}

// Stats returns the work counters.
func (e *Editor) Stats() Stats {
	return e.stats
}

// Frame returns what the surface should currently show.
func (e *Editor) Frame() (Frame, error) {
	if !e.Loaded() {
		return Frame{}, ErrNoImageLoaded
	}
	return e.frame(true), nil
}

func (e *Editor) frame(pixelsChanged bool) Frame {
	f := Frame{
		Buffer:        e.working,
		Handle:        crop.HandleNone,
		PixelsChanged: pixelsChanged,
	}
	if r, ok := e.session.Rect(); ok {
		f.Selection = &r
	}
	if d := e.session.Drag(); d != nil {
		f.Handle = d.Handle
	}
	return f
}

// redraw hands the current frame to the surface. A full redraw follows a
// pixel change; otherwise only the overlay needs repainting.
func (e *Editor) redraw(full bool) {
	if full {
		e.stats.FullRedraws++
	} else {
		e.stats.OverlayRedraws++
	}
	e.surface.Present(e.frame(full))
}
