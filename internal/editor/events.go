package editor

import (
	"fmt"

	"github.com/ironsheep/image-editor-mcp/internal/geometry"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Event is an input delivered to Dispatch. The set of events is closed:
// PointerDown, PointerMove, PointerUp, SliderChange and FilterSelect.
type Event interface {
	event()
}

// PointerDown presses the pointer at a display-space position.
type PointerDown struct {
	Point geometry.Point
}

// PointerMove moves a pressed pointer to a display-space position.
type PointerMove struct {
	Point geometry.Point
}

// PointerUp releases the pointer.
type PointerUp struct{}

// Slider names an adjustment slider.
type Slider int

const (
	SliderBrightness Slider = iota
	SliderContrast
)

func (s Slider) String() string {
	switch s {
	case SliderBrightness:
		return "brightness"
	case SliderContrast:
		return "contrast"
	default:
		return fmt.Sprintf("slider(%d)", int(s))
	}
}

// SliderChange sets a slider to Value, clamped to [-100, 100].
type SliderChange struct {
	Slider Slider
	Value  int
}

// FilterSelect picks the named color filter.
type FilterSelect struct {
	Filter imaging.Filter
}

func (PointerDown) event()  {}
func (PointerMove) event()  {}
func (PointerUp) event()    {}
func (SliderChange) event() {}
func (FilterSelect) event() {}

// Dispatch routes ev to the matching editor operation. Pointer events that
// do not apply to the current crop state are accepted and ignored.
func (e *Editor) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case PointerDown:
		_, err := e.PointerDown(ev.Point)
		return err
	case PointerMove:
		_, err := e.PointerMove(ev.Point)
		return err
	case PointerUp:
		_, err := e.PointerUp()
		return err
	case SliderChange:
		switch ev.Slider {
		case SliderBrightness:
			return e.SetBrightness(ev.Value)
		case SliderContrast:
			return e.SetContrast(ev.Value)
		default:
			return fmt.Errorf("unknown slider %v", ev.Slider)
		}
	case FilterSelect:
		return e.SetFilter(ev.Filter)
	default:
		return fmt.Errorf("unknown event %T", ev)
	}
}
