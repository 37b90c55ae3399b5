package crop

import (
	"errors"

	"github.com/ironsheep/image-editor-mcp/internal/geometry"
)

// Defaults for Config.
const (
	DefaultMinSize      = 20.0
	DefaultHitTolerance = 15.0
)

var (
	// ErrNotActive is returned by Confirm when no selection is in progress.
	ErrNotActive = errors.New("no crop in progress")

	// ErrInvalidAspectRatio is returned for negative, NaN or infinite ratios.
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio")
)

// State is the phase of a crop session.
type State int

const (
	StateInactive State = iota
	StateActiveIdle
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActiveIdle:
		return "active"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Handle identifies the region of the selection a drag started on.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleN
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

var handleNames = map[Handle]string{
	HandleNone: "none",
	HandleMove: "move",
	HandleN:    "n",
	HandleS:    "s",
	HandleE:    "e",
	HandleW:    "w",
	HandleNE:   "ne",
	HandleNW:   "nw",
	HandleSE:   "se",
	HandleSW:   "sw",
}

func (h Handle) String() string {
	if name, ok := handleNames[h]; ok {
		return name
	}
	return "unknown"
}

// IsCorner reports whether h resizes two axes at once.
func (h Handle) IsCorner() bool {
	return h == HandleNE || h == HandleNW || h == HandleSE || h == HandleSW
}

// IsEdge reports whether h resizes a single axis.
func (h Handle) IsEdge() bool {
	return h == HandleN || h == HandleS || h == HandleE || h == HandleW
}

// DragState exists only while a drag is in progress.
type DragState struct {
	Handle Handle         `json:"handle"`
	Anchor geometry.Point `json:"anchor"`
}

// Config tunes the session geometry. Zero fields take the defaults.
type Config struct {
	// MinSize is the smallest width and height the selection may have.
	MinSize float64

	// HitTolerance is the grab radius around corners and the half-width of
	// the grab band along edges.
	HitTolerance float64
}

// DefaultConfig returns the standard minimum size and hit tolerance.
func DefaultConfig() Config {
	return Config{MinSize: DefaultMinSize, HitTolerance: DefaultHitTolerance}
}

func (c Config) withDefaults() Config {
	if c.MinSize <= 0 {
		c.MinSize = DefaultMinSize
	}
	if c.HitTolerance <= 0 {
		c.HitTolerance = DefaultHitTolerance
	}
	return c
}
