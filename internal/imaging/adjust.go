package imaging

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
)

// Slider limits for brightness and contrast.
const (
	MinLevel = -100
	MaxLevel = 100
)

// ErrUnsupportedFilter is returned for filter names or values outside the
// known set.
var ErrUnsupportedFilter = errors.New("unsupported filter")

// Filter is a named whole-image color transform.
type Filter int

const (
	FilterNone Filter = iota
	FilterGrayscale
	FilterSepia
	FilterVintage
	FilterCool
	FilterWarm
)

var filterNames = []string{
	FilterNone:      "none",
	FilterGrayscale: "grayscale",
	FilterSepia:     "sepia",
	FilterVintage:   "vintage",
	FilterCool:      "cool",
	FilterWarm:      "warm",
}

// Filters lists every supported filter in display order.
func Filters() []Filter {
	return []Filter{FilterNone, FilterGrayscale, FilterSepia, FilterVintage, FilterCool, FilterWarm}
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	return f >= FilterNone && int(f) < len(filterNames)
}

func (f Filter) String() string {
	if !f.Valid() {
		return fmt.Sprintf("filter(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilter resolves a filter by name, case-insensitively. An empty name
// selects FilterNone.
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterNone, nil
	}
	for i, n := range filterNames {
		if n == name {
			return Filter(i), nil
		}
	}
	return FilterNone, fmt.Errorf("%q: %w", name, ErrUnsupportedFilter)
}

// MarshalText encodes the filter by name.
func (f Filter) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%d: %w", int(f), ErrUnsupportedFilter)
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a filter name.
func (f *Filter) UnmarshalText(text []byte) error {
	parsed, err := ParseFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// AdjustmentState is the full set of user adjustments applied on top of the
// original buffer.
type AdjustmentState struct {
	Brightness int    `json:"brightness"`
	Contrast   int    `json:"contrast"`
	Filter     Filter `json:"filter"`
}

// DefaultAdjustments returns the identity adjustment.
func DefaultAdjustments() AdjustmentState {
	return AdjustmentState{}
}

// IsIdentity reports whether applying s leaves every pixel unchanged.
func (s AdjustmentState) IsIdentity() bool {
	return s.Brightness == 0 && s.Contrast == 0 && s.Filter == FilterNone
}

// ClampLevel limits a slider value to [MinLevel, MaxLevel].
func ClampLevel(v int) int {
	return max(MinLevel, min(v, MaxLevel))
}

// Adjust computes a new buffer from original with brightness, contrast and
// the named filter applied, in that order. The original is never modified,
// so calling Adjust repeatedly with different states never accumulates error.
//
// Brightness and contrast map each color channel through
//
//	f  = 259*(contrast+255) / (255*(259-contrast))
//	v' = clamp(f*((v+brightness)-128) + 128, 0, 255)
//
// and are skipped when both are zero. The filter then operates on the
// rounded 8-bit result. Alpha is copied through untouched.
//
// Rows are processed concurrently; Adjust returns once every row is done.
func Adjust(original *PixelBuffer, state AdjustmentState) (*PixelBuffer, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if !state.Filter.Valid() {
		return nil, fmt.Errorf("%v: %w", state.Filter, ErrUnsupportedFilter)
	}

	out := original.Clone()
	if state.IsIdentity() {
		return out, nil
	}

	var lut *[256]uint8
	if state.Brightness != 0 || state.Contrast != 0 {
		lut = levelsTable(ClampLevel(state.Brightness), ClampLevel(state.Contrast))
	}
	filter := filterFuncs[state.Filter]

	stride := 4 * out.Width
	parallel.Line(out.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := out.Pix[y*stride : (y+1)*stride]
			for i := 0; i < len(row); i += 4 {
				r, g, b := row[i], row[i+1], row[i+2]
				if lut != nil {
					r, g, b = lut[r], lut[g], lut[b]
				}
				if filter != nil {
					r, g, b = filter(r, g, b)
				}
				row[i], row[i+1], row[i+2] = r, g, b
			}
		}
	})

	return out, nil
}

// levelsTable precomputes the brightness/contrast mapping for every channel
// value.
func levelsTable(brightness, contrast int) *[256]uint8 {
	b := float64(brightness)
	c := float64(contrast)
	factor := (259 * (c + 255)) / (255 * (259 - c))

	var lut [256]uint8
	for v := range lut {
		lut[v] = clampByte(factor*((float64(v)+b)-128) + 128)
	}
	return &lut
}

type filterFunc func(r, g, b uint8) (uint8, uint8, uint8)

var filterFuncs = map[Filter]filterFunc{
	FilterGrayscale: grayscale,
	FilterSepia:     sepia,
	FilterVintage:   vintage,
	FilterCool:      cool,
	FilterWarm:      warm,
}

// grayscale uses ITU-R BT.601 luma weights.
func grayscale(r, g, b uint8) (uint8, uint8, uint8) {
	l := clampByte(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
	return l, l, l
}

func sepia(r, g, b uint8) (uint8, uint8, uint8) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	return clampByte(0.393*rf + 0.769*gf + 0.189*bf),
		clampByte(0.349*rf + 0.686*gf + 0.168*bf),
		clampByte(0.272*rf + 0.534*gf + 0.131*bf)
}

func vintage(r, g, b uint8) (uint8, uint8, uint8) {
	return clampByte(float64(r)*1.2 + 20),
		clampByte(float64(g)*1.1 + 10),
		clampByte(float64(b)*0.8 - 10)
}

func cool(r, g, b uint8) (uint8, uint8, uint8) {
	return clampByte(float64(r) * 0.8),
		clampByte(float64(g) * 1.1),
		clampByte(float64(b) * 1.3)
}

func warm(r, g, b uint8) (uint8, uint8, uint8) {
	return clampByte(float64(r) * 1.2),
		clampByte(float64(g) * 1.1),
		clampByte(float64(b) * 0.7)
}

// clampByte rounds to the nearest integer and saturates to [0,255].
func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
