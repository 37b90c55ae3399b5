package crop

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAspectRatio parses a ratio written as "W:H", "W/H" or a decimal
// number. "free", "none" and the empty string mean no constraint and yield 0.
func ParseAspectRatio(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "free", "none":
		return 0, nil
	}

	if i := strings.IndexAny(s, ":/"); i >= 0 {
		w, errW := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		h, errH := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
		if errW != nil || errH != nil || !valid(w) || !valid(h) {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidAspectRatio)
		}
		return w / h, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !valid(v) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAspectRatio)
	}
	return v, nil
}

func valid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
