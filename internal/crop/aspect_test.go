package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"free", 0},
		{" None ", 0},
		{"16:9", 16.0 / 9},
		{"4/3", 4.0 / 3},
		{"1:1", 1},
		{"1.5", 1.5},
		{" 3 : 2 ", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAspectRatio(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseAspectRatio_Invalid(t *testing.T) {
	for _, in := range []string{"wide", "0:1", "16:0", "-1", "0", "1:", ":2", "inf", "nan"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAspectRatio(in)
			assert.ErrorIs(t, err, ErrInvalidAspectRatio)
		})
	}
}
