package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubBuffer(t *testing.T) {
	src := gradientBuffer(t, 100, 100)

	out, err := SubBuffer(src, image.Rect(10, 10, 60, 60))
	require.NoError(t, err)
	assert.Equal(t, 50, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, src.At(10, 10), out.At(0, 0))
}

func TestSubBuffer_PixelIdentity(t *testing.T) {
	src := gradientBuffer(t, 64, 48)
	regions := []image.Rectangle{
		image.Rect(0, 0, 64, 48),
		image.Rect(5, 7, 25, 27),
		image.Rect(40, 20, 64, 48),
		image.Rect(0, 47, 1, 48),
	}

	for _, r := range regions {
		out, err := SubBuffer(src, r)
		require.NoError(t, err, "%v", r)
		require.Equal(t, r.Dx(), out.Width)
		require.Equal(t, r.Dy(), out.Height)
		for j := 0; j < out.Height; j++ {
			for i := 0; i < out.Width; i++ {
				require.Equal(t, src.At(r.Min.X+i, r.Min.Y+j), out.At(i, j), "region %v pixel (%d,%d)", r, i, j)
			}
		}
	}
}

func TestSubBuffer_Invalid(t *testing.T) {
	src := gradientBuffer(t, 100, 100)

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"negative origin", image.Rect(-1, 0, 50, 50)},
		{"past right", image.Rect(0, 0, 101, 50)},
		{"past bottom", image.Rect(0, 0, 50, 101)},
		{"empty", image.Rect(50, 50, 50, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SubBuffer(src, tt.r)
			assert.Error(t, err)
		})
	}
}

func TestSubBuffer_DoesNotAlias(t *testing.T) {
	src := gradientBuffer(t, 10, 10)
	out, err := SubBuffer(src, image.Rect(0, 0, 5, 5))
	require.NoError(t, err)

	out.Pix[0] = src.Pix[0] + 1
	assert.NotEqual(t, out.Pix[0], src.Pix[0])
}

func TestRotate90(t *testing.T) {
	src := gradientBuffer(t, 7, 4)

	rot, err := Rotate90(src)
	require.NoError(t, err)
	require.Equal(t, 4, rot.Width)
	require.Equal(t, 7, rot.Height)

	// Clockwise: source (x, y) lands on (h-1-y, x).
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			require.Equal(t, src.At(x, y), rot.At(src.Height-1-y, x), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRotate90_FullTurn(t *testing.T) {
	src := gradientBuffer(t, 9, 5)
	b := src
	for i := 0; i < 4; i++ {
		var err error
		b, err = Rotate90(b)
		require.NoError(t, err)
	}
	assert.True(t, src.Equal(b))
}
