package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterleavedBGRToRGBA(t *testing.T) {
	// 2x2 BGR frame: blue, green, red, white.
	data := []byte{
		255, 0, 0 /**/, 0, 255, 0,
		0, 0, 255 /**/, 255, 255, 255,
	}
	img := interleavedBGRToRGBA(data, 2, 2, 3)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	blue := img.RGBAAt(0, 0)
	assert.EqualValues(t, 0, blue.R)
	assert.EqualValues(t, 0, blue.G)
	assert.EqualValues(t, 255, blue.B)
	assert.EqualValues(t, 255, blue.A)

	green := img.RGBAAt(1, 0)
	assert.EqualValues(t, 0, green.R)
	assert.EqualValues(t, 255, green.G)
	assert.EqualValues(t, 0, green.B)

	red := img.RGBAAt(0, 1)
	assert.EqualValues(t, 255, red.R)
	assert.EqualValues(t, 0, red.G)
	assert.EqualValues(t, 0, red.B)

	white := img.RGBAAt(1, 1)
	assert.EqualValues(t, 255, white.R)
	assert.EqualValues(t, 255, white.G)
	assert.EqualValues(t, 255, white.B)
}

func TestInterleavedBGRAKeepsAlpha(t *testing.T) {
	data := []byte{10, 20, 30, 40}
	img := interleavedBGRToRGBA(data, 1, 1, 4)
	px := img.RGBAAt(0, 0)
	assert.EqualValues(t, 30, px.R)
	assert.EqualValues(t, 20, px.G)
	assert.EqualValues(t, 10, px.B)
	assert.EqualValues(t, 40, px.A)
}
