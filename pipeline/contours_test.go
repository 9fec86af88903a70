package pipeline

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContoursEmptyMask(t *testing.T) {
	assert.Empty(t, FindContours(makeGray(20, 20, 0)))
}

func TestFindContoursSingleSquare(t *testing.T) {
	src := makeGray(20, 20, 0)
	fillRect(src, 5, 5, 15, 15, 255)

	contours := FindContours(src)
	require.Len(t, contours, 1)
	c := contours[0]

	// The boundary of a 10x10 square has 36 pixels, walked clockwise
	// from the topmost-leftmost one.
	assert.Len(t, c, 36)
	assert.Equal(t, image.Point{X: 5, Y: 5}, c[0])
	for i, p := range c {
		onEdge := p.X == 5 || p.X == 14 || p.Y == 5 || p.Y == 14
		require.True(t, onEdge, "point %d (%v) not on the square edge", i, p)
	}
	// Consecutive boundary pixels are 8-adjacent, including the wrap.
	for i := range c {
		q := c[(i+1)%len(c)]
		dx, dy := q.X-c[i].X, q.Y-c[i].Y
		require.LessOrEqual(t, dx*dx, 1)
		require.LessOrEqual(t, dy*dy, 1)
	}
}

func TestFindContoursMultipleComponents(t *testing.T) {
	src := makeGray(64, 64, 0)
	fillRect(src, 4, 4, 14, 14, 255)
	fillRect(src, 30, 8, 44, 20, 255)
	fillDisk(src, 32, 45, 7, 255)

	contours := FindContours(src)
	require.Len(t, contours, 3)

	// Consumers must not rely on extraction order; compare canonically.
	sortByCentroid(contours)
	cx0, cy0 := centroid(contours[0])
	cx1, cy1 := centroid(contours[1])
	cx2, cy2 := centroid(contours[2])
	assert.InDelta(t, 8.5, cx0, 0.1)
	assert.InDelta(t, 8.5, cy0, 0.1)
	assert.InDelta(t, 36.5, cx1, 0.1)
	assert.InDelta(t, 13.5, cy1, 0.1)
	assert.InDelta(t, 32, cx2, 0.5)
	assert.InDelta(t, 45, cy2, 0.5)
}

func TestFindContoursDiagonalTouchIsOneComponent(t *testing.T) {
	// 8-connectivity: two squares meeting only at a corner are a single
	// component with a single outer boundary.
	src := makeGray(20, 20, 0)
	fillRect(src, 2, 2, 6, 6, 255)
	fillRect(src, 6, 6, 10, 10, 255)
	contours := FindContours(src)
	assert.Len(t, contours, 1)
}

func TestFindContoursIgnoresHoles(t *testing.T) {
	// A ring produces only its outer boundary; the hole is not reported.
	src := makeGray(30, 30, 0)
	fillRect(src, 5, 5, 25, 25, 255)
	fillRect(src, 10, 10, 20, 20, 0)
	contours := FindContours(src)
	require.Len(t, contours, 1)
	for _, p := range contours[0] {
		onOuter := p.X == 5 || p.X == 24 || p.Y == 5 || p.Y == 24
		require.True(t, onOuter, "hole boundary leaked into %v", p)
	}
}

func TestFindContoursSinglePixel(t *testing.T) {
	src := makeGray(10, 10, 0)
	src.Pix[5*src.Stride+5] = 255
	contours := FindContours(src)
	require.Len(t, contours, 1)
	assert.Equal(t, Contour{{X: 5, Y: 5}}, contours[0])
}

func TestFindContoursThinLine(t *testing.T) {
	// A one-pixel-wide line is walked out and back without hanging.
	src := makeGray(12, 12, 0)
	fillRect(src, 2, 6, 9, 7, 255)
	contours := FindContours(src)
	require.Len(t, contours, 1)
	assert.Equal(t, image.Point{X: 2, Y: 6}, contours[0][0])
	// Out (6 steps) and back (6 steps) over a 7-pixel line.
	assert.Len(t, contours[0], 12)
}

func TestContourArea(t *testing.T) {
	assert.Zero(t, Contour{{0, 0}}.Area())
	assert.Zero(t, Contour{{0, 0}, {4, 0}}.Area())
	square := Contour{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.InDelta(t, 16, square.Area(), 1e-9)
}

func TestContourPerimeter(t *testing.T) {
	assert.Zero(t, Contour{{0, 0}}.Perimeter())
	square := Contour{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.InDelta(t, 16, square.Perimeter(), 1e-9)
	diag := Contour{{0, 0}, {3, 4}}
	assert.InDelta(t, 10, diag.Perimeter(), 1e-9)
}
