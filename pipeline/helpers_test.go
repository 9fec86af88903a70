package pipeline

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// makeGray builds a zero-origin grayscale grid filled with a constant.
func makeGray(w, h int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	if fill != 0 {
		for i := range img.Pix {
			img.Pix[i] = fill
		}
	}
	return img
}

// fillRect paints a rectangle of the given value, clipped to the image.
func fillRect(img *image.Gray, x0, y0, x1, y1 int, v uint8) {
	b := img.Bounds()
	for y := max(y0, 0); y < min(y1, b.Dy()); y++ {
		for x := max(x0, 0); x < min(x1, b.Dx()); x++ {
			img.Pix[y*img.Stride+x] = v
		}
	}
}

// fillDisk paints a filled circle of the given radius.
func fillDisk(img *image.Gray, cx, cy int, r float64, v uint8) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			if math.Sqrt(dx*dx+dy*dy) <= r {
				img.Pix[y*img.Stride+x] = v
			}
		}
	}
}

// diskFrame builds a color frame with a single bright disk on a dark
// background, the synthetic equivalent of one finger touch.
func diskFrame(w, h, cx, cy int, r float64) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 10, G: 10, B: 10, A: 255}
			dx, dy := float64(x-cx), float64(y-cy)
			if math.Sqrt(dx*dx+dy*dy) <= r {
				c = color.RGBA{R: 250, G: 250, B: 250, A: 255}
			}
			frame.SetRGBA(x, y, c)
		}
	}
	return frame
}

// countBright tallies nonzero mask samples.
func countBright(img *image.Gray) int {
	n := 0
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if img.Pix[y*img.Stride+x] != 0 {
				n++
			}
		}
	}
	return n
}

// centroid averages a contour's points.
func centroid(c Contour) (float64, float64) {
	var sx, sy float64
	for _, p := range c {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	n := float64(len(c))
	return sx / n, sy / n
}

// sortByCentroid orders contours canonically so comparisons do not depend
// on extraction order.
func sortByCentroid(cs []Contour) {
	sort.Slice(cs, func(i, j int) bool {
		xi, yi := centroid(cs[i])
		xj, yj := centroid(cs[j])
		if yi != yj {
			return yi < yj
		}
		return xi < xj
	})
}
