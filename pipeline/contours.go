package pipeline

import (
	"image"
	"math"
)

// Contour is the ordered, closed outer boundary of one connected bright
// region. The first point is the region's topmost-leftmost pixel; the walk
// proceeds clockwise. Interior holes are not traced.
type Contour []image.Point

// Area returns the polygon area enclosed by the contour (shoelace formula).
func (c Contour) Area() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// Perimeter returns the length of the closed boundary walk, with diagonal
// steps counted as sqrt(2).
func (c Contour) Perimeter() float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := float64(c[j].X - c[i].X)
		dy := float64(c[j].Y - c[i].Y)
		total += math.Hypot(dx, dy)
	}
	return total
}

// mooreNeighbors lists the 8-neighborhood in clockwise order starting from
// the western neighbor.
var mooreNeighbors = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// FindContours labels the 8-connected bright components of a binary mask
// and traces each component's outer boundary with a Moore neighborhood
// walk. The order of the returned contours is arbitrary.
func FindContours(mask *image.Gray) []Contour {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	labels := make([]int32, w*h)
	bright := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && mask.Pix[y*mask.Stride+x] != 0
	}

	var contours []Contour
	next := int32(0)
	queue := make([]image.Point, 0, 64)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*mask.Stride+x] == 0 || labels[y*w+x] != 0 {
				continue
			}
			next++
			start := image.Point{X: x, Y: y}

			// Flood-fill the component so later scan rows skip it.
			labels[y*w+x] = next
			queue = append(queue[:0], start)
			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				for _, d := range mooreNeighbors {
					nx, ny := p.X+d.X, p.Y+d.Y
					if bright(nx, ny) && labels[ny*w+nx] == 0 {
						labels[ny*w+nx] = next
						queue = append(queue, image.Point{X: nx, Y: ny})
					}
				}
			}

			contours = append(contours, traceBoundary(start, next, labels, w, h))
		}
	}
	return contours
}

// backtrackAfter maps the direction just moved in to the index of the last
// background neighbor examined before it, re-expressed relative to the new
// pixel. It keeps the radial sweep anchored on the outside of the boundary.
var backtrackAfter = [8]int{6, 6, 0, 0, 2, 2, 4, 4}

// traceBoundary walks the outer edge of one labeled component clockwise,
// starting at the component's first pixel in scan order. A pinched
// component may legitimately revisit pixels, including the start; the walk
// ends when the first move would repeat.
func traceBoundary(start image.Point, label int32, labels []int32, w, h int) Contour {
	inside := func(p image.Point) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h && labels[p.Y*w+p.X] == label
	}
	nextClockwise := func(from image.Point, back int) int {
		for i := 1; i <= 8; i++ {
			dir := (back + i) % 8
			if inside(from.Add(mooreNeighbors[dir])) {
				return dir
			}
		}
		return -1
	}

	contour := Contour{start}

	// The scan reached start row-major, so its western and northern
	// neighbors are outside the component; sweep clockwise from west.
	cur, back := start, 0
	maxSteps := 8 * w * h
	for steps := 0; steps < maxSteps; steps++ {
		found := nextClockwise(cur, back)
		if found < 0 {
			// Isolated pixel: the trivial one-point contour.
			return contour
		}
		next := cur.Add(mooreNeighbors[found])
		newBack := backtrackAfter[found]
		if next == start {
			if len(contour) == 1 {
				// Immediate bounce-back on a two-pixel component.
				return contour
			}
			if f := nextClockwise(start, newBack); f >= 0 && start.Add(mooreNeighbors[f]) == contour[1] {
				// Re-entered the start about to repeat the first
				// move: the boundary is closed.
				return contour
			}
		}
		contour = append(contour, next)
		cur, back = next, newBack
	}
	return contour
}
