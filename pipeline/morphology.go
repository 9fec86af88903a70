package pipeline

import "image"

// seOffsets returns the neighborhood offsets covered by a rectangular
// structuring element of the given side length, centered on the anchor.
// Even lengths put the extra sample before the anchor, e.g. 4 -> {-2,-1,0,1}.
func seOffsets(length int) []int {
	if length <= 0 {
		return nil
	}
	offsets := make([]int, length)
	for i := range offsets {
		offsets[i] = i - length/2
	}
	return offsets
}

// Erode keeps an output pixel bright only if every input pixel under the
// square structuring element is bright. Samples outside the frame count as
// dark, so bright regions touching the border are eaten back.
func Erode(src *image.Gray, size int) *image.Gray {
	return morph(src, size, true)
}

// Dilate sets an output pixel bright if any input pixel under the square
// structuring element is bright.
func Dilate(src *image.Gray, size int) *image.Gray {
	return morph(src, size, false)
}

// Open performs erosion followed by dilation with the same structuring
// element. Bright regions smaller than the element in either dimension are
// removed entirely; larger regions keep approximately their original area.
func Open(src *image.Gray, size int) *image.Gray {
	return Dilate(Erode(src, size), size)
}

func morph(src *image.Gray, size int, erode bool) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(bounds)
	offsets := seOffsets(size)
	if !erode {
		// Dilation reflects the structuring element so that opening with
		// an even-sized element restores regions in place instead of
		// shifting them by one pixel.
		reflected := make([]int, len(offsets))
		for i, o := range offsets {
			reflected[i] = -o
		}
		offsets = reflected
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hit := erode
			for _, dy := range offsets {
				yy := y + dy
				if yy < 0 || yy >= h {
					if erode {
						hit = false
						break
					}
					continue
				}
				row := src.Pix[yy*src.Stride:]
				for _, dx := range offsets {
					xx := x + dx
					if xx < 0 || xx >= w {
						if erode {
							hit = false
						}
						continue
					}
					bright := row[xx] != 0
					if erode && !bright {
						hit = false
						break
					}
					if !erode && bright {
						hit = true
						break
					}
				}
				if hit != erode {
					break
				}
			}
			if hit {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}
