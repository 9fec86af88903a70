package pipeline

import "image"

// Threshold binarizes a blurred intensity grid: samples at or above the
// cutoff become 255, everything else 0. The top and bottom padding rows are
// then zeroed unconditionally to suppress light bleed at the frame edges.
//
// Raising the threshold can only turn pixels off, never on. A padding value
// clamped past the frame midline leaves the mask entirely dark.
func Threshold(src *image.Gray, threshold, padding int) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(bounds)

	cutoff := uint8(clampInt(threshold, 0, 255))
	if padding < 0 {
		padding = 0
	}
	if 2*padding >= h {
		padding = (h + 1) / 2
	}

	for y := padding; y < h-padding; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, v := range srcRow {
			if v >= cutoff {
				dstRow[x] = 255
			}
		}
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
