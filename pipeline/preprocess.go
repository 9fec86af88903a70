package pipeline

import (
	"image"
	"math"
)

// Grayscale converts a frame to a single-channel intensity grid using the
// Rec. 601 luma weights. The output shares the input's dimensions.
func Grayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)

	if rgba, ok := src.(*image.RGBA); ok {
		// Fast path for the capture layer's native format.
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			srcRow := rgba.Pix[(y-bounds.Min.Y)*rgba.Stride:]
			dstRow := gray.Pix[(y-bounds.Min.Y)*gray.Stride:]
			for x := 0; x < bounds.Dx(); x++ {
				r := float64(srcRow[x*4])
				g := float64(srcRow[x*4+1])
				b := float64(srcRow[x*4+2])
				dstRow[x] = uint8(0.299*r + 0.587*g + 0.114*b + 0.5)
			}
		}
		return gray
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			gray.Pix[(y-bounds.Min.Y)*gray.Stride+(x-bounds.Min.X)] = uint8(lum + 0.5)
		}
	}
	return gray
}

// gaussianKernel1D returns a normalized symmetric 1D Gaussian kernel of the
// given odd size.
func gaussianKernel1D(size int, sigma float64) []float64 {
	kernel := make([]float64, size)
	mid := size / 2
	sum := 0.0
	for i := range kernel {
		d := float64(i - mid)
		kernel[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur smooths an intensity grid with a separable 7x7 Gaussian,
// sigma 1.5. Edges replicate the border sample rather than zero-padding,
// so blob centroids near the frame edge are not pulled inward.
func GaussianBlur(src *image.Gray) *image.Gray {
	return gaussianBlurWith(src, blurKernelSize, blurSigma)
}

func gaussianBlurWith(src *image.Gray, size int, sigma float64) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	kernel := gaussianKernel1D(size, sigma)
	mid := size / 2

	clamp := func(v, hi int) int {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}

	// Horizontal pass into a float scratch buffer, vertical pass out.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			sum := 0.0
			for k, kv := range kernel {
				sum += kv * float64(row[clamp(x+k-mid, w-1)])
			}
			tmp[y*w+x] = sum
		}
	}

	dst := image.NewGray(bounds)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k, kv := range kernel {
				sum += kv * tmp[clamp(y+k-mid, h-1)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = uint8(math.Min(math.Max(sum, 0), 255) + 0.5)
		}
	}
	return dst
}
