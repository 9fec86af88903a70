package capture

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// matToRGBA converts a capture Mat to a zero-origin RGBA image. Cameras
// deliver BGR; grayscale and BGRA devices are handled for completeness.
func matToRGBA(m gocv.Mat) (*image.RGBA, error) {
	rows, cols, ch := m.Rows(), m.Cols(), m.Channels()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", cols, rows)
	}
	switch ch {
	case 1:
		out := image.NewRGBA(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				v := m.GetUCharAt(y, x)
				out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
			}
		}
		return out, nil
	case 3, 4:
		data := m.ToBytes()
		return interleavedBGRToRGBA(data, cols, rows, ch), nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", ch)
	}
}

// interleavedBGRToRGBA swizzles packed BGR(A) bytes into an RGBA image.
// Split out from the Mat wrapper so the channel ordering is testable
// without a camera or OpenCV buffers.
func interleavedBGRToRGBA(data []byte, w, h, channels int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := w * channels
	for y := 0; y < h; y++ {
		src := data[y*stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			b := src[x*channels]
			g := src[x*channels+1]
			r := src[x*channels+2]
			a := uint8(255)
			if channels == 4 {
				a = src[x*channels+3]
			}
			dst[x*4] = r
			dst[x*4+1] = g
			dst[x*4+2] = b
			dst[x*4+3] = a
		}
	}
	return out
}
