package pipeline

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Result of one pipeline invocation: the detected blobs and the image the
// display sink should show for this frame.
type Result struct {
	Ellipses []Ellipse
	Display  *image.RGBA
}

var (
	outlineColor = color.RGBA{R: 0, G: 220, B: 60, A: 255}
	markerColor  = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	bandColor    = color.RGBA{R: 230, G: 40, B: 40, A: 96}
	maskHot      = color.RGBA{R: 255, G: 160, B: 0, A: 255}
	maskCold     = color.RGBA{R: 0, G: 16, B: 64, A: 255}
)

// Composite renders the per-frame display image. In normal mode the
// detected ellipses are drawn over a copy of the original frame; the two
// overlay modes exist for operator tuning and replace the output wholesale.
func Composite(frame *image.RGBA, segmented *image.Gray, ellipses []Ellipse, cfg Config) *image.RGBA {
	switch cfg.Mode {
	case ModeThresholdOverlay:
		return falseColorMask(segmented)
	case ModePaddingOverlay:
		return paddingBands(frame, cfg.Padding)
	default:
		return drawEllipses(frame, ellipses)
	}
}

func drawEllipses(frame *image.RGBA, ellipses []Ellipse) *image.RGBA {
	out := cloneRGBA(frame)
	if len(ellipses) == 0 {
		return out
	}
	dc := gg.NewContextForRGBA(out)
	for _, e := range ellipses {
		dc.Push()
		dc.Translate(e.CenterX, e.CenterY)
		dc.Rotate(e.Angle)
		dc.DrawEllipse(0, 0, e.Major/2, e.Minor/2)
		dc.Pop()
		dc.SetColor(outlineColor)
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.DrawCircle(e.CenterX, e.CenterY, 3)
		dc.SetColor(markerColor)
		dc.Fill()
	}
	return out
}

// falseColorMask renders a binary mask as two-tone false color so the
// operator can judge the threshold setting at a glance.
func falseColorMask(mask *image.Gray) *image.RGBA {
	bounds := mask.Bounds()
	out := image.NewRGBA(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := maskCold
			if mask.Pix[y*mask.Stride+x] != 0 {
				c = maskHot
			}
			i := y*out.Stride + x*4
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 255
		}
	}
	return out
}

// paddingBands tints the masked top and bottom rows so the operator can see
// how much of the frame the padding setting removes.
func paddingBands(frame *image.RGBA, padding int) *image.RGBA {
	out := cloneRGBA(frame)
	h := out.Bounds().Dy()
	w := out.Bounds().Dx()
	if padding <= 0 {
		return out
	}
	if 2*padding >= h {
		padding = (h + 1) / 2
	}
	dc := gg.NewContextForRGBA(out)
	dc.SetColor(bandColor)
	dc.DrawRectangle(0, 0, float64(w), float64(padding))
	dc.Fill()
	dc.SetColor(bandColor)
	dc.DrawRectangle(0, float64(h-padding), float64(w), float64(padding))
	dc.Fill()
	return out
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
