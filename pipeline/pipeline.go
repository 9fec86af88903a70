// Package pipeline implements the per-frame FTIR blob detection transform:
// grayscale, Gaussian blur, threshold segmentation with edge padding,
// morphological opening, outer-boundary contour extraction and
// least-squares ellipse fitting, plus the display compositor.
//
// Every stage is a pure function of its input and the per-frame
// configuration snapshot; no state survives between frames.
package pipeline

import (
	"errors"
	"image"
	"image/draw"
	"time"

	"github.com/rs/zerolog"
)

// ErrEmptyFrame is returned when the frame source hands the pipeline a nil
// or zero-sized frame. The caller skips the cycle and keeps the previous
// display output.
var ErrEmptyFrame = errors.New("empty frame")

// Pipeline runs the detection stages over one frame at a time. It holds no
// per-frame state; the logger is the only dependency.
type Pipeline struct {
	log zerolog.Logger
}

// New creates a Pipeline that logs stage timings at debug level.
func New(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log.With().Str("component", "pipeline").Logger()}
}

// Process runs all stages over one frame with one configuration snapshot
// and returns the detected ellipses plus the composited display image.
// The configuration is clamped here, so out-of-range UI values are
// corrected rather than rejected.
func (p *Pipeline) Process(frame image.Image, cfg Config) (Result, error) {
	if frame == nil {
		return Result{}, ErrEmptyFrame
	}
	bounds := frame.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return Result{}, ErrEmptyFrame
	}
	cfg = cfg.Clamp(bounds.Dy())
	start := time.Now()

	rgba := toRGBA(frame)
	gray := Grayscale(rgba)
	blurred := GaussianBlur(gray)
	blurDone := time.Now()
	segmented := Threshold(blurred, cfg.Threshold, cfg.Padding)
	cleaned := Open(segmented, morphKernelSize)
	cleanDone := time.Now()
	contours := FindContours(cleaned)

	ellipses := make([]Ellipse, 0, len(contours))
	for _, c := range contours {
		if c.Area() == 0 {
			// Zero-area boundaries are specks the cleaner let through.
			continue
		}
		e, err := FitEllipse(c)
		if err != nil {
			// Degenerate boundaries are noise, not errors.
			continue
		}
		ellipses = append(ellipses, e)
	}

	display := Composite(rgba, segmented, ellipses, cfg)

	p.log.Debug().
		Int("contours", len(contours)).
		Int("blobs", len(ellipses)).
		Str("mode", cfg.Mode.String()).
		Dur("blur", blurDone.Sub(start)).
		Dur("clean", cleanDone.Sub(blurDone)).
		Dur("detect", time.Since(cleanDone)).
		Dur("elapsed", time.Since(start)).
		Msg("frame processed")

	return Result{Ellipses: ellipses, Display: display}, nil
}

// toRGBA normalizes any frame format to RGBA with a zero-based origin.
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	return out
}
