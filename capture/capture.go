// Package capture wraps the camera device behind the pipeline's frame
// source boundary: each call to Next returns one coherent BGR frame
// converted to RGBA, or ErrNoFrame when the device has nothing for this
// trigger cycle.
package capture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// ErrNoFrame signals that no frame is available this cycle. The frame loop
// treats it as a no-op, leaving the previous display output in place.
var ErrNoFrame = errors.New("no frame available")

// Grabber owns a camera device and a reusable capture buffer. It is not
// safe for concurrent use; the frame loop is the only caller.
type Grabber struct {
	mu   sync.Mutex
	cam  *gocv.VideoCapture
	buf  gocv.Mat
	log  zerolog.Logger
	open bool
}

// Open acquires the camera device. Failure is reported to the caller once;
// the application keeps running in a "no frames" state.
func Open(device int, log zerolog.Logger) (*Grabber, error) {
	log = log.With().Str("component", "capture").Logger()
	cam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("opening camera %d: %w", device, err)
	}
	log.Info().Int("device", device).Msg("camera opened")
	return &Grabber{cam: cam, buf: gocv.NewMat(), log: log, open: true}, nil
}

// Next reads the next available frame and converts it to RGBA. Read
// failures and empty frames both map to ErrNoFrame.
func (g *Grabber) Next() (*image.RGBA, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.open {
		return nil, ErrNoFrame
	}
	if ok := g.cam.Read(&g.buf); !ok || g.buf.Empty() {
		return nil, ErrNoFrame
	}
	frame, err := matToRGBA(g.buf)
	if err != nil {
		g.log.Warn().Err(err).Msg("dropping unconvertible frame")
		return nil, ErrNoFrame
	}
	return frame, nil
}

// Close releases the device and the capture buffer.
func (g *Grabber) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.open {
		return nil
	}
	g.open = false
	g.buf.Close()
	if err := g.cam.Close(); err != nil {
		return fmt.Errorf("closing camera: %w", err)
	}
	g.log.Info().Msg("camera closed")
	return nil
}
