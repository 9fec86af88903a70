package pipeline

import "sync"

// DebugMode selects what the compositor renders. It is evaluated once per
// frame and has no state beyond the current configuration snapshot.
type DebugMode int

const (
	// ModeNormal draws detected ellipses over the original frame.
	ModeNormal DebugMode = iota
	// ModeThresholdOverlay replaces the output with a false-color view of
	// the threshold mask, for tuning the threshold slider.
	ModeThresholdOverlay
	// ModePaddingOverlay tints the padded top/bottom bands on the original
	// frame, for tuning the padding slider.
	ModePaddingOverlay
)

func (m DebugMode) String() string {
	switch m {
	case ModeThresholdOverlay:
		return "threshold_overlay"
	case ModePaddingOverlay:
		return "padding_overlay"
	default:
		return "normal"
	}
}

// Fixed processing constants. Blur and structuring element sizes are not
// exposed as tunables; only threshold and padding come from the UI.
const (
	blurKernelSize  = 7
	blurSigma       = 1.5
	morphKernelSize = 10

	// minFitPoints is the smallest contour that admits a well-posed
	// ellipse fit; anything shorter is treated as noise.
	minFitPoints = 5
)

// Config is the per-frame configuration snapshot. Values arriving from the
// UI are not trusted; Clamp is applied before every pipeline run.
type Config struct {
	// Threshold is the binarization cutoff in [0, 255].
	Threshold int
	// Padding is the number of rows zeroed at the top and bottom of the
	// mask to suppress edge bleed. Valid range is [0, height/2).
	Padding int
	// Mode selects the compositor output.
	Mode DebugMode
}

// DefaultConfig returns the startup configuration.
func DefaultConfig() Config {
	return Config{Threshold: 150, Padding: 20, Mode: ModeNormal}
}

// Clamp forces out-of-range values into their valid bounds for a frame of
// the given height. Invalid input is never an error, only corrected.
func (c Config) Clamp(height int) Config {
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.Threshold > 255 {
		c.Threshold = 255
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if height > 0 && 2*c.Padding >= height {
		// Clamping past the midline masks the whole frame.
		c.Padding = (height + 1) / 2
	}
	if c.Mode < ModeNormal || c.Mode > ModePaddingOverlay {
		c.Mode = ModeNormal
	}
	return c
}

// Store holds the configuration shared between the UI and the frame loop.
// The UI mutates it between frames; the loop takes one Snapshot per frame
// so a run never observes a half-updated configuration.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore creates a Store seeded with the given configuration.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns the current configuration by value.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetThreshold updates the binarization threshold.
func (s *Store) SetThreshold(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Threshold = v
}

// SetPadding updates the masked border height.
func (s *Store) SetPadding(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Padding = v
}

// SetMode updates the compositor mode.
func (s *Store) SetMode(m DebugMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Mode = m
}
