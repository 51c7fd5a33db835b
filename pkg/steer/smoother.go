package steer

import "sync"

// Smoother owns the two persistent steering signals and pulls each
// toward the frame's raw estimate by LerpFactor per update — a
// first-order low-pass filter that rides out per-frame jitter and
// missed detections. Construct one per pipeline and keep it for the
// process lifetime.
//
// The pipeline updates once per frame from a single goroutine; the
// mutex exists because the web server reads signals concurrently.
type Smoother struct {
	mu sync.RWMutex
	x  float64
	y  float64
}

// NewSmoother returns a smoother centered at neutral on both axes.
func NewSmoother() *Smoother {
	return &Smoother{x: Neutral, y: Neutral}
}

// Update advances both signals toward the raw estimate. Called exactly
// once per processed frame. When the estimate's Y is unset the vertical
// signal holds its previous value. Never fails.
func (s *Smoother) Update(est Estimate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.x = clamp(s.x+(est.X-s.x)*LerpFactor, 0, 1)
	if est.YSet {
		s.y = clamp(s.y+(est.Y-s.y)*LerpFactor, 0, 1)
	}
}

// Signals returns the current smoothed pair.
func (s *Smoother) Signals() (x, y float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

// Reset recenters both signals at neutral.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x = Neutral
	s.y = Neutral
}

// Engaged reports whether a signal is outside the deadband, i.e. far
// enough from neutral for the renderer to treat it as deliberate input.
// Compared against the band edges rather than |signal-0.5| so that a
// signal sitting exactly on an edge counts as engaged.
func Engaged(signal float64) bool {
	return signal <= Neutral-MoveThreshold || signal >= Neutral+MoveThreshold
}
