// Package steer converts per-frame pose candidates into two smoothed
// steering signals in [0,1]: horizontal lean (signalX) and vertical lean
// (signalY). This is the decision core of drivehard; everything around
// it is I/O plumbing.
package steer

import "github.com/freedmand/drivehard/pkg/pose"

// Tuning constants for the extractor and smoother.
const (
	// ScoreThreshold gates each landmark used in the geometry; a frame
	// only contributes when every required landmark clears it.
	ScoreThreshold = 0.3

	// LerpFactor is the smoothing alpha: fraction of the raw-to-signal
	// gap closed per frame. 0.1 settles to ~63% in about 10 frames.
	LerpFactor = 0.1

	// MoveThreshold is the deadband half-width around neutral; a signal
	// within it is classified as neutral rather than engaged.
	MoveThreshold = 0.1

	// Neutral is the centered resting value for both signals.
	Neutral = 0.5

	// YMin and YMax map the expected physiological range of the
	// nose-between-shoulders-and-ears ratio onto [0,1].
	YMin = 0.6
	YMax = 1.4
)

// Estimate is one frame's raw control estimate. X is always set; Y is
// only set when the vertical geometry cleared its confidence gate, so
// the smoother knows to hold the previous vertical value.
type Estimate struct {
	X    float64
	Y    float64
	YSet bool
}

// NeutralEstimate is the full reset pushed when no usable pose exists.
func NeutralEstimate() Estimate {
	return Estimate{X: Neutral, Y: Neutral, YSet: true}
}

// Extractor derives raw steering estimates from pose geometry. It is
// stateless; one value serves any number of frames.
type Extractor struct{}

// Extract computes the raw estimate for one frame's candidate list.
//
// Only a frame with exactly one candidate is usable: zero means the
// person left the frame, two or more means the scene is ambiguous.
// Either way both axes reset fully toward neutral so the indicator
// decays back to center instead of freezing mid-lean.
func (Extractor) Extract(candidates []pose.Candidate) Estimate {
	if len(candidates) != 1 {
		return NeutralEstimate()
	}

	c := candidates[0]
	est := Estimate{X: rawX(c)}
	if y, ok := rawY(c); ok {
		est.Y = y
		est.YSet = true
	}
	return est
}

// rawX expresses the nose's horizontal position as a fraction of the
// shoulder span: 0 at the left shoulder, 1 at the right, 0.5 centered.
// The ratio is deliberately unclamped — a nose outside the span reads
// as leaning hard, and the smoother clamps downstream.
func rawX(c pose.Candidate) float64 {
	if !c.Confident(pose.Nose, ScoreThreshold) ||
		!c.Confident(pose.LeftShoulder, ScoreThreshold) ||
		!c.Confident(pose.RightShoulder, ScoreThreshold) {
		return Neutral
	}

	nose, _ := c.Landmark(pose.Nose)
	ls, _ := c.Landmark(pose.LeftShoulder)
	rs, _ := c.Landmark(pose.RightShoulder)

	span := rs.X - ls.X
	if span == 0 {
		// Degenerate detection (both shoulders at one point). Treat it
		// like a failed gate rather than dividing by zero.
		return Neutral
	}
	return (nose.X - ls.X) / span
}

// rawY measures how far the nose has traveled from shoulder height
// toward ear height, then maps the [YMin, YMax] window onto [0,1].
// Returns ok=false when any of the five required landmarks is below
// threshold; the caller holds the previous vertical value in that case.
//
// Holding rather than resetting on a failed vertical gate is the
// shipped behavior: the horizontal path falls back to neutral but the
// vertical path freezes. Kept as-is; see DESIGN.md.
func rawY(c pose.Candidate) (float64, bool) {
	for _, name := range []string{
		pose.Nose, pose.LeftEar, pose.RightEar,
		pose.LeftShoulder, pose.RightShoulder,
	} {
		if !c.Confident(name, ScoreThreshold) {
			return 0, false
		}
	}

	nose, _ := c.Landmark(pose.Nose)
	le, _ := c.Landmark(pose.LeftEar)
	re, _ := c.Landmark(pose.RightEar)
	ls, _ := c.Landmark(pose.LeftShoulder)
	rs, _ := c.Landmark(pose.RightShoulder)

	shoulderY := (ls.Y + rs.Y) / 2
	earY := (le.Y + re.Y) / 2
	if earY == shoulderY {
		return 0, false
	}

	y := (nose.Y - shoulderY) / (earY - shoulderY)
	return clamp((y-YMin)/(YMax-YMin), 0, 1), true
}

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
