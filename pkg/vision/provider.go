// Package vision provides pose estimation backends for drivehard.
// A Provider turns one camera frame into zero or more pose candidates;
// the steering core decides what to do with the count.
package vision

import (
	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/pkg/pose"
)

// Provider is the interface for pose estimation backends.
type Provider interface {
	// Estimate finds people in the frame and returns their landmark
	// sets. An empty slice means nobody was detected; that is not an
	// error. Remote backends may ignore the frame and report their
	// most recent estimate instead.
	Estimate(frame gocv.Mat) ([]pose.Candidate, error)

	// Ready reports whether the backend can serve estimates.
	Ready() bool

	// Close releases backend resources.
	Close() error
}

// Config holds provider configuration.
type Config struct {
	ModelPath    string  // Path to ONNX model (in-process backends)
	MinPoseScore float64 // Overall confidence below which a detection is discarded
	InputSize    int     // Model input edge length in pixels
}

// DefaultConfig returns production defaults for MoveNet Lightning.
func DefaultConfig() Config {
	return Config{
		ModelPath:    "models/movenet_singlepose_lightning.onnx",
		MinPoseScore: 0.2,
		InputSize:    192,
	}
}
