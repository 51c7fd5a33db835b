// Package camera provides the local webcam frame source for drivehard.
package camera

import "fmt"

// Config holds the capture parameters for the frame source.
type Config struct {
	Device    int `json:"device"`    // Capture device index
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
}

// DefaultConfig returns the reference capture setup: 640x480 @ 60fps
// on the first device.
func DefaultConfig() Config {
	return Config{
		Device:    0,
		Width:     640,
		Height:    480,
		Framerate: 60,
	}
}

// Validate returns a list of problems with the config, empty if valid.
func (c Config) Validate() []string {
	var errors []string
	if c.Device < 0 {
		errors = append(errors, fmt.Sprintf("device must be >= 0, got %d", c.Device))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errors = append(errors, fmt.Sprintf("frame size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Framerate <= 0 {
		errors = append(errors, fmt.Sprintf("framerate must be positive, got %d", c.Framerate))
	}
	return errors
}
