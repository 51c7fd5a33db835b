package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Capture wraps a gocv video capture device as a frame source for the
// pipeline. Read returns the same reusable Mat each call, so callers
// must finish with a frame before the next Read.
type Capture struct {
	mu     sync.Mutex
	config Config
	cap    *gocv.VideoCapture
	frame  gocv.Mat
	ready  bool
}

// Open opens the configured capture device and applies the requested
// frame size and rate. The device may silently negotiate different
// values; ActualConfig reports what it settled on.
func Open(cfg Config) (*Capture, error) {
	if errors := cfg.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("invalid camera config: %v", errors)
	}

	cap, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.Device, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	return &Capture{
		config: cfg,
		cap:    cap,
		frame:  gocv.NewMat(),
		ready:  true,
	}, nil
}

// Ready reports whether the device is open and delivering frames.
func (c *Capture) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready && c.cap.IsOpened()
}

// Read grabs the next frame. ok is false when the device produced no
// frame this tick (not an error; the pipeline skips the tick).
func (c *Capture) Read() (frame gocv.Mat, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready || !c.cap.Read(&c.frame) || c.frame.Empty() {
		return gocv.Mat{}, false
	}
	return c.frame, true
}

// ActualConfig reports the capture parameters the device negotiated.
func (c *Capture) ActualConfig() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Config{
		Device:    c.config.Device,
		Width:     int(c.cap.Get(gocv.VideoCaptureFrameWidth)),
		Height:    int(c.cap.Get(gocv.VideoCaptureFrameHeight)),
		Framerate: int(c.cap.Get(gocv.VideoCaptureFPS)),
	}
}

// Close releases the device and frame buffer.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil
	}
	c.ready = false
	c.frame.Close()
	return c.cap.Close()
}
