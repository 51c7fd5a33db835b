package vision

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/pkg/debug"
	"github.com/freedmand/drivehard/pkg/pose"
)

// MoveNet runs Google's MoveNet single-pose model through OpenCV's DNN
// module. The model emits 17 COCO keypoints with per-point scores; the
// overall candidate score is their mean.
type MoveNet struct {
	net    gocv.Net
	config Config
	mu     sync.Mutex // Protects inference
	closed bool
}

// NewMoveNet loads the ONNX model from cfg.ModelPath.
func NewMoveNet(cfg Config) (*MoveNet, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model: %s", cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &MoveNet{net: net, config: cfg}, nil
}

// Estimate runs one inference pass on the frame. A single-pose model
// returns at most one candidate; detections whose overall score falls
// below MinPoseScore are discarded so the extractor sees "no pose".
func (m *MoveNet) Estimate(frame gocv.Mat) ([]pose.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("estimate on closed provider")
	}
	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	frameW := float64(frame.Cols())
	frameH := float64(frame.Rows())

	blob := gocv.BlobFromImage(frame, 1.0/255.0,
		image.Pt(m.config.InputSize, m.config.InputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")
	out := m.net.Forward("")
	defer out.Close()

	// Output layout is [1,1,17,3]: (y, x, score) per keypoint, with
	// coordinates normalized to the input square.
	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read model output: %w", err)
	}
	if len(data) < len(pose.KeypointNames)*3 {
		return nil, fmt.Errorf("unexpected output size %d", len(data))
	}

	candidate := pose.Candidate{
		Landmarks: make([]pose.Landmark, 0, len(pose.KeypointNames)),
	}
	total := 0.0
	for i, name := range pose.KeypointNames {
		y := float64(data[i*3])
		x := float64(data[i*3+1])
		score := float64(data[i*3+2])
		candidate.Landmarks = append(candidate.Landmarks, pose.Landmark{
			Name:  name,
			X:     x * frameW,
			Y:     y * frameH,
			Score: score,
		})
		total += score
	}
	candidate.Score = total / float64(len(pose.KeypointNames))

	if candidate.Score < m.config.MinPoseScore {
		debug.SignalLog("movenet: discarding low-score pose (%.2f)\n", candidate.Score)
		return nil, nil
	}
	return []pose.Candidate{candidate}, nil
}

// Ready reports whether the model is loaded.
func (m *MoveNet) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Close releases the network.
func (m *MoveNet) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.net.Close()
}
