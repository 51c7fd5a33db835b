// Package pose defines the keypoint data model shared by pose providers
// and the steering core. Landmarks follow the 17-point COCO convention
// used by MoveNet and similar single-person models.
package pose

// Keypoint names in COCO order. The steering core looks landmarks up by
// name, never by raw index, so providers with different orderings can
// still produce valid candidates.
const (
	Nose          = "nose"
	LeftEye       = "left_eye"
	RightEye      = "right_eye"
	LeftEar       = "left_ear"
	RightEar      = "right_ear"
	LeftShoulder  = "left_shoulder"
	RightShoulder = "right_shoulder"
	LeftElbow     = "left_elbow"
	RightElbow    = "right_elbow"
	LeftWrist     = "left_wrist"
	RightWrist    = "right_wrist"
	LeftHip       = "left_hip"
	RightHip      = "right_hip"
	LeftKnee      = "left_knee"
	RightKnee     = "right_knee"
	LeftAnkle     = "left_ankle"
	RightAnkle    = "right_ankle"
)

// KeypointNames lists all COCO keypoint names in model output order.
var KeypointNames = [17]string{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Landmark is a single named keypoint estimate. Coordinates are in the
// provider's frame space (pixels for in-process models, normalized for
// remote estimators); the steering core only uses ratios, so the space
// doesn't matter as long as it's consistent within one candidate.
type Landmark struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z,omitempty"`     // Depth if the model provides it
	Score float64 `json:"score,omitempty"` // 0-1 confidence, absent = 0
}

// Candidate is one detected person for one frame: a full landmark set
// plus an overall detection confidence. Candidates are built fresh each
// frame and never retained past it.
type Candidate struct {
	Landmarks []Landmark `json:"landmarks"`
	Score     float64    `json:"score"` // Overall pose confidence 0-1
}

// Landmark returns the named landmark and whether it was present.
// A missing landmark reads as zero confidence, matching the convention
// that absence of a score means "not detected".
func (c Candidate) Landmark(name string) (Landmark, bool) {
	for _, lm := range c.Landmarks {
		if lm.Name == name {
			return lm, true
		}
	}
	return Landmark{Name: name}, false
}

// Confident reports whether the named landmark is present with a score
// at or above threshold.
func (c Candidate) Confident(name string, threshold float64) bool {
	lm, ok := c.Landmark(name)
	return ok && lm.Score >= threshold
}
