package pose

import "testing"

func TestCandidate_Landmark(t *testing.T) {
	c := Candidate{
		Landmarks: []Landmark{
			{Name: Nose, X: 320, Y: 120, Score: 0.9},
			{Name: LeftShoulder, X: 250, Y: 300, Score: 0.8},
		},
		Score: 0.85,
	}

	lm, ok := c.Landmark(Nose)
	if !ok {
		t.Fatal("nose should be present")
	}
	if lm.X != 320 || lm.Y != 120 {
		t.Errorf("nose = (%v, %v), want (320, 120)", lm.X, lm.Y)
	}

	// Missing landmarks read as zero confidence, not an error.
	lm, ok = c.Landmark(RightAnkle)
	if ok {
		t.Error("right ankle should be absent")
	}
	if lm.Score != 0 {
		t.Errorf("absent landmark score = %v, want 0", lm.Score)
	}
}

func TestCandidate_Confident(t *testing.T) {
	c := Candidate{
		Landmarks: []Landmark{
			{Name: Nose, Score: 0.3},
			{Name: LeftEar, Score: 0.29},
			{Name: RightEar}, // no score at all
		},
	}

	tests := []struct {
		name string
		want bool
	}{
		{Nose, true},      // exactly at threshold counts
		{LeftEar, false},  // just below
		{RightEar, false}, // zero score
		{LeftHip, false},  // missing entirely
	}
	for _, tt := range tests {
		if got := c.Confident(tt.name, 0.3); got != tt.want {
			t.Errorf("Confident(%q, 0.3) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeypointNamesOrder(t *testing.T) {
	// Providers decode model output positionally; the name table must
	// keep COCO order with nose first and the face points before limbs.
	if KeypointNames[0] != Nose {
		t.Errorf("index 0 = %q, want nose", KeypointNames[0])
	}
	if KeypointNames[5] != LeftShoulder || KeypointNames[6] != RightShoulder {
		t.Errorf("shoulders at 5,6 = %q,%q", KeypointNames[5], KeypointNames[6])
	}
}
