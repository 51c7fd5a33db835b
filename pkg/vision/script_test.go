package vision

import (
	"testing"

	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/pkg/pose"
)

func TestScript_HoldsLastFrame(t *testing.T) {
	one := []pose.Candidate{{Score: 0.9}}
	s := NewScript([][]pose.Candidate{nil, one})

	got, err := s.Estimate(gocv.Mat{})
	if err != nil || got != nil {
		t.Fatalf("frame 0 = (%v, %v), want (nil, nil)", got, err)
	}

	for i := 0; i < 3; i++ {
		got, err = s.Estimate(gocv.Mat{})
		if err != nil {
			t.Fatalf("estimate error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("call %d: candidates = %d, want held last frame", i, len(got))
		}
	}
}

func TestScript_Loops(t *testing.T) {
	one := []pose.Candidate{{Score: 0.9}}
	s := NewLoopingScript([][]pose.Candidate{one, nil})

	want := []int{1, 0, 1, 0, 1}
	for i, n := range want {
		got, _ := s.Estimate(gocv.Mat{})
		if len(got) != n {
			t.Fatalf("call %d: candidates = %d, want %d", i, len(got), n)
		}
	}
}

func TestScript_Empty(t *testing.T) {
	s := NewScript(nil)
	got, err := s.Estimate(gocv.Mat{})
	if err != nil || got != nil {
		t.Errorf("empty script = (%v, %v), want (nil, nil)", got, err)
	}
	if !s.Ready() {
		t.Error("script provider should always be ready")
	}
}
