package steer

import "testing"

func TestSmoother_StartsNeutral(t *testing.T) {
	s := NewSmoother()
	x, y := s.Signals()
	if x != Neutral || y != Neutral {
		t.Errorf("initial signals = (%v, %v), want (0.5, 0.5)", x, y)
	}
}

func TestSmoother_SingleStepExact(t *testing.T) {
	// One update toward 1.0 from 0.5 moves exactly alpha of the gap:
	// 0.5 + 0.5*0.1 = 0.55.
	s := NewSmoother()
	s.Update(Estimate{X: 1.0, Y: 1.0, YSet: true})

	x, y := s.Signals()
	if !floatEquals(x, 0.55) {
		t.Errorf("signalX = %v, want 0.55", x)
	}
	if !floatEquals(y, 0.55) {
		t.Errorf("signalY = %v, want 0.55", y)
	}
}

func TestSmoother_NeutralIdempotent(t *testing.T) {
	s := NewSmoother()
	for i := 0; i < 50; i++ {
		s.Update(NeutralEstimate())
	}
	x, y := s.Signals()
	if x != Neutral || y != Neutral {
		t.Errorf("after neutral inputs: (%v, %v), want exactly (0.5, 0.5)", x, y)
	}
}

func TestSmoother_MonotoneConvergence(t *testing.T) {
	s := NewSmoother()
	prev, _ := s.Signals()
	for i := 0; i < 200; i++ {
		s.Update(Estimate{X: 1.0, Y: 1.0, YSet: true})
		x, _ := s.Signals()
		if x <= prev {
			t.Fatalf("step %d: signalX %v not strictly increasing from %v", i, x, prev)
		}
		if x > 1.0 {
			t.Fatalf("step %d: signalX %v exceeded 1.0", i, x)
		}
		prev = x
	}
	if prev < 0.99 {
		t.Errorf("after 200 steps signalX = %v, expected near 1.0", prev)
	}
}

func TestSmoother_UnsetYHoldsValue(t *testing.T) {
	s := NewSmoother()
	s.Update(Estimate{X: 1.0, Y: 1.0, YSet: true})
	_, yBefore := s.Signals()

	// Frames with no vertical estimate advance X but freeze Y.
	for i := 0; i < 10; i++ {
		s.Update(Estimate{X: 1.0, YSet: false})
	}
	x, y := s.Signals()
	if y != yBefore {
		t.Errorf("signalY moved to %v with Y unset, want held at %v", y, yBefore)
	}
	if x <= 0.55 {
		t.Errorf("signalX = %v, should keep converging while Y holds", x)
	}
}

func TestSmoother_ClampsOutOfRangeRaw(t *testing.T) {
	// rawX is unclamped upstream; the smoother keeps the signal in [0,1]
	// even against a sustained far-out-of-span lean.
	s := NewSmoother()
	for i := 0; i < 500; i++ {
		s.Update(Estimate{X: 3.0, YSet: false})
		x, _ := s.Signals()
		if x < 0 || x > 1 {
			t.Fatalf("step %d: signalX = %v outside [0,1]", i, x)
		}
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother()
	for i := 0; i < 30; i++ {
		s.Update(Estimate{X: 1.0, Y: 0.0, YSet: true})
	}
	s.Reset()
	x, y := s.Signals()
	if x != Neutral || y != Neutral {
		t.Errorf("after reset: (%v, %v), want (0.5, 0.5)", x, y)
	}
}

func TestEngaged_DeadbandBoundary(t *testing.T) {
	tests := []struct {
		signal float64
		want   bool
	}{
		{0.5, false},
		{0.6, true},  // |0.6-0.5| = 0.1 meets the threshold
		{0.59, false},
		{0.4, true},
		{0.41, false},
		{0.0, true},
		{1.0, true},
	}
	for _, tt := range tests {
		if got := Engaged(tt.signal); got != tt.want {
			t.Errorf("Engaged(%v) = %v, want %v", tt.signal, got, tt.want)
		}
	}
}
