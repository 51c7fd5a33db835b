package vision

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/pkg/pose"
)

// Script replays a fixed sequence of candidate lists, one per Estimate
// call, holding the final entry once the script runs out. It backs the
// simulator binary and pipeline tests, where exercising the core's
// candidate-count policies matters more than real inference.
type Script struct {
	mu     sync.Mutex
	frames [][]pose.Candidate
	idx    int
	loop   bool
}

// NewScript creates a provider that plays frames once, then holds the
// last entry.
func NewScript(frames [][]pose.Candidate) *Script {
	return &Script{frames: frames}
}

// NewLoopingScript creates a provider that wraps around to the start.
func NewLoopingScript(frames [][]pose.Candidate) *Script {
	return &Script{frames: frames, loop: true}
}

// Estimate returns the next scripted candidate list. The frame argument
// is unused.
func (s *Script) Estimate(_ gocv.Mat) ([]pose.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return nil, nil
	}
	candidates := s.frames[s.idx]
	if s.idx < len(s.frames)-1 {
		s.idx++
	} else if s.loop {
		s.idx = 0
	}
	return candidates, nil
}

// Ready always reports true.
func (s *Script) Ready() bool { return true }

// Close is a no-op.
func (s *Script) Close() error { return nil }
