// Package pipeline runs the per-frame control loop: capture a frame,
// estimate the pose, extract raw steering values, advance the smoother,
// publish the signals. One tick per frame, strictly in order, never
// overlapping.
package pipeline

import (
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/internal/log"
	"github.com/freedmand/drivehard/pkg/debug"
	"github.com/freedmand/drivehard/pkg/protocol"
	"github.com/freedmand/drivehard/pkg/steer"
	"github.com/freedmand/drivehard/pkg/vision"
)

// FrameSource supplies frames to the loop. ok=false from Read means no
// frame was available this tick; the tick is skipped without touching
// the smoother.
type FrameSource interface {
	Read() (frame gocv.Mat, ok bool)
	Ready() bool
}

// Publisher receives the smoothed signals each processed frame. The
// web server implements this; it has no feedback into the loop.
type Publisher interface {
	PublishSignals(data protocol.SignalData)
}

// Stats are the loop's diagnostic counters.
type Stats struct {
	Ticks        uint64 // Total ticks since start
	SkippedTicks uint64 // Ticks with no frame or a failed estimate
	NoPoseTicks  uint64 // Processed frames without exactly one candidate
	ErrorCount   uint64 // Provider errors
}

// Pipeline drives the frame-synchronous steering loop at a fixed rate.
// All smoother mutation happens here, once per processed frame.
type Pipeline struct {
	source    FrameSource
	provider  vision.Provider
	extractor steer.Extractor
	smoother  *steer.Smoother
	publisher Publisher

	rate time.Duration
	stop chan struct{}

	mu            sync.Mutex
	stats         Stats
	lastErrorTime time.Time
}

// New creates a pipeline ticking at the given rate (16.6ms for 60fps).
// publisher may be nil.
func New(source FrameSource, provider vision.Provider, smoother *steer.Smoother, publisher Publisher, rate time.Duration) *Pipeline {
	return &Pipeline{
		source:    source,
		provider:  provider,
		smoother:  smoother,
		publisher: publisher,
		rate:      rate,
		stop:      make(chan struct{}),
	}
}

// Run starts the control loop. Blocks until Stop is called.
func (p *Pipeline) Run() {
	ticker := time.NewTicker(p.rate)
	defer ticker.Stop()

	log.Info("pipeline started", "rate", p.rate)

	for {
		select {
		case <-p.stop:
			log.Info("pipeline stopped", "ticks", p.stats.Ticks)
			return
		case <-ticker.C:
			p.Step()
		}
	}
}

// Stop halts the control loop gracefully.
func (p *Pipeline) Stop() {
	close(p.stop)
}

// Step executes exactly one frame's processing. Exported so the
// single-step contract is testable without a live ticker: each call
// performs at most one smoother update.
func (p *Pipeline) Step() {
	p.mu.Lock()
	p.stats.Ticks++
	tick := p.stats.Ticks
	p.mu.Unlock()
	defer p.heartbeat()

	frame, ok := p.source.Read()
	if !ok {
		// No frame this tick. The core is simply not invoked; the
		// smoother keeps its state.
		p.mu.Lock()
		p.stats.SkippedTicks++
		p.mu.Unlock()
		return
	}

	candidates, err := p.provider.Estimate(frame)
	if err != nil {
		p.mu.Lock()
		p.stats.ErrorCount++
		p.stats.SkippedTicks++
		errCount := p.stats.ErrorCount
		// Rate-limit error logs to once per 5 seconds
		limited := !p.lastErrorTime.IsZero() && time.Since(p.lastErrorTime) <= 5*time.Second
		if !limited {
			p.lastErrorTime = time.Now()
		}
		p.mu.Unlock()
		if !limited {
			log.Error("pose estimate failed", "err", err, "total_errors", errCount)
		}
		return
	}

	if len(candidates) != 1 {
		p.mu.Lock()
		p.stats.NoPoseTicks++
		p.mu.Unlock()
	}

	est := p.extractor.Extract(candidates)
	p.smoother.Update(est)
	x, y := p.smoother.Signals()

	debug.SignalLog("step %d: raw=(%.3f, %.3f set=%v) signal=(%.3f, %.3f)\n",
		tick, est.X, est.Y, est.YSet, x, y)

	if p.publisher != nil {
		p.publisher.PublishSignals(protocol.SignalData{
			X:        x,
			Y:        y,
			EngagedX: steer.Engaged(x),
			EngagedY: steer.Engaged(y),
			RawX:     est.X,
			RawY:     est.Y,
			RawYSet:  est.YSet,
		})
	}
}

// heartbeat logs a liveness line every ~5 seconds of ticks.
func (p *Pipeline) heartbeat() {
	interval := uint64(5 * time.Second / p.rate)
	stats := p.Stats()
	if interval == 0 || stats.Ticks%interval != 0 {
		return
	}
	x, y := p.smoother.Signals()
	log.Info("pipeline heartbeat",
		"ticks", stats.Ticks,
		"skipped", stats.SkippedTicks,
		"no_pose", stats.NoPoseTicks,
		"errors", stats.ErrorCount,
		"x", x, "y", y)
}

// Stats returns a copy of the loop counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
