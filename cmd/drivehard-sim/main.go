// drivehard-sim drives the steering pipeline with scripted poses
// instead of a camera: a person leans right, recenters, vanishes, then
// a second person walks in. Useful for checking signal behavior and the
// dashboard without OpenCV hardware access.
package main

import (
	"flag"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/internal/log"
	"github.com/freedmand/drivehard/pkg/pipeline"
	"github.com/freedmand/drivehard/pkg/pose"
	"github.com/freedmand/drivehard/pkg/protocol"
	"github.com/freedmand/drivehard/pkg/steer"
	"github.com/freedmand/drivehard/pkg/vision"
)

// nullSource satisfies the pipeline's frame source without a device.
type nullSource struct{}

func (nullSource) Read() (gocv.Mat, bool) { return gocv.Mat{}, true }
func (nullSource) Ready() bool            { return true }

// printer dumps each signal frame to stdout.
type printer struct{}

func (printer) PublishSignals(d protocol.SignalData) {
	rawY := "held"
	if d.RawYSet {
		rawY = fmt.Sprintf("%.3f", d.RawY)
	}
	fmt.Printf("x=%.3f%s y=%.3f%s  (raw %.3f / %s)\n",
		d.X, mark(d.EngagedX), d.Y, mark(d.EngagedY), d.RawX, rawY)
}

func mark(engaged bool) string {
	if engaged {
		return "*"
	}
	return " "
}

// person builds a candidate with the nose at the given fraction of the
// shoulder span (0=left shoulder, 1=right) and at shoulder-to-ear
// height fraction tilt.
func person(lean, tilt float64) pose.Candidate {
	const score = 0.9
	noseX := 200 + lean*200 // Shoulders at x=200 and x=400
	noseY := 300 - tilt*200 // Shoulders at y=300, ears at y=100
	return pose.Candidate{
		Score: score,
		Landmarks: []pose.Landmark{
			{Name: pose.Nose, X: noseX, Y: noseY, Score: score},
			{Name: pose.LeftEar, X: noseX - 30, Y: 100, Score: score},
			{Name: pose.RightEar, X: noseX + 30, Y: 100, Score: score},
			{Name: pose.LeftShoulder, X: 200, Y: 300, Score: score},
			{Name: pose.RightShoulder, X: 400, Y: 300, Score: score},
		},
	}
}

func script() [][]pose.Candidate {
	var frames [][]pose.Candidate

	// Hold center, lean right, come back.
	for i := 0; i < 30; i++ {
		frames = append(frames, []pose.Candidate{person(0.5, 1.0)})
	}
	for i := 0; i < 60; i++ {
		frames = append(frames, []pose.Candidate{person(0.95, 1.0)})
	}
	for i := 0; i < 30; i++ {
		frames = append(frames, []pose.Candidate{person(0.5, 1.0)})
	}

	// Tracking lost: the signal should decay toward neutral.
	for i := 0; i < 60; i++ {
		frames = append(frames, nil)
	}

	// Two people: treated exactly like nobody.
	for i := 0; i < 30; i++ {
		frames = append(frames, []pose.Candidate{person(0.1, 1.0), person(0.9, 1.0)})
	}
	return frames
}

func main() {
	fps := flag.Int("fps", 30, "simulated frame rate")
	flag.Parse()
	log.Init("warn")

	provider := vision.NewScript(script())
	smoother := steer.NewSmoother()
	pipe := pipeline.New(nullSource{}, provider, smoother, printer{}, time.Second/time.Duration(*fps))

	go pipe.Run()
	time.Sleep(time.Duration(len(script())+10) * time.Second / time.Duration(*fps))
	pipe.Stop()

	stats := pipe.Stats()
	fmt.Printf("\nticks=%d no_pose=%d skipped=%d errors=%d\n",
		stats.Ticks, stats.NoPoseTicks, stats.SkippedTicks, stats.ErrorCount)
}
