// drivehard - head-steering signal service.
// Tracks one person's pose from the webcam and turns nose/ear/shoulder
// geometry into two smoothed steering signals on a live dashboard.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freedmand/drivehard/internal/config"
	"github.com/freedmand/drivehard/internal/log"
	"github.com/freedmand/drivehard/pkg/camera"
	"github.com/freedmand/drivehard/pkg/debug"
	"github.com/freedmand/drivehard/pkg/pipeline"
	"github.com/freedmand/drivehard/pkg/protocol"
	"github.com/freedmand/drivehard/pkg/steer"
	"github.com/freedmand/drivehard/pkg/vision"
	"github.com/freedmand/drivehard/pkg/web"
)

func main() {
	device := flag.Int("camera", config.CameraDevice(), "capture device index")
	width := flag.Int("width", config.FrameWidth(), "frame width")
	height := flag.Int("height", config.FrameHeight(), "frame height")
	fps := flag.Int("fps", config.FrameRate(), "target frame rate")
	port := flag.String("port", config.WebPort(), "dashboard port")
	model := flag.String("model", config.ModelPath(), "pose model path (ONNX)")
	remote := flag.String("remote", config.RemoteEstimatorURL(), "remote estimator ws:// URL (skips local inference)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	debugSignals := flag.Bool("debug-signals", false, "verbose per-frame signal logs")
	flag.Parse()

	log.Init(*logLevel)
	debug.Signals = *debugSignals

	// Frame source. Upstream unavailability is fatal here, before the
	// pipeline ever runs.
	camCfg := camera.Config{Device: *device, Width: *width, Height: *height, Framerate: *fps}
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "camera error: %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()
	actual := cam.ActualConfig()
	log.Info("camera ready", "device", actual.Device,
		"size", fmt.Sprintf("%dx%d", actual.Width, actual.Height), "fps", actual.Framerate)

	// Pose provider: remote estimator if configured, in-process MoveNet
	// otherwise.
	var provider vision.Provider
	if *remote != "" {
		r := vision.NewRemote(*remote)
		if err := r.Connect(); err != nil {
			fmt.Fprintf(os.Stderr, "estimator error: %v\n", err)
			os.Exit(1)
		}
		provider = r
	} else {
		visCfg := vision.DefaultConfig()
		visCfg.ModelPath = *model
		m, err := vision.NewMoveNet(visCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "model error: %v\n", err)
			os.Exit(1)
		}
		provider = m
	}
	defer provider.Close()

	smoother := steer.NewSmoother()

	server := web.NewServer(*port)
	server.OnReset = smoother.Reset
	server.UpdateState(func(st *protocol.StateData) {
		st.CameraReady = cam.Ready()
		st.ProviderReady = provider.Ready()
		st.FrameWidth = actual.Width
		st.FrameHeight = actual.Height
		st.Framerate = actual.Framerate
	})
	server.StartAsync()

	rate := time.Second / time.Duration(*fps)
	pipe := pipeline.New(cam, provider, smoother, server, rate)
	go pipe.Run()

	// Refresh the dashboard state snapshot off the hot path.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			stats := pipe.Stats()
			server.UpdateState(func(st *protocol.StateData) {
				st.CameraReady = cam.Ready()
				st.ProviderReady = provider.Ready()
				st.Ticks = stats.Ticks
				st.NoPoseTicks = stats.NoPoseTicks
				st.ErrorCount = stats.ErrorCount
			})
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	pipe.Stop()
	server.Shutdown()
}
