// Package config provides configuration helpers for drivehard commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default pipeline configuration.
const (
	DefaultCameraDevice = 0
	DefaultFrameWidth   = 640
	DefaultFrameHeight  = 480
	DefaultFrameRate    = 60
	DefaultWebPort      = "8080"
	DefaultModelPath    = "models/movenet_singlepose_lightning.onnx"
)

// CameraDevice returns the capture device index from DRIVEHARD_CAMERA.
func CameraDevice() int {
	return envInt("DRIVEHARD_CAMERA", DefaultCameraDevice)
}

// FrameWidth returns the capture width from DRIVEHARD_WIDTH.
func FrameWidth() int {
	return envInt("DRIVEHARD_WIDTH", DefaultFrameWidth)
}

// FrameHeight returns the capture height from DRIVEHARD_HEIGHT.
func FrameHeight() int {
	return envInt("DRIVEHARD_HEIGHT", DefaultFrameHeight)
}

// FrameRate returns the target frames per second from DRIVEHARD_FPS.
func FrameRate() int {
	return envInt("DRIVEHARD_FPS", DefaultFrameRate)
}

// WebPort returns the dashboard port from DRIVEHARD_PORT.
func WebPort() string {
	if port := os.Getenv("DRIVEHARD_PORT"); port != "" {
		return port
	}
	return DefaultWebPort
}

// ModelPath returns the pose model path from DRIVEHARD_MODEL.
func ModelPath() string {
	if path := os.Getenv("DRIVEHARD_MODEL"); path != "" {
		return path
	}
	return DefaultModelPath
}

// RemoteEstimatorURL returns the websocket URL of an external pose
// estimator from DRIVEHARD_REMOTE, or "" when inference runs in-process.
func RemoteEstimatorURL() string {
	return os.Getenv("DRIVEHARD_REMOTE")
}

// RemoteEstimatorRequired returns the remote estimator URL.
// Exits if not set.
func RemoteEstimatorRequired() string {
	url := os.Getenv("DRIVEHARD_REMOTE")
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: DRIVEHARD_REMOTE environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: DRIVEHARD_REMOTE=ws://localhost:9001/poses go run ./cmd/...")
		os.Exit(1)
	}
	return url
}

func envInt(key string, def int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return def
}
