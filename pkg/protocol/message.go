// Package protocol defines the WebSocket message types drivehard uses
// on both of its wire boundaries: inbound pose estimates from a remote
// estimator, and outbound signal updates to dashboard clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/freedmand/drivehard/pkg/pose"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Estimator → drivehard messages
	TypePose MessageType = "pose" // Pose candidates for one frame

	// drivehard → Dashboard messages
	TypeSignal MessageType = "signal" // Smoothed steering signals
	TypeState  MessageType = "state"  // Pipeline state snapshot

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Estimator → drivehard Message Types
// =============================================================================

// PoseData carries the candidate list an external estimator produced
// for one frame. Zero candidates is a valid payload (nobody in frame).
type PoseData struct {
	Candidates []pose.Candidate `json:"candidates"`
	FrameID    uint64           `json:"frame_id,omitempty"`
}

// =============================================================================
// drivehard → Dashboard Message Types
// =============================================================================

// SignalData is one frame's smoothed steering output. Raw values are
// included so the dashboard can chart jitter against the filtered pair.
type SignalData struct {
	X        float64 `json:"x"`         // Smoothed horizontal signal, 0-1
	Y        float64 `json:"y"`         // Smoothed vertical signal, 0-1
	EngagedX bool    `json:"engaged_x"` // Outside the deadband
	EngagedY bool    `json:"engaged_y"`
	RawX     float64 `json:"raw_x"`               // Unsmoothed estimate (may exceed 0-1)
	RawY     float64 `json:"raw_y,omitempty"`     // Only meaningful when RawYSet
	RawYSet  bool    `json:"raw_y_set,omitempty"` // Vertical gate passed this frame
}

// StateData is a pipeline state snapshot for the dashboard.
type StateData struct {
	CameraReady   bool   `json:"camera_ready"`
	ProviderReady bool   `json:"provider_ready"`
	FrameWidth    int    `json:"frame_width"`
	FrameHeight   int    `json:"frame_height"`
	Framerate     int    `json:"framerate"`
	Ticks         uint64 `json:"ticks"`
	NoPoseTicks   uint64 `json:"no_pose_ticks"`
	ErrorCount    uint64 `json:"error_count"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
