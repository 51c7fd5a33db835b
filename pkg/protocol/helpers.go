package protocol

import "github.com/freedmand/drivehard/pkg/pose"

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewPoseMessage creates a pose message from one frame's candidates
func NewPoseMessage(candidates []pose.Candidate, frameID uint64) (*Message, error) {
	return NewMessage(TypePose, PoseData{
		Candidates: candidates,
		FrameID:    frameID,
	})
}

// NewSignalMessage creates a signal update message
func NewSignalMessage(data SignalData) (*Message, error) {
	return NewMessage(TypeSignal, data)
}

// NewStateMessage creates a pipeline state snapshot message
func NewStateMessage(data StateData) (*Message, error) {
	return NewMessage(TypeState, data)
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID:        id,
		Timestamp: 0, // Will be set by NewMessage
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetPoseData extracts pose data from a message
func (m *Message) GetPoseData() (*PoseData, error) {
	var data PoseData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetSignalData extracts signal data from a message
func (m *Message) GetSignalData() (*SignalData, error) {
	var data SignalData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStateData extracts state data from a message
func (m *Message) GetStateData() (*StateData, error) {
	var data StateData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
