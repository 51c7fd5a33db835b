package protocol

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/freedmand/drivehard/pkg/pose"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "signal message",
			msgType: TypeSignal,
			data:    SignalData{X: 0.55, Y: 0.5, EngagedX: false, RawX: 1.0},
			wantErr: false,
		},
		{
			name:    "pose message",
			msgType: TypePose,
			data: PoseData{Candidates: []pose.Candidate{
				{Score: 0.9, Landmarks: []pose.Landmark{{Name: pose.Nose, X: 320, Y: 120, Score: 0.9}}},
			}},
			wantErr: false,
		},
		{
			name:    "state message",
			msgType: TypeState,
			data:    StateData{CameraReady: true, FrameWidth: 640, FrameHeight: 480},
			wantErr: false,
		},
		{
			name:    "nil data",
			msgType: TypePing,
			data:    nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if msg == nil && !tt.wantErr {
				t.Error("NewMessage() returned nil message")
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() should set timestamp")
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	orig, err := NewSignalMessage(SignalData{
		X: 0.62, Y: 0.48, EngagedX: true, RawX: 1.3, RawY: 0.4, RawYSet: true,
	})
	if err != nil {
		t.Fatalf("NewSignalMessage() error = %v", err)
	}

	raw, err := orig.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if parsed.Type != TypeSignal {
		t.Errorf("type = %v, want %v", parsed.Type, TypeSignal)
	}

	data, err := parsed.GetSignalData()
	if err != nil {
		t.Fatalf("GetSignalData() error = %v", err)
	}
	if data.X != 0.62 || !data.EngagedX {
		t.Errorf("signal data = %+v, want X=0.62 engaged", data)
	}
	if !data.RawYSet || data.RawY != 0.4 {
		t.Errorf("raw Y = (%v, set=%v), want (0.4, true)", data.RawY, data.RawYSet)
	}
}

func TestPoseDataDecode(t *testing.T) {
	// Wire format an external estimator sends: nested candidates with
	// named landmarks. Missing scores must decode as zero confidence.
	raw := []byte(`{"type":"pose","ts":1700000000000,"data":{"candidates":[
		{"score":0.8,"landmarks":[
			{"name":"nose","x":0.5,"y":0.2,"score":0.9},
			{"name":"left_shoulder","x":0.3,"y":0.6}
		]}
	],"frame_id":42}}`)

	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	data, err := msg.GetPoseData()
	if err != nil {
		t.Fatalf("GetPoseData() error = %v", err)
	}
	if len(data.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(data.Candidates))
	}
	if data.FrameID != 42 {
		t.Errorf("frame id = %d, want 42", data.FrameID)
	}

	c := data.Candidates[0]
	lm, ok := c.Landmark(pose.LeftShoulder)
	if !ok {
		t.Fatal("left shoulder missing")
	}
	if lm.Score != 0 {
		t.Errorf("scoreless landmark decoded with score %v, want 0", lm.Score)
	}
}

func TestParseMessage_Invalid(t *testing.T) {
	if _, err := ParseMessage([]byte("not json")); err == nil {
		t.Error("ParseMessage() should fail on invalid JSON")
	}
}

func TestPingPongLatency(t *testing.T) {
	pingTS := time.Now().UnixMilli()
	pongTS := pingTS + 25

	msg, err := NewPongMessage("abc", pingTS, pongTS)
	if err != nil {
		t.Fatalf("NewPongMessage() error = %v", err)
	}
	data, err := msg.GetPongData()
	if err != nil {
		t.Fatalf("GetPongData() error = %v", err)
	}
	if data.LatencyMs != 25 {
		t.Errorf("latency = %d, want 25", data.LatencyMs)
	}
}

func TestSignalDataOmitsUnsetRawY(t *testing.T) {
	raw, err := json.Marshal(SignalData{X: 0.5, Y: 0.5, RawX: 0.5})
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if _, present := decoded["raw_y_set"]; present {
		t.Error("raw_y_set should be omitted when false")
	}
}

func BenchmarkParseMessage(b *testing.B) {
	msg, _ := NewSignalMessage(SignalData{X: 0.55, Y: 0.5, RawX: 1.0})
	bytes, _ := msg.Bytes()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseMessage(bytes)
	}
}
