package vision

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"

	"github.com/freedmand/drivehard/internal/httpc"
	"github.com/freedmand/drivehard/internal/log"
	"github.com/freedmand/drivehard/pkg/pose"
	"github.com/freedmand/drivehard/pkg/protocol"
)

// remoteStaleAfter is how long a remote estimate stays usable. Past it
// the provider reports no candidates, which the core reads as lost
// tracking and decays toward neutral.
const remoteStaleAfter = 500 * time.Millisecond

// Remote consumes pose estimates from an external estimator process
// over WebSocket (protocol pose messages). It ignores the local frame:
// the estimator watches its own video feed and pushes candidates as it
// produces them; Estimate just reports the freshest set.
type Remote struct {
	url string
	ws  *websocket.Conn

	mu       sync.RWMutex
	latest   []pose.Candidate
	latestAt time.Time

	connected bool
	closed    bool
}

// NewRemote creates a remote provider for the given ws:// URL.
func NewRemote(url string) *Remote {
	return &Remote{url: url}
}

// Connect probes the estimator's health endpoint, then dials the
// WebSocket and starts consuming pose messages.
func (r *Remote) Connect() error {
	if err := r.probe(); err != nil {
		log.Warn("estimator health probe failed, dialing anyway", "err", err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := dialer.Dial(r.url, nil)
	if err != nil {
		return fmt.Errorf("estimator connect failed: %w", err)
	}

	r.mu.Lock()
	r.ws = ws
	r.connected = true
	r.mu.Unlock()

	go r.readLoop()
	log.Info("connected to remote estimator", "url", r.url)
	return nil
}

// probe hits the estimator's /healthz over plain HTTP. Estimators that
// don't expose one just fail the probe, which is non-fatal.
func (r *Remote) probe() error {
	u, err := url.Parse(r.url)
	if err != nil {
		return fmt.Errorf("bad estimator URL: %w", err)
	}
	scheme := "http"
	if u.Scheme == "wss" {
		scheme = "https"
	}

	resp, err := httpc.Get(scheme + "://" + u.Host + "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("estimator health status %d", resp.StatusCode)
	}
	return nil
}

func (r *Remote) readLoop() {
	for {
		_, raw, err := r.ws.ReadMessage()
		if err != nil {
			r.mu.Lock()
			r.connected = false
			closed := r.closed
			r.mu.Unlock()
			if !closed {
				log.Warn("estimator connection lost", "err", err)
			}
			return
		}

		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			log.Debug("bad estimator message", "err", err)
			continue
		}

		switch msg.Type {
		case protocol.TypePose:
			data, err := msg.GetPoseData()
			if err != nil {
				log.Debug("bad pose payload", "err", err)
				continue
			}
			r.mu.Lock()
			r.latest = data.Candidates
			r.latestAt = time.Now()
			r.mu.Unlock()

		case protocol.TypePing:
			if data, err := msg.GetPingData(); err == nil {
				now := time.Now().UnixMilli()
				if pong, err := protocol.NewPongMessage(data.ID, data.Timestamp, now); err == nil {
					if raw, err := pong.Bytes(); err == nil {
						r.ws.WriteMessage(websocket.TextMessage, raw)
					}
				}
			}
		}
	}
}

// Estimate returns the freshest candidate set, or none when the last
// estimate has gone stale. The frame argument is unused.
func (r *Remote) Estimate(_ gocv.Mat) ([]pose.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.connected {
		return nil, fmt.Errorf("estimator not connected")
	}
	if time.Since(r.latestAt) > remoteStaleAfter {
		return nil, nil
	}
	return r.latest, nil
}

// Ready reports whether the estimator connection is live.
func (r *Remote) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connected
}

// Close shuts the connection down.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.connected = false
	if r.ws != nil {
		return r.ws.Close()
	}
	return nil
}
