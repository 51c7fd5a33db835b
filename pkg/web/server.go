// Package web provides the drivehard dashboard: a live indicator page
// fed by the smoothed steering signals over WebSocket. It is a pure
// consumer of the pipeline's output; nothing flows back into the core
// beyond the operator's recenter action.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/freedmand/drivehard/internal/log"
	"github.com/freedmand/drivehard/pkg/hub"
	"github.com/freedmand/drivehard/pkg/protocol"
)

// Server is the dashboard server.
type Server struct {
	app  *fiber.App
	port string

	// State
	state   protocol.StateData
	stateMu sync.RWMutex

	// Latest published signals
	signals   protocol.SignalData
	signalsMu sync.RWMutex

	// Hub for websocket broadcast
	signalHub *hub.Hub

	// OnReset recenters the smoother when the operator asks.
	OnReset func()
}

// NewServer creates a dashboard server on the given port.
func NewServer(port string) *Server {
	s := &Server{
		port:      port,
		signalHub: hub.New("signals"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "drivehard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static indicator page
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/signals", s.handleSignals)
	api.Post("/reset", s.handleReset)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/signals", websocket.New(s.handleSignalsWS))

	s.app = app
	return s
}

// Start starts the web server. Blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "url", "http://localhost:"+s.port)
	go s.signalHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "err", err)
		}
	}()
}

// PublishSignals records the latest signal frame and broadcasts it.
// Implements the pipeline's Publisher contract.
func (s *Server) PublishSignals(data protocol.SignalData) {
	s.signalsMu.Lock()
	s.signals = data
	s.signalsMu.Unlock()

	msg, err := protocol.NewSignalMessage(data)
	if err != nil {
		return
	}
	raw, err := msg.Bytes()
	if err != nil {
		return
	}
	s.signalHub.Broadcast(hub.NewJSONMessage(raw))
}

// UpdateState mutates the dashboard state snapshot.
func (s *Server) UpdateState(update func(*protocol.StateData)) {
	s.stateMu.Lock()
	update(&s.state)
	s.stateMu.Unlock()
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
