package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/freedmand/drivehard/pkg/hub"
)

// handleStatus returns the pipeline state snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleSignals returns the most recent signal frame. Clients that only
// poll occasionally use this instead of the websocket stream.
func (s *Server) handleSignals(c *fiber.Ctx) error {
	s.signalsMu.RLock()
	defer s.signalsMu.RUnlock()
	return c.JSON(s.signals)
}

// handleReset recenters the smoother at neutral.
func (s *Server) handleReset(c *fiber.Ctx) error {
	if s.OnReset == nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "reset not configured",
		})
	}
	s.OnReset()
	return c.JSON(fiber.Map{"reset": true})
}

// handleSignalsWS streams signal messages to a dashboard client.
func (s *Server) handleSignalsWS(c *websocket.Conn) {
	client := hub.NewClient(s.signalHub, c)
	client.Run() // Blocks until the connection closes
}
