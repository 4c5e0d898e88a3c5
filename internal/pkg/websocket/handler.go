package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades admin requests to the live order feed
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Live order feed
// @Description Upgrades to a WebSocket that receives one message per completed order. Requires the admin session cookie.
// @Tags admin, websocket
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 303 {string} string "Redirect to /login when no admin is signed in"
// @Router /admin/live [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	subscriber := c.GetString("adminEmail")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn().Err(err).Str("subscriber", subscriber).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		subscriber: subscriber,
		topic:      TopicOrders,
		logger:     h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("subscriber", subscriber).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
