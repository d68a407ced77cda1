package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"zerim-todo/internal/events"
	"zerim-todo/internal/logging"
)

// WebSocketHandler upgrades /ws connections and attaches them to the event
// hub.
type WebSocketHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewWebSocketHandler creates a websocket handler. checkOrigin decides which
// origins may connect; nil allows all.
func NewWebSocketHandler(hub *events.Hub, checkOrigin func(*http.Request) bool, logger logging.Logger) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger.WithComponent("websocket"),
	}
}

// Serve handles GET /ws.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := events.NewClient(uuid.New().String(), conn, h.hub)
	h.hub.RegisterClient(client)

	// The request context dies when this handler returns; the pumps live
	// until the peer disconnects or the hub shuts the connection down.
	go client.WritePump(context.Background())
	go client.ReadPump()
}
