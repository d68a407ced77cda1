// Package events provides the WebSocket hub that streams task lifecycle
// events (created, updated, deleted) to connected dashboard clients.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"zerim-todo/internal/logging"
)

// Event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is a task change notification pushed to subscribers.
type Event struct {
	Type      string      `json:"type"`
	Action    string      `json:"action,omitempty"`
	TaskID    string      `json:"task_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// NewTaskEvent builds a task lifecycle event carrying the task payload.
func NewTaskEvent(action, taskID string, data interface{}) Event {
	return Event{
		Type:      "task",
		Action:    action,
		TaskID:    taskID,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Client is one WebSocket subscriber.
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan Event
	hub    *Hub
	logger logging.Logger

	closed bool
	mu     sync.Mutex
}

// NewClient wraps an upgraded connection for hub registration.
func NewClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:     id,
		Conn:   conn,
		Send:   make(chan Event, 256),
		hub:    hub,
		logger: hub.logger,
	}
}

// safeClose closes the send channel exactly once.
func (c *Client) safeClose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// Hub fans task events out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
	logger     logging.Logger
}

// NewHub creates an event hub. Run must be called before clients connect.
func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		logger:     logger.WithComponent("events"),
	}
}

// Run drives the hub until the context is cancelled, then closes every
// remaining client connection.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			client.safeClose()
			_ = client.Conn.Close()
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", "client_id", client.ID, "total", total)

			welcome := Event{
				Type:      "connection",
				Action:    "connected",
				Timestamp: time.Now(),
				Data:      map[string]interface{}{"client_id": client.ID},
			}
			select {
			case client.Send <- welcome:
			default:
				h.removeClient(client)
			}

		case client := <-h.unregister:
			h.removeClient(client)

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- event:
				default:
					// Send buffer full; the client is too slow to keep.
					go h.removeClient(client)
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.logger.Info("websocket hub shutting down")
			return
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.safeClose()
		_ = client.Conn.Close()
		h.logger.Debug("websocket client disconnected", "client_id", client.ID, "total", len(h.clients))
	}
}

// RegisterClient hands a new client to the hub loop.
func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

// Broadcast queues an event for delivery to all clients. Events are dropped
// when the queue is full rather than blocking request handlers.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast queue full, dropping event", "type", event.Type, "action", event.Action)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WritePump streams events from the hub to the connection, pinging on an
// interval to keep intermediaries from dropping idle connections.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				c.logger.Debug("websocket write failed", "client_id", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// ReadPump drains the connection so pong handlers run, unregistering the
// client when the peer goes away. Inbound payloads are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "client_id", c.ID, "error", err)
			}
			return
		}
	}
}
