package communication

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait       = 5 * time.Second
	broadcastBuffer = 64
)

// ErrHubBusy is returned when the broadcast queue is full and the event is dropped.
var ErrHubBusy = errors.New("websocket hub busy, event dropped")

// ErrHubClosed is returned once the hub's Run loop has exited.
var ErrHubClosed = errors.New("websocket hub closed")

// Hub keeps the set of connected websocket clients and pushes events to them.
// The client set is owned by the Run goroutine.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("Websocket client connected", zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}

		case event := <-h.broadcast:
			for client := range h.clients {
				client.SetWriteDeadline(time.Now().Add(writeWait))
				if err := client.WriteJSON(event); err != nil {
					h.logger.Warn("WebSocket write failed, dropping client", zap.Error(err))
					client.Close()
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish queues an event for all clients without waiting on slow connections.
func (h *Hub) Publish(event Event) error {
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- event:
		return nil
	default:
		return ErrHubBusy
	}
}

// Register adds a client. It returns false when the hub has stopped.
func (h *Hub) Register(conn *websocket.Conn) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes and closes a client.
func (h *Hub) Unregister(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}
