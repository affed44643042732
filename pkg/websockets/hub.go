package websockets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Hub is the in-process publisher used by the local server, where clients
// connect directly instead of through API Gateway.
type Hub struct {
	mu     sync.Mutex
	conns  map[string]*websocket.Conn
	logger *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{conns: make(map[string]*websocket.Conn), logger: logger}
}

// Attach starts delivering messages to conn.
func (h *Hub) Attach(connectionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connectionID] = conn
}

// Detach stops delivering messages to a connection.
func (h *Hub) Detach(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connectionID)
}

// Len returns the number of attached connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish writes message to every attached connection. A connection that
// fails a write is dropped.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.conns {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("publish interrupted: %w", err)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(message); err != nil {
			h.logger.Warn("dropping local connection after failed write", "connectionId", id, "error", err)
			_ = conn.Close()
			delete(h.conns, id)
		}
	}
	return nil
}
