package ws

import (
	"encoding/json"
	"sync"

	"codestake/internal/logger"
)

// Event types pushed to dashboard clients.
const (
	EventChallengeCreated = "challenge_created"
	EventProgressRecorded = "progress_recorded"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub fans events out to every connected client. Slow clients are
// dropped rather than blocking the broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast serializes the event and queues it for every client.
func (h *Hub) Broadcast(evt Event) {
	msg, err := json.Marshal(evt)
	if err != nil {
		logger.Error("ws: marshal event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports connected clients (used by tests and readiness).
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
