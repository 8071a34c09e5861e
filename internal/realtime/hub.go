package realtime

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub tracks every live connection and fans broadcasts out to all of
// them. Broadcasts are global: every connection sees every other
// connection's catalog pushes and cart announcements.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closeSend()
	}
}

// Broadcast queues the event for every connected client. A client
// whose queue is full is dropped rather than blocking the rest.
func (h *Hub) Broadcast(event string, data any) {
	env, err := NewEnvelope(event, data)
	if err != nil {
		h.log.Errorf("broadcast marshal failed: %v", err)
		return
	}
	raw, err := json.Marshal(env)
	if err != nil {
		h.log.Errorf("broadcast marshal failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.trySend(raw) {
			delete(h.clients, c)
			c.closeSend()
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
