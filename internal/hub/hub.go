package hub

import (
	"context"
	"sync"

	"github.com/michaelquigley/df/dl"
)

// Hub manages WebSocket clients and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Register adds a new client to the hub. After Run has returned the client
// is closed instead.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		h.mu.Lock()
		h.closeLocked(c)
		h.mu.Unlock()
	}
}

// Unregister removes a client from the hub. It returns immediately once Run
// has returned.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client. A client whose buffer is full
// is disconnected.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			go h.Unregister(client)
		}
	}
}

// deliver queues msg for one client. It reports false when the client is
// closed or its buffer is full.
func (h *Hub) deliver(c *Client, msg []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeLocked closes the client's send channel once. h.mu must be held.
func (h *Hub) closeLocked(c *Client) {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Run starts the hub's main loop. Should be run in a goroutine, once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				h.closeLocked(client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !client.closed {
				h.clients[client] = true
			}
			n := len(h.clients)
			h.mu.Unlock()
			dl.Infof("client connected (total: %d)", n)

		case client := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, client)
			h.closeLocked(client)
			n := len(h.clients)
			h.mu.Unlock()
			dl.Infof("client disconnected (total: %d)", n)
		}
	}
}
