// Package notify fans destination events out to websocket subscribers
// grouped in rooms, one room per owner.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const sendBuffer = 64

// Client is one subscriber. Send is closed by the hub when the client is
// removed.
type Client struct {
	Room string
	Send chan []byte
}

func NewClient(room string) *Client {
	return &Client{Room: room, Send: make(chan []byte, sendBuffer)}
}

type broadcastMsg struct {
	room string
	data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(c)
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.room] {
				select {
				case c.Send <- m.data:
				default:
					// slow consumer
					h.logger.Warn("dropping slow websocket client", zap.String("room", m.room))
					h.removeLocked(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(c *Client) {
	clients := h.rooms[c.Room]
	if clients == nil || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.Send)
	if len(clients) == 0 {
		delete(h.rooms, c.Room)
	}
}

func (h *Hub) Register(ctx context.Context, c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-ctx.Done():
		return false
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(ctx context.Context, c *Client) {
	select {
	case h.unregister <- c:
	case <-ctx.Done():
	case <-h.done:
	}
}

// Broadcast queues data for every client in room. It reports false when
// the queue is full and the message was dropped.
func (h *Hub) Broadcast(room string, data []byte) bool {
	select {
	case h.broadcast <- broadcastMsg{room: room, data: data}:
		return true
	default:
		h.logger.Warn("broadcast queue full", zap.String("room", room))
		return false
	}
}

func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
