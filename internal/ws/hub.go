package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pizza-delivery/api/internal/metrics"
)

// AllOrdersRoom receives every order event. Staff connections join it;
// everyone else joins the room of their own user ID. Serial user IDs start
// at 1, so 0 never collides.
const AllOrdersRoom int32 = 0

// Event types published by the order handlers.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type orderEvent struct {
	OwnerID int32
	Event   Event
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	// Registered clients by room
	rooms map[int32]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan *orderEvent

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[int32]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *orderEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, closing
// every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for room, clients := range h.rooms {
				for client := range clients {
					close(client.send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.room] == nil {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			h.deliver(AllOrdersRoom, message)
			if event.OwnerID != AllOrdersRoom {
				h.deliver(event.OwnerID, message)
			}
			h.mu.Unlock()
		}
	}
}

// deliver must be called with mu held.
func (h *Hub) deliver(room int32, message []byte) {
	for client := range h.rooms[room] {
		select {
		case client.send <- message:
		default:
			// Slow consumer; drop it rather than stall the hub.
			h.remove(client)
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
}

// BroadcastOrderEvent publishes an event to staff subscribers and to the
// order owner's own connections.
func (h *Hub) BroadcastOrderEvent(ownerID int32, event Event) {
	metrics.OrderEvents.WithLabelValues(event.Type).Inc()
	select {
	case h.broadcast <- &orderEvent{OwnerID: ownerID, Event: event}:
	case <-h.done:
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
