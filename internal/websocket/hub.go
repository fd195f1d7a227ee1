package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Event represents a real-time sync notification pushed to connected clients.
type Event struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     string         `json:"id,omitempty"`
	ClubID string         `json:"club_id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// NewEvent creates an Event with the Type field derived from entity and action.
func NewEvent(entity, action, id string, extra map[string]any) Event {
	return Event{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// Hub maintains the set of active WebSocket clients and fans events out to
// them. Clients may scope themselves to one club; club-scoped events reach
// that club's listeners plus all unscoped listeners.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(ev Event) {
	h.send(ev, "")
}

// BroadcastClub sends a club-scoped event: clients subscribed to another club
// are skipped, unscoped clients still receive it.
func (h *Hub) BroadcastClub(clubID string, ev Event) {
	ev.ClubID = clubID
	h.send(ev, clubID)
}

func (h *Hub) send(ev Event, clubID string) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if clubID != "" && c.club != "" && c.club != clubID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full, drop rather than block the caller
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
