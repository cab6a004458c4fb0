// Package room tracks which users are connected to each auction's
// real-time channel and fans events out to them. Membership is ephemeral
// process state: a restart loses all counts until clients reconnect, so
// presence is a liveness signal, never an audit trail.
package room

import (
	"context"
	"encoding/json"
	"sync"

	"auction-platform/utils"
)

// publication is an event queued for fan-out to one auction's subscribers.
type publication struct {
	auctionID string
	event     Event
}

// Hub owns per-auction membership and event fan-out. It is constructed in
// main and injected into every consumer; there is no process-wide
// singleton and no init-order coupling.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*auctionRoom

	register   chan *Client
	unregister chan *Client
	publish    chan publication
}

// auctionRoom holds one auction's connections. users refcounts
// connections per userID so a user with two tabs counts once.
type auctionRoom struct {
	clients map[*Client]bool
	users   map[string]int
}

// NewHub creates a hub; Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*auctionRoom),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan publication, 256),
	}
}

// Run drives the hub's event loop until the context is cancelled.
// Run in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case p := <-h.publish:
			h.fanOut(p.auctionID, p.event)
		}
	}
}

// Join registers a connected client and rebroadcasts the member count
func (h *Hub) Join(client *Client) {
	h.register <- client
}

// Leave removes a client. Called both for explicit leaves and for abrupt
// disconnects detected by the read pump.
func (h *Hub) Leave(client *Client) {
	h.unregister <- client
}

// Publish queues an event for every subscriber of the auction.
// Fire-and-forget: callers never wait for delivery, and a full queue
// drops the event rather than blocking the caller.
func (h *Hub) Publish(auctionID string, event Event) {
	select {
	case h.publish <- publication{auctionID: auctionID, event: event}:
	default:
		utils.Warn("room publish queue full, dropping event", map[string]any{
			"auction_id": auctionID,
			"event":      event.Type,
		})
	}
}

// ActiveBidders returns the number of distinct users present in a room
func (h *Hub) ActiveBidders(auctionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if r, ok := h.rooms[auctionID]; ok {
		return len(r.users)
	}
	return 0
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	r, ok := h.rooms[client.AuctionID]
	if !ok {
		r = &auctionRoom{clients: make(map[*Client]bool), users: make(map[string]int)}
		h.rooms[client.AuctionID] = r
	}
	r.clients[client] = true
	r.users[client.UserID]++
	count := len(r.users)
	h.mu.Unlock()

	go client.writePump()

	utils.Info("room join", map[string]any{
		"auction_id": client.AuctionID,
		"user_id":    client.UserID,
		"client_id":  client.ID,
		"members":    count,
	})
	h.fanOut(client.AuctionID, MemberCountEvent(count))
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	r, ok := h.rooms[client.AuctionID]
	if !ok || !r.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(r.clients, client)
	r.users[client.UserID]--
	if r.users[client.UserID] <= 0 {
		delete(r.users, client.UserID)
	}
	count := len(r.users)
	if len(r.clients) == 0 {
		delete(h.rooms, client.AuctionID)
	}
	h.mu.Unlock()

	client.close()

	utils.Info("room leave", map[string]any{
		"auction_id": client.AuctionID,
		"user_id":    client.UserID,
		"client_id":  client.ID,
		"members":    count,
	})
	h.fanOut(client.AuctionID, MemberCountEvent(count))
}

// fanOut delivers an event to every client in a room. Clients whose send
// buffer is full are evicted so one slow reader cannot stall the rest.
func (h *Hub) fanOut(auctionID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		utils.Error("room event marshal failed", map[string]any{
			"auction_id": auctionID,
			"event":      event.Type,
			"error":      err.Error(),
		})
		return
	}

	h.mu.RLock()
	r, ok := h.rooms[auctionID]
	if !ok {
		// no subscribers is not an error
		h.mu.RUnlock()
		return
	}
	var slow []*Client
	for client := range r.clients {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.remove(client)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range h.rooms {
		for client := range r.clients {
			client.close()
		}
	}
	h.rooms = make(map[string]*auctionRoom)
}
