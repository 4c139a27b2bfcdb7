package ws

import (
	"log"
	"sync"
)

// Member is one participant's live state inside a room, owned by the hub and
// keyed by its connection.
type Member struct {
	ID       uint
	Username string
	Score    int
	Ready    bool
}

// room holds a roster keyed by connection plus the join order, which drives
// snapshot and broadcast ordering.
type room struct {
	members map[*Client]*Member
	order   []*Client
}

// Hub is the room registry: it owns every room, its membership, and fan-out.
// One mutex guards all of it; every mutation happens inside a hub method.
// A room with no connections is removed from the registry immediately.
type Hub struct {
	mu      sync.Mutex
	rooms   map[string]*room
	clients map[*Client]struct{} // every tracked socket, for the liveness sweep
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]*room),
		clients: make(map[*Client]struct{}),
	}
}

// Track registers a socket with the liveness sweep. Tracking is independent
// of room membership; a client is tracked from upgrade to disconnect.
func (h *Hub) Track(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) Untrack(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Join adds c to the room's roster, creating the room if absent. Joining a
// room the connection is already in replaces its member without duplicating
// the connection. Returns the roster after the mutation.
func (h *Hub) Join(c *Client, code string, m *Member) []UserSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[code]
	if r == nil {
		r = &room{members: make(map[*Client]*Member)}
		h.rooms[code] = r
		log.Printf("ws: room %s created", code)
	}
	if _, exists := r.members[c]; !exists {
		r.order = append(r.order, c)
	}
	r.members[c] = m
	return r.snapshotLocked()
}

// Leave removes c from the room and deletes the room once its last
// connection is gone. Returns the removed member and the remaining roster
// (nil when the room emptied).
func (h *Hub) Leave(c *Client, code string) (*Member, []UserSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[code]
	if r == nil {
		return nil, nil, false
	}
	m, exists := r.members[c]
	if !exists {
		return nil, nil, false
	}

	delete(r.members, c)
	for i, oc := range r.order {
		if oc == c {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if len(r.members) == 0 {
		delete(h.rooms, code)
		log.Printf("ws: room %s empty, removed", code)
		return m, nil, true
	}
	return m, r.snapshotLocked(), true
}

// SetReady flips the ready flag for c's member. No-op when c has no member
// in the room.
func (h *Hub) SetReady(c *Client, code string, ready bool) ([]UserSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[code]
	if r == nil {
		return nil, false
	}
	m, exists := r.members[c]
	if !exists {
		return nil, false
	}
	m.Ready = ready
	return r.snapshotLocked(), true
}

// AddScore adds delta to c's member score. Negative deltas are ignored so a
// score can never decrease.
func (h *Hub) AddScore(c *Client, code string, delta int) ([]UserSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[code]
	if r == nil {
		return nil, false
	}
	m, exists := r.members[c]
	if !exists {
		return nil, false
	}
	if delta > 0 {
		m.Score += delta
	}
	return r.snapshotLocked(), true
}

// Snapshot returns the room's roster in join order, or false when the room
// does not exist.
func (h *Hub) Snapshot(code string) ([]UserSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[code]
	if r == nil {
		return nil, false
	}
	return r.snapshotLocked(), true
}

func (h *Hub) RoomExists(code string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, exists := h.rooms[code]
	return exists
}

// Broadcast delivers an already-marshaled payload to every connection in the
// room, in join order. Dead sockets are skipped; their removal belongs to
// their own read loops.
func (h *Hub) Broadcast(code string, data []byte) {
	if data == nil {
		return
	}

	h.mu.Lock()
	r := h.rooms[code]
	var conns []*Client
	if r != nil {
		conns = append(conns, r.order...)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.send(data)
	}
}

func (r *room) snapshotLocked() []UserSnapshot {
	users := make([]UserSnapshot, 0, len(r.order))
	for _, c := range r.order {
		m := r.members[c]
		users = append(users, UserSnapshot{
			ID:       m.ID,
			Username: m.Username,
			Score:    m.Score,
			Ready:    m.Ready,
		})
	}
	return users
}
