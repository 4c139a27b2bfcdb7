package ws

import (
	"context"
	"log"
	"time"
)

// RunLiveness probes every tracked socket on a fixed interval until ctx is
// done. A socket that missed the previous probe is closed; its read loop then
// drives the normal leave path.
func (h *Hub) RunLiveness(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep()
		}
	}
}

func (h *Hub) sweep() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if !c.alive.Load() {
			log.Printf("ws: client %s unresponsive, closing", c.ID)
			_ = c.conn.Close()
			continue
		}
		c.alive.Store(false)
		c.ping()
	}
}
