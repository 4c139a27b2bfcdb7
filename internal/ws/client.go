package ws

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is the subset of websocket capabilities the hub relies on.
// *websocket.Conn satisfies it; tests substitute a fake.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one live socket. The room/username binding is only touched from
// the connection's read goroutine, so it needs no lock. Socket writes are
// serialized by writeMu because gorilla permits a single concurrent writer.
type Client struct {
	ID   string
	conn Conn

	writeMu sync.Mutex
	alive   atomic.Bool

	room     string
	username string
}

func NewClient(conn Conn) *Client {
	c := &Client{ID: uuid.NewString(), conn: conn}
	c.alive.Store(true)
	return c
}

// MarkAlive records a pong from the peer; the liveness sweep clears the flag
// before each probe.
func (c *Client) MarkAlive() {
	c.alive.Store(true)
}

// Bound reports whether the client has joined a room.
func (c *Client) Bound() bool {
	return c.room != ""
}

func (c *Client) send(data []byte) {
	if data == nil {
		return
	}
	c.writeMu.Lock()
	err := c.conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		// The socket is gone; its read loop owns cleanup.
		log.Printf("ws: write to client %s failed: %v", c.ID, err)
	}
}

func (c *Client) ping() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.WriteMessage(websocket.PingMessage, nil)
}
