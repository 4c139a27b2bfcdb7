package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"

	"github.com/Yessenchik/online-quiz-app/internal/models"
	"github.com/Yessenchik/online-quiz-app/internal/roomcode"
)

const (
	maxUsernameLen     = 24
	correctAnswerScore = 100
)

// UserStore is the durable user capability the dispatcher consumes.
// *services.UserService implements it.
type UserStore interface {
	FindUser(roomCode, username string) (*models.User, error)
	CreateUser(roomCode, username string) (*models.User, error)
	RoomInUse(roomCode string) (bool, error)
}

// AttemptStore appends immutable answer records. *services.AttemptService
// implements it.
type AttemptStore interface {
	Append(roomCode, username string, questionID *string, correct bool) error
}

// Dispatcher decodes inbound messages, validates them, and routes them to hub
// operations. Dispatch runs on the connection's read goroutine, which keeps
// per-connection ordering without any extra queueing. Persistence is
// fire-and-forget: a store outage degrades to unrecorded rows, never to a
// failed join or a dropped broadcast.
type Dispatcher struct {
	hub      *Hub
	users    UserStore
	attempts AttemptStore
}

func NewDispatcher(hub *Hub, users UserStore, attempts AttemptStore) *Dispatcher {
	return &Dispatcher{hub: hub, users: users, attempts: attempts}
}

func (d *Dispatcher) Dispatch(c *Client, raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		d.sendError(c, "Invalid JSON")
		return
	}

	switch msg.Type {
	case "create_room":
		d.createRoom(c)
	case "join_room":
		d.joinRoom(c, msg)
	case "ready_toggle":
		d.readyToggle(c, msg)
	case "start_quiz":
		d.startQuiz(c)
	case "answer":
		d.answer(c, msg)
	case "leave_room":
		d.removeFromRoom(c)
	default:
		d.sendError(c, fmt.Sprintf("Unknown type: %s", msg.Type))
	}
}

// Disconnect runs the leave path for a socket whose read loop has ended, then
// drops it from liveness tracking.
func (d *Dispatcher) Disconnect(c *Client) {
	d.removeFromRoom(c)
	d.hub.Untrack(c)
	_ = c.conn.Close()
}

func (d *Dispatcher) createRoom(c *Client) {
	code := d.freshCode()
	c.send(envelope("room_created", map[string]any{"roomId": code}))
}

func (d *Dispatcher) joinRoom(c *Client, msg ClientMessage) {
	username := strings.TrimSpace(msg.Username)
	if runes := []rune(username); len(runes) > maxUsernameLen {
		username = string(runes[:maxUsernameLen])
	}
	if msg.RoomID == "" || username == "" {
		d.sendError(c, "roomId and username required")
		return
	}
	if !roomcode.Valid(msg.RoomID) {
		d.sendError(c, "Invalid room code")
		return
	}
	if c.Bound() && c.room != msg.RoomID {
		d.sendError(c, "Leave your current room first")
		return
	}

	member := &Member{ID: d.lookupUserID(msg.RoomID, username), Username: username}
	users := d.hub.Join(c, msg.RoomID, member)
	c.room = msg.RoomID
	c.username = username

	c.send(envelope("joined", map[string]any{"roomId": msg.RoomID, "users": users}))
	d.hub.Broadcast(msg.RoomID, envelope("user_joined", map[string]any{
		"user":  map[string]any{"username": username, "score": 0},
		"users": users,
	}))
}

func (d *Dispatcher) readyToggle(c *Client, msg ClientMessage) {
	if !c.Bound() {
		d.sendError(c, "Join a room first")
		return
	}
	users, ok := d.hub.SetReady(c, c.room, msg.Ready)
	if !ok {
		return
	}
	d.hub.Broadcast(c.room, envelope("state", map[string]any{"roomId": c.room, "users": users}))
}

func (d *Dispatcher) startQuiz(c *Client) {
	if !c.Bound() {
		d.sendError(c, "Join a room first")
		return
	}
	d.hub.Broadcast(c.room, envelope("quiz_started", nil))
}

func (d *Dispatcher) answer(c *Client, msg ClientMessage) {
	if !c.Bound() {
		d.sendError(c, "Join a room first")
		return
	}

	delta := 0
	if msg.IsCorrect {
		delta = correctAnswerScore
	}
	users, ok := d.hub.AddScore(c, c.room, delta)
	if !ok {
		return
	}

	roomID, username := c.room, c.username
	questionID := questionIDString(msg.QuestionID)
	go func() {
		if err := d.attempts.Append(roomID, username, questionID, msg.IsCorrect); err != nil {
			log.Printf("ws: append attempt for %s in room %s failed: %v", username, roomID, err)
		}
	}()

	d.hub.Broadcast(roomID, envelope("score_update", map[string]any{"users": users}))
}

func (d *Dispatcher) removeFromRoom(c *Client) {
	if !c.Bound() {
		return
	}
	roomID := c.room
	member, users, ok := d.hub.Leave(c, roomID)
	c.room, c.username = "", ""
	if !ok || users == nil {
		return
	}

	fields := map[string]any{"users": users}
	if member != nil {
		fields["user"] = member.Username
	}
	d.hub.Broadcast(roomID, envelope("user_left", fields))
}

func (d *Dispatcher) sendError(c *Client, message string) {
	c.send(envelope("error", map[string]any{"message": message}))
}

// freshCode finds a code bound to no live room and no durable user rows. A
// store failure only disables the durable probe; code generation never fails.
func (d *Dispatcher) freshCode() string {
	for {
		code := roomcode.Generate()
		if d.hub.RoomExists(code) {
			continue
		}
		inUse, err := d.users.RoomInUse(code)
		if err != nil {
			log.Printf("ws: room code probe failed: %v", err)
			return code
		}
		if !inUse {
			return code
		}
	}
}

// lookupUserID resolves the durable id for (room, username), inserting a row
// on first join. On store failure the member gets a random local id and the
// join proceeds.
func (d *Dispatcher) lookupUserID(roomCode, username string) uint {
	user, err := d.users.FindUser(roomCode, username)
	if err == nil && user != nil {
		return user.ID
	}
	if err == nil {
		user, err = d.users.CreateUser(roomCode, username)
		if err == nil {
			return user.ID
		}
	}
	log.Printf("ws: user lookup for %s in room %s failed: %v", username, roomCode, err)
	return fallbackUserID()
}

func fallbackUserID() uint {
	return uint(rand.Intn(math.MaxInt32)) + 1
}

// questionIDString normalizes the inbound questionId, which clients send as a
// string, a number, or null.
func questionIDString(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	v := string(raw)
	return &v
}
