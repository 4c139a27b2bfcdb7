package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Yessenchik/online-quiz-app/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	pings  int
	closed bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("connection closed")
	}
	if messageType == websocket.PingMessage {
		f.pings++
		return nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

// received decodes every text frame written so far.
func (f *fakeConn) received(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]map[string]any, 0, len(f.frames))
	for _, frame := range f.frames {
		var msg map[string]any
		require.NoError(t, json.Unmarshal(frame, &msg))
		out = append(out, msg)
	}
	return out
}

func (f *fakeConn) last(t *testing.T) map[string]any {
	t.Helper()
	msgs := f.received(t)
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

type stubUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*models.User
	fail   bool
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*models.User)}
}

func userKey(roomCode, username string) string {
	return roomCode + "|" + username
}

func (s *stubUserStore) FindUser(roomCode, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	return s.users[userKey(roomCode, username)], nil
}

func (s *stubUserStore) CreateUser(roomCode, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	s.nextID++
	u := &models.User{ID: s.nextID, Username: username, RoomID: roomCode}
	s.users[userKey(roomCode, username)] = u
	return u, nil
}

func (s *stubUserStore) RoomInUse(roomCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return false, errors.New("store unavailable")
	}
	for _, u := range s.users {
		if u.RoomID == roomCode {
			return true, nil
		}
	}
	return false, nil
}

type attemptRow struct {
	roomCode   string
	username   string
	questionID *string
	correct    bool
}

type stubAttemptStore struct {
	mu       sync.Mutex
	appended []attemptRow
	err      error
}

func (s *stubAttemptStore) Append(roomCode, username string, questionID *string, correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, attemptRow{roomCode, username, questionID, correct})
	return nil
}

func (s *stubAttemptStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appended)
}

func (s *stubAttemptStore) rows() []attemptRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]attemptRow(nil), s.appended...)
}

func newTestDispatcher() (*Dispatcher, *Hub, *stubUserStore, *stubAttemptStore) {
	hub := NewHub()
	users := newStubUserStore()
	attempts := &stubAttemptStore{}
	return NewDispatcher(hub, users, attempts), hub, users, attempts
}

func newTestClient(hub *Hub) (*Client, *fakeConn) {
	conn := &fakeConn{}
	c := NewClient(conn)
	hub.Track(c)
	return c, conn
}

func dispatchJSON(t *testing.T, d *Dispatcher, c *Client, format string, args ...any) {
	t.Helper()
	d.Dispatch(c, []byte(fmt.Sprintf(format, args...)))
}
