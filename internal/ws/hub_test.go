package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRosterInJoinOrder(t *testing.T) {
	hub := NewHub()

	names := []string{"alice", "bob", "carol", "dave"}
	for i, name := range names {
		c, _ := newTestClient(hub)
		users := hub.Join(c, "112223", &Member{ID: uint(i + 1), Username: name})
		require.Len(t, users, i+1)
	}

	users, ok := hub.Snapshot("112223")
	require.True(t, ok)
	require.Len(t, users, len(names))
	for i, name := range names {
		assert.Equal(t, name, users[i].Username)
		assert.Equal(t, 0, users[i].Score)
		assert.False(t, users[i].Ready)
	}
}

func TestJoinSameConnectionReplacesMember(t *testing.T) {
	hub := NewHub()
	c, _ := newTestClient(hub)

	hub.Join(c, "112223", &Member{ID: 1, Username: "alice"})
	_, ok := hub.AddScore(c, "112223", 100)
	require.True(t, ok)

	// Re-adding the same connection must not duplicate it, and the member
	// is replaced wholesale.
	users := hub.Join(c, "112223", &Member{ID: 1, Username: "alice"})
	require.Len(t, users, 1)
	assert.Equal(t, 0, users[0].Score)
}

func TestLeaveReturnsMemberAndDropsEmptyRoom(t *testing.T) {
	hub := NewHub()
	c1, _ := newTestClient(hub)
	c2, _ := newTestClient(hub)

	hub.Join(c1, "556667", &Member{ID: 1, Username: "alice"})
	hub.Join(c2, "556667", &Member{ID: 2, Username: "bob"})

	m, users, ok := hub.Leave(c1, "556667")
	require.True(t, ok)
	require.NotNil(t, m)
	assert.Equal(t, "alice", m.Username)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
	assert.True(t, hub.RoomExists("556667"))

	m, users, ok = hub.Leave(c2, "556667")
	require.True(t, ok)
	assert.Equal(t, "bob", m.Username)
	assert.Nil(t, users)
	assert.False(t, hub.RoomExists("556667"))

	// A later join gets a fresh room, not resurrected state.
	c3, _ := newTestClient(hub)
	fresh := hub.Join(c3, "556667", &Member{ID: 3, Username: "carol"})
	require.Len(t, fresh, 1)
	assert.Equal(t, "carol", fresh[0].Username)
	assert.Equal(t, 0, fresh[0].Score)
}

func TestLeaveUnknownConnection(t *testing.T) {
	hub := NewHub()
	c1, _ := newTestClient(hub)
	c2, _ := newTestClient(hub)
	hub.Join(c1, "778889", &Member{ID: 1, Username: "alice"})

	_, _, ok := hub.Leave(c2, "778889")
	assert.False(t, ok)
	_, _, ok = hub.Leave(c1, "000111")
	assert.False(t, ok)
}

func TestSetReadyAndAddScoreRequireMember(t *testing.T) {
	hub := NewHub()
	c, _ := newTestClient(hub)
	outsider, _ := newTestClient(hub)
	hub.Join(c, "334445", &Member{ID: 1, Username: "alice"})

	_, ok := hub.SetReady(outsider, "334445", true)
	assert.False(t, ok)
	_, ok = hub.AddScore(outsider, "334445", 100)
	assert.False(t, ok)

	users, ok := hub.SetReady(c, "334445", true)
	require.True(t, ok)
	assert.True(t, users[0].Ready)
}

func TestScoreNeverDecreases(t *testing.T) {
	hub := NewHub()
	c, _ := newTestClient(hub)
	hub.Join(c, "334445", &Member{ID: 1, Username: "alice"})

	users, ok := hub.AddScore(c, "334445", 100)
	require.True(t, ok)
	assert.Equal(t, 100, users[0].Score)

	users, ok = hub.AddScore(c, "334445", 0)
	require.True(t, ok)
	assert.Equal(t, 100, users[0].Score)

	users, ok = hub.AddScore(c, "334445", -50)
	require.True(t, ok)
	assert.Equal(t, 100, users[0].Score)
}

func TestBroadcastSkipsClosedConnections(t *testing.T) {
	hub := NewHub()
	c1, conn1 := newTestClient(hub)
	c2, conn2 := newTestClient(hub)
	hub.Join(c1, "990001", &Member{ID: 1, Username: "alice"})
	hub.Join(c2, "990001", &Member{ID: 2, Username: "bob"})

	require.NoError(t, conn1.Close())

	hub.Broadcast("990001", envelope("quiz_started", nil))

	assert.Empty(t, conn1.received(t))
	require.Len(t, conn2.received(t), 1)
	assert.Equal(t, "quiz_started", conn2.last(t)["type"])
}

func TestBroadcastUnknownRoomIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Broadcast("123456", envelope("quiz_started", nil))
}
