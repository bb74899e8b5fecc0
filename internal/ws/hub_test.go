package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cofounder-match/internal/domain/conversation"
	"cofounder-match/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(nil)
	go h.Run(ctx)
	return h
}

func registered(t *testing.T, h *Hub, userID uuid.UUID) *Client {
	t.Helper()
	before := h.ClientCount()
	c := &Client{hub: h, userID: userID, send: make(chan []byte, 4)}
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == before+1 }, time.Second, 5*time.Millisecond)
	return c
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case b := <-c.send:
		return b
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return nil
	}
}

func TestHub_SendToReachesOnlyThatUser(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	a1 := registered(t, h, alice)
	a2 := registered(t, h, alice)
	b1 := registered(t, h, bob)
	assert.Equal(t, 3, h.ClientCount())

	h.SendTo(alice, []byte("hi"))
	assert.Equal(t, []byte("hi"), receive(t, a1))
	assert.Equal(t, []byte("hi"), receive(t, a2))

	select {
	case <-b1.send:
		t.Fatal("bob must not receive alice's message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	uid := uuid.New()
	c := registered(t, h, uid)

	h.Unregister(c)
	require.Eventually(t, func() bool { return !h.Connected(uid) }, time.Second, 5*time.Millisecond)
	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_StoppedHubNeverBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	before := registered(t, h, uuid.New())
	cancel()
	<-stopped
	_, ok := <-before.send
	assert.False(t, ok)

	late := &Client{hub: h, userID: uuid.New(), send: make(chan []byte, 1)}
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		h.Register(late)
		for i := 0; i < 500; i++ {
			h.Unregister(&Client{hub: h, userID: uuid.New(), send: make(chan []byte)})
		}
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after the hub stopped")
	}
	_, ok = <-late.send
	assert.False(t, ok)
	assert.Zero(t, h.ClientCount())
}

func TestNotifier_NotifiesBothParticipants(t *testing.T) {
	h := startHub(t)
	a, b := ledger.CanonicalPair(uuid.New(), uuid.New())
	ca := registered(t, h, a)
	cb := registered(t, h, b)

	m := ledger.Match{ID: uuid.New(), UserAID: a, UserBID: b, Status: ledger.MatchStatusActive, CreatedAt: time.Now()}
	NewNotifier(h, nil).NotifyMatch(context.Background(), m, conversation.Bootstrap(m, b))

	var evA, evB MatchCreatedEvent
	require.NoError(t, json.Unmarshal(receive(t, ca), &evA))
	require.NoError(t, json.Unmarshal(receive(t, cb), &evB))

	assert.Equal(t, EventMatchCreated, evA.Type)
	assert.Equal(t, m.ID, evA.MatchID)
	assert.Equal(t, b, evA.OtherUserID)
	assert.Equal(t, a, evB.OtherUserID)
	assert.Equal(t, conversation.Route(m.ID), evB.Route)
}
