package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bini-2002/campuscraft/internal/app/store"
)

// memorySink records persisted messages in memory.
type memorySink struct {
	mu       sync.Mutex
	messages []*store.Message
	err      error
}

func (m *memorySink) InsertMessage(ctx context.Context, msg *store.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	msg.CreatedAt = time.Now()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memorySink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func testConversation() *store.Conversation {
	return &store.Conversation{
		ID:        "c-1",
		StudentID: "s-1",
		CompanyID: "co-1",
	}
}

func TestOpenSessionIsIdempotentPerConversation(t *testing.T) {
	hub := NewHub(&memorySink{})
	defer hub.Shutdown()

	conv := testConversation()
	first := hub.OpenSession(conv)
	second := hub.OpenSession(conv)

	assert.Same(t, first, second)
	assert.Same(t, first, hub.GetSession(conv.ID))
}

func TestGetSessionReturnsNilWhenNotRunning(t *testing.T) {
	hub := NewHub(&memorySink{})
	defer hub.Shutdown()

	assert.Nil(t, hub.GetSession("missing"))
}

func TestSessionParticipantCheck(t *testing.T) {
	hub := NewHub(&memorySink{})
	defer hub.Shutdown()

	session := hub.OpenSession(testConversation())

	assert.True(t, session.IsParticipant("s-1"))
	assert.True(t, session.IsParticipant("co-1"))
	assert.False(t, session.IsParticipant("someone-else"))
}

func TestSubmitPersistsBeforeBroadcast(t *testing.T) {
	sink := &memorySink{}
	hub := NewHub(sink)
	defer hub.Shutdown()

	session := hub.OpenSession(testConversation())

	msg := &store.Message{ID: "m-1", ConversationID: "c-1", SenderID: "s-1", Body: "hello"}
	require.NoError(t, session.submit(msg))

	assert.Equal(t, 1, sink.count())
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestSubmitFailurePropagates(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	hub := NewHub(sink)
	defer hub.Shutdown()

	session := hub.OpenSession(testConversation())

	msg := &store.Message{ID: "m-1", ConversationID: "c-1", SenderID: "s-1", Body: "hello"}
	assert.Error(t, session.submit(msg))
	assert.Equal(t, 0, sink.count())
}

func TestRegisterPeerAfterIdleExitDoesNotBlock(t *testing.T) {
	cleanup := make(chan string, 1)
	session := newSession(testConversation(), &memorySink{}, cleanup)

	done := make(chan struct{})
	go func() {
		session.Run()
		close(done)
	}()

	// Drive the idle timeout with no peers connected.
	session.idleTimer.Reset(time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not exit on idle timeout")
	}

	// A registration racing the hub's reaper must be turned away promptly
	// instead of parking on the register channel forever.
	peer := NewPeer(session, nil, "s-1")
	registered := make(chan struct{})
	go func() {
		session.RegisterPeer(peer)
		close(registered)
	}()

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("RegisterPeer blocked against an idle-exited session")
	}

	_, open := <-peer.send
	assert.False(t, open, "rejected peer must be closed")
}

func TestOpenSessionReplacesIdleExitedSession(t *testing.T) {
	hub := NewHub(&memorySink{})
	defer hub.Shutdown()

	first := hub.OpenSession(testConversation())
	first.idleTimer.Reset(time.Millisecond)

	select {
	case <-first.stopChan:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop on idle timeout")
	}

	second := hub.OpenSession(testConversation())
	assert.NotSame(t, first, second)
	assert.False(t, second.stopped())
}

func TestShutdownStopsSessionsAndReaps(t *testing.T) {
	hub := NewHub(&memorySink{})

	hub.OpenSession(testConversation())
	hub.OpenSession(&store.Conversation{ID: "c-2", StudentID: "s-2", CompanyID: "co-2"})

	// Must not hang and must leave no live sessions behind.
	hub.Shutdown()
	assert.Nil(t, hub.GetSession("c-1"))
	assert.Nil(t, hub.GetSession("c-2"))
}
