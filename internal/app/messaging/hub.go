/*
Package messaging contains the realtime delivery layer for student-company conversations.

This file defines the Hub, which tracks the live Session instances (one per
conversation with at least one connected peer), creates them on demand, and
reaps them once they go idle.
*/
package messaging

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
)

// MessageSink persists conversation messages before they are fanned out.
// *store.Store satisfies it.
type MessageSink interface {
	InsertMessage(ctx context.Context, m *store.Message) error
}

// Hub coordinates all live conversation sessions.
type Hub struct {
	// sessions maps conversation ID to its live Session.
	sessions map[string]*Session

	// sink persists messages before broadcast.
	sink MessageSink

	// mu protects concurrent access to the sessions map.
	mu sync.RWMutex

	// cleanup is used by Sessions to ask the Hub to drop them.
	cleanup chan string

	// wg waits for the cleanup loop during shutdown.
	wg sync.WaitGroup

	// sessionWG tracks running Session loops. They must all finish before
	// the cleanup channel can close.
	sessionWG sync.WaitGroup

	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its cleanup loop.
func NewHub(sink MessageSink) *Hub {
	h := &Hub{
		sessions: make(map[string]*Session),
		sink:     sink,
		cleanup:  make(chan string, 16),
		logger:   logx.Logger().With().Str("component", "messaging_hub").Logger(),
	}

	h.wg.Add(1)

	go h.runCleanupLoop()

	return h
}

// runCleanupLoop drains the cleanup channel and removes finished sessions.
func (h *Hub) runCleanupLoop() {
	defer h.wg.Done()

	for conversationID := range h.cleanup {
		h.mu.Lock()
		// A live replacement may already hold the slot; only reap sessions
		// that have actually stopped.
		if session, ok := h.sessions[conversationID]; ok && session.stopped() {
			delete(h.sessions, conversationID)
			h.logger.Info().Str("conversation_id", conversationID).Msg("Session removed.")
		}
		h.mu.Unlock()
	}
}

// OpenSession returns the live session for a conversation, starting one when
// none is running.
func (h *Hub) OpenSession(conv *store.Conversation) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A session that hit its idle timeout may linger in the map until the
	// cleanup loop runs; it no longer reads its channels, so hand out a
	// fresh one instead.
	if session, ok := h.sessions[conv.ID]; ok && !session.stopped() {
		return session
	}

	session := newSession(conv, h.sink, h.cleanup)
	h.sessions[conv.ID] = session

	h.sessionWG.Add(1)
	go func() {
		defer h.sessionWG.Done()
		session.Run()
	}()

	h.logger.Info().Str("conversation_id", conv.ID).Msg("Session started.")
	return session
}

// GetSession returns the live session for a conversation, or nil.
func (h *Hub) GetSession(conversationID string) *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.sessions[conversationID]
}

// Shutdown stops all live sessions and waits for the cleanup loop to finish.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down messaging hub...")

	h.mu.Lock()
	for _, session := range h.sessions {
		session.Stop()
	}
	h.sessions = nil
	h.mu.Unlock()

	// All Run loops must exit before the cleanup channel closes; their
	// deferred cleanup notifications would otherwise hit a closed channel.
	h.sessionWG.Wait()

	close(h.cleanup)
	h.wg.Wait()

	h.logger.Info().Msg("Messaging hub shutdown complete.")
}
