/*
Package messaging contains the realtime delivery layer for student-company conversations.

This file defines the Session, the event loop for one conversation. It
registers and unregisters connected peers, persists inbound messages through
the sink, fans them out to both participants, and shuts itself down after a
period of inactivity.
*/
package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
)

const (
	// broadcastBuffer is the capacity of the session's outbound queue.
	broadcastBuffer = 256

	// maxPeers is the connection cap: one student, one company.
	maxPeers = 2

	// SessionIdleTimeout is the duration after which a session with no
	// connected peers shuts down. Conversation history stays in the store.
	SessionIdleTimeout = 5 * time.Minute

	// persistTimeout bounds the store write for one inbound message.
	persistTimeout = 5 * time.Second
)

// Event is the wire format pushed to connected peers.
type Event struct {
	Type    string         `json:"type"`
	Message *store.Message `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Session is the live fan-out loop for a single conversation.
type Session struct {
	conv *store.Conversation
	sink MessageSink

	// peers maps user ID to the connected peer.
	peers map[string]*Peer

	broadcast  chan *store.Message
	register   chan *Peer
	unregister chan *Peer

	// cleanupChan notifies the Hub that this session finished.
	cleanupChan chan<- string

	stopChan  chan struct{}
	stopOnce  sync.Once
	idleTimer *time.Timer

	mu     sync.RWMutex
	logger zerolog.Logger
}

func newSession(conv *store.Conversation, sink MessageSink, cleanupChan chan<- string) *Session {
	return &Session{
		conv:        conv,
		sink:        sink,
		peers:       make(map[string]*Peer),
		broadcast:   make(chan *store.Message, broadcastBuffer),
		register:    make(chan *Peer),
		unregister:  make(chan *Peer),
		cleanupChan: cleanupChan,
		stopChan:    make(chan struct{}),
		idleTimer:   time.NewTimer(SessionIdleTimeout),
		logger:      logx.Logger().With().Str("conversation_id", conv.ID).Logger(),
	}
}

// ConversationID returns the backing conversation's identifier.
func (s *Session) ConversationID() string {
	return s.conv.ID
}

// IsParticipant reports whether the user belongs to this conversation.
func (s *Session) IsParticipant(userID string) bool {
	return userID == s.conv.StudentID || userID == s.conv.CompanyID
}

// Stop terminates the session's Run loop immediately.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// stopped reports whether the session has shut down, whether by Stop or by
// its idle timeout.
func (s *Session) stopped() bool {
	select {
	case <-s.stopChan:
		return true
	default:
		return false
	}
}

// RegisterPeer queues a peer for registration.
func (s *Session) RegisterPeer(peer *Peer) {
	select {
	case s.register <- peer:
	case <-s.stopChan:
		peer.Close()
	}
}

// Run is the session's main event loop. It exits on the stop signal or after
// the idle timeout, then notifies the Hub for cleanup.
func (s *Session) Run() {
	defer func() {
		// An idle exit must look stopped too. Otherwise a registration
		// arriving before the hub reaps the session would block forever on
		// the register channel nobody reads anymore.
		s.Stop()
		s.idleTimer.Stop()

		s.mu.Lock()
		for _, peer := range s.peers {
			peer.Close()
		}
		s.peers = make(map[string]*Peer)
		s.mu.Unlock()

		select {
		case s.cleanupChan <- s.conv.ID:
		default:
			s.logger.Warn().Msg("Hub cleanup channel blocked, skipping notification.")
		}

		s.logger.Info().Msg("Session Run loop finished.")
	}()

	for {
		select {
		case peer := <-s.register:
			s.handleRegister(peer)

		case peer := <-s.unregister:
			s.handleUnregister(peer)

		case msg := <-s.broadcast:
			s.deliver(msg)

		case <-s.idleTimer.C:
			s.mu.RLock()
			idle := len(s.peers) == 0
			s.mu.RUnlock()

			if idle {
				s.logger.Info().Msg("Session idle timeout reached. Shutting down.")
				return
			}
			s.idleTimer.Reset(SessionIdleTimeout)

		case <-s.stopChan:
			s.logger.Info().Msg("Session forced stop.")
			return
		}
	}
}

func (s *Session) handleRegister(peer *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.peers[peer.userID]; ok {
		s.logger.Warn().Str("user_id", peer.userID).Msg("Peer already connected. Replacing old connection.")
		existing.Close()
	}

	if len(s.peers) >= maxPeers {
		if _, replacing := s.peers[peer.userID]; !replacing {
			s.logger.Warn().Str("user_id", peer.userID).Msg("Session peer cap reached. Rejecting connection.")
			peer.Close()
			return
		}
	}

	s.peers[peer.userID] = peer
	s.idleTimer.Reset(SessionIdleTimeout)
}

func (s *Session) handleUnregister(peer *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.peers[peer.userID]; ok && current == peer {
		delete(s.peers, peer.userID)
	}

	if len(s.peers) == 0 {
		s.idleTimer.Reset(SessionIdleTimeout)
	}
}

// submit persists an inbound message and queues it for broadcast.
func (s *Session) submit(msg *store.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.sink.InsertMessage(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to persist message.")
		return err
	}

	select {
	case s.broadcast <- msg:
	default:
		s.logger.Warn().Msg("Broadcast channel full, dropping realtime delivery (message is persisted).")
	}
	return nil
}

// Publish queues an already persisted message for fan-out. Used by the REST
// send path so connected peers see messages posted over plain HTTP.
func (s *Session) Publish(msg *store.Message) {
	select {
	case s.broadcast <- msg:
	case <-s.stopChan:
	default:
		s.logger.Warn().Msg("Broadcast channel full, dropping realtime delivery (message is persisted).")
	}
}

// deliver fans a stored message out to every connected peer, sender included,
// so both sides converge on the persisted record.
func (s *Session) deliver(msg *store.Message) {
	payload, err := json.Marshal(Event{Type: "message", Message: msg})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal message event.")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, peer := range s.peers {
		peer.Send(payload)
	}
}
