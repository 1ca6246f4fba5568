/*
Package messaging contains the realtime delivery layer for student-company conversations.

This file defines the Peer, one WebSocket connection belonging to a
conversation participant. It runs the standard read/write pump pair over a
gorilla/websocket connection and feeds inbound messages into the Session.
*/
package messaging

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/randx"
)

const (
	// writeWait is the timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod is the server's Ping frequency. Must be below pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxFrameSize caps the size of an inbound WebSocket frame.
	maxFrameSize = 8192

	// MaxMessageBytes caps the length of a single chat message body.
	MaxMessageBytes = 5000
)

// Peer represents one connected conversation participant.
type Peer struct {
	session *Session
	conn    *websocket.Conn
	userID  string

	// send queues outbound frames for the write pump.
	send chan []byte

	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewPeer constructs a Peer for an upgraded connection.
func NewPeer(session *Session, conn *websocket.Conn, userID string) *Peer {
	return &Peer{
		session: session,
		conn:    conn,
		userID:  userID,
		send:    make(chan []byte, 64),
		logger: logx.Logger().With().
			Str("conversation_id", session.ConversationID()).
			Str("user_id", userID).
			Logger(),
	}
}

// Send queues a frame for delivery, dropping it if the peer is backed up.
func (p *Peer) Send(payload []byte) {
	select {
	case p.send <- payload:
	default:
		p.logger.Warn().Msg("Peer send queue full, dropping frame.")
	}
}

// Close shuts down the outbound queue, which terminates the write pump and
// closes the connection. Safe to call more than once.
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.send)
	})
}

// inboundFrame is what clients send over the socket.
type inboundFrame struct {
	Body string `json:"body"`
}

// ReadPump consumes frames from the connection until it closes, handing each
// message body to the session for persistence and fan-out.
func (p *Peer) ReadPump() {
	defer func() {
		select {
		case p.session.unregister <- p:
		case <-p.session.stopChan:
		}
		p.Close()
		_ = p.conn.Close()
	}()

	p.conn.SetReadLimit(maxFrameSize)

	if err := p.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		p.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frameBytes, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			break
		}

		p.processInbound(frameBytes)
	}
}

func (p *Peer) processInbound(frameBytes []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(frameBytes, &frame); err != nil {
		p.logger.Warn().Err(err).Msg("Peer sent invalid JSON")
		return
	}

	body := strings.TrimSpace(frame.Body)
	if body == "" {
		return
	}

	if len(body) > MaxMessageBytes {
		p.sendError("Message is too long.")
		return
	}

	msg := &store.Message{
		ID:             randx.NewID(),
		ConversationID: p.session.ConversationID(),
		SenderID:       p.userID,
		Body:           body,
	}

	if err := p.session.submit(msg); err != nil {
		p.sendError("Message could not be delivered. Please try again.")
	}
}

func (p *Peer) sendError(msg string) {
	payload, err := json.Marshal(Event{Type: "error", Error: msg})
	if err != nil {
		return
	}
	p.Send(payload)
}

// WritePump drains the send queue to the connection and keeps the
// connection alive with periodic pings.
func (p *Peer) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := p.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				p.logger.Info().Err(err).Msg("Write failed, dropping connection.")
				return
			}

		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
