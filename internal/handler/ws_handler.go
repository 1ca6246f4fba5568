/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file upgrades conversation requests to WebSocket. Browsers cannot set an
Authorization header on WebSocket handshakes, so the session token travels in
the "t" query parameter instead.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Bini-2002/campuscraft/internal/app/messaging"
	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/limiter"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

// HandleWebSocket authenticates a conversation participant, upgrades the
// connection, and runs the peer's read/write pumps against the live session.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conversationID := chi.URLParam(r, "id")
		if conversationID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		payload, parseErr := jwt.ParseToken(r.URL.Query().Get("t"), deps.Config.JWTSecret)
		if parseErr != nil || payload.Purpose != jwt.PurposeSession {
			logx.Warn("WebSocket connection rejected: Invalid session token", "conversation_id", conversationID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		conversation, err := deps.Store.GetConversation(r.Context(), conversationID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrConversationNotFound))
			return
		}

		if payload.ID != conversation.StudentID && payload.ID != conversation.CompanyID {
			logx.Warn("WebSocket connection rejected: Not a participant", "conversation_id", conversationID, "user_id", payload.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrNotParticipant))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		session := deps.Hub.OpenSession(conversation)
		peer := messaging.NewPeer(session, conn, payload.ID)

		go peer.WritePump()

		logx.Info("WebSocket connection established", "conversation_id", conversationID, "user_id", payload.ID)

		session.RegisterPeer(peer)

		peer.ReadPump()
	}
}
