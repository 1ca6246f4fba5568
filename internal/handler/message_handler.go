/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file covers the REST side of messaging: opening conversations, reading
history, and sending messages over plain HTTP. Messages sent here are also
pushed to any peers connected on the live WebSocket channel.
*/
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Bini-2002/campuscraft/internal/app/messaging"
	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/randx"
	"github.com/Bini-2002/campuscraft/internal/pkg/req"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

const (
	defaultMessagePage = 50
	maxMessagePage     = 200
)

// HandleListConversations returns every thread the caller participates in.
func HandleListConversations(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		conversations, err := deps.Store.ListConversationsForUser(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "list_conversations: query failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"conversations": conversations})
	}
}

type OpenConversationInput struct {
	// CounterpartID is the other party's account id: a company when a student
	// opens the thread, a student when a company does.
	CounterpartID string `json:"counterpartId"`

	// JobID optionally anchors the conversation to a posting.
	JobID string `json:"jobId"`
}

// HandleOpenConversation returns the thread between the caller and the
// counterpart, creating it when absent. Exactly one student and one company
// per conversation.
func HandleOpenConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input OpenConversationInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !randx.IsValidID(input.CounterpartID) || input.CounterpartID == identity.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if input.JobID != "" && !randx.IsValidID(input.JobID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		counterpart, err := deps.Store.GetUserByID(r.Context(), input.CounterpartID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		var studentID, companyID string
		switch {
		case identity.UserType == UserTypeStudent && counterpart.UserType == UserTypeCompany:
			studentID, companyID = identity.ID, counterpart.ID
		case identity.UserType == UserTypeCompany && counterpart.UserType == UserTypeStudent:
			studentID, companyID = counterpart.ID, identity.ID
		default:
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		conversation, err := deps.Store.GetOrCreateConversation(r.Context(), randx.NewID(), studentID, companyID, input.JobID)
		if err != nil {
			logx.Error(err, "open_conversation: upsert failed", "student_id", studentID, "company_id", companyID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"conversation": conversation})
	}
}

// participantConversation loads the conversation and checks membership.
func participantConversation(r *http.Request, deps *AppDeps, conversationID, userID string) (*store.Conversation, *errs.CustomError) {
	conversation, err := deps.Store.GetConversation(r.Context(), conversationID)
	if err != nil {
		return nil, errs.NewError(errs.ErrConversationNotFound)
	}
	if userID != conversation.StudentID && userID != conversation.CompanyID {
		return nil, errs.NewError(errs.ErrNotParticipant)
	}
	return conversation, nil
}

// HandleGetConversation returns a thread and its message history in
// chronological order.
func HandleGetConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		conversationID := chi.URLParam(r, "id")

		conversation, customErr := participantConversation(r, deps, conversationID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		limit := defaultMessagePage
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = min(v, maxMessagePage)
		}

		messages, err := deps.Store.ListMessages(r.Context(), conversationID, limit)
		if err != nil {
			logx.Error(err, "get_conversation: message query failed", "conversation_id", conversationID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"conversation": conversation,
			"messages":     messages,
		})
	}
}

type SendMessageInput struct {
	Body string `json:"body"`
}

// HandleSendMessage stores a message over plain HTTP and pushes it to any
// peers connected on the live channel.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		conversationID := chi.URLParam(r, "id")

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		body := strings.TrimSpace(input.Body)
		if body == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if len(body) > messaging.MaxMessageBytes {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageTooLong))
			return
		}

		if _, customErr := participantConversation(r, deps, conversationID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		message := &store.Message{
			ID:             randx.NewID(),
			ConversationID: conversationID,
			SenderID:       identity.ID,
			Body:           body,
		}

		if err := deps.Store.InsertMessage(r.Context(), message); err != nil {
			logx.Error(err, "send_message: insert failed", "conversation_id", conversationID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if session := deps.Hub.GetSession(conversationID); session != nil {
			session.Publish(message)
		}

		resp.RespondSuccess(w, r, map[string]any{"message": message})
	}
}
