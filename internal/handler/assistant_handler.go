/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file streams AI assistant replies to clients as Server-Sent Events. The
provider call itself lives in internal/app/assistant.
*/
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Bini-2002/campuscraft/internal/app/assistant"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/req"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

type AssistantChatInput struct {
	Messages []assistant.ChatTurn `json:"messages"`
}

// sseEvent is one streamed data payload.
type sseEvent struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleAssistantChat proxies a chat completion as a text/event-stream of
// content chunks, terminated by a [DONE] sentinel.
func HandleAssistantChat(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !deps.Assistant.Enabled() {
			resp.RespondError(w, r, errs.NewError(errs.ErrAssistantUnavailable))
			return
		}

		var input AssistantChatInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if len(input.Messages) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		writeEvent := func(event sseEvent) error {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		}

		err := deps.Assistant.Stream(r.Context(), input.Messages, func(chunk string) error {
			if chunk == "" {
				return nil
			}
			return writeEvent(sseEvent{Content: chunk})
		})
		if err != nil {
			logx.Error(err, "assistant_chat: streaming failed")
			// Headers are already committed, so the error goes on the stream.
			_ = writeEvent(sseEvent{Error: "The assistant is unavailable right now."})
			return
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}
}
