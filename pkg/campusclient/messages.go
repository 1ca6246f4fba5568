package campusclient

import (
	"context"
	"fmt"
	"net/http"
)

// ListConversations returns every thread the caller participates in.
func (c *Client) ListConversations(ctx context.Context) ([]*Conversation, error) {
	var result struct {
		Conversations []*Conversation `json:"conversations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/messages/conversations", nil, &result); err != nil {
		return nil, err
	}
	return result.Conversations, nil
}

// OpenConversation returns the thread with the counterpart account, creating
// it when absent. jobID may be empty.
func (c *Client) OpenConversation(ctx context.Context, counterpartID, jobID string) (*Conversation, error) {
	var result struct {
		Conversation *Conversation `json:"conversation"`
	}
	req := map[string]string{"counterpartId": counterpartID}
	if jobID != "" {
		req["jobId"] = jobID
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/messages/conversations", req, &result); err != nil {
		return nil, err
	}
	return result.Conversation, nil
}

// ConversationHistory is a thread plus its messages in chronological order.
type ConversationHistory struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []*Message    `json:"messages"`
}

// GetConversation fetches a thread and up to limit messages. A zero limit
// uses the server default.
func (c *Client) GetConversation(ctx context.Context, conversationID string, limit int) (*ConversationHistory, error) {
	path := "/api/messages/conversations/" + conversationID
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var result ConversationHistory
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendMessage posts a message over plain HTTP. Participants connected on the
// live WebSocket channel receive it as well.
func (c *Client) SendMessage(ctx context.Context, conversationID, body string) (*Message, error) {
	var result struct {
		Message *Message `json:"message"`
	}
	req := map[string]string{"body": body}
	if err := c.doJSON(ctx, http.MethodPost, "/api/messages/conversations/"+conversationID, req, &result); err != nil {
		return nil, err
	}
	return result.Message, nil
}
