package campusclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// assistantTimeout bounds a full assistant stream, which can far outlast the
// client's default per-request timeout.
const assistantTimeout = 5 * time.Minute

// streamDoneSentinel terminates an assistant event stream.
const streamDoneSentinel = "[DONE]"

// StreamAssistant sends the conversation to the assistant endpoint and
// delivers content chunks to onChunk as they arrive. A non-nil error from
// onChunk aborts the stream and is returned.
func (c *Client) StreamAssistant(ctx context.Context, turns []ChatTurn, onChunk func(chunk string) error) error {
	payload, err := json.Marshal(map[string]any{"messages": turns})
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/assistant/chat", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// The shared client's timeout would cut long streams short.
	streamClient := &http.Client{
		Timeout:   assistantTimeout,
		Transport: c.HTTPClient.Transport,
	}

	resp, err := streamClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == streamDoneSentinel {
			return nil
		}

		var event struct {
			Content string `json:"content"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}

		if event.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: event.Error}
		}
		if event.Content != "" {
			if err := onChunk(event.Content); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}
