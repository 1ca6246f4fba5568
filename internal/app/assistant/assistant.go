/*
Package assistant implements the server-side proxy to the LLM completion provider.

The HTTP layer never talks to the provider directly; it hands the
conversation to this service and receives content chunks through a callback,
which keeps the provider credentials and model choice on the server.
*/
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrNotConfigured is returned when no provider API key was supplied.
var ErrNotConfigured = errors.New("assistant is not configured")

const systemPrompt = `You are the CampusCraft assistant. You help university students find and apply
to jobs and help companies write postings and review applicants. Answer
concisely. If a question is unrelated to careers, job applications, or using
CampusCraft, say that you can only help with CampusCraft topics.`

// maxTurns caps how much prior conversation is forwarded to the provider.
const maxTurns = 20

// ChatTurn is one prior exchange entry supplied by the client.
type ChatTurn struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`

	Content string `json:"content"`
}

// Service wraps the configured LLM client.
type Service struct {
	model llms.Model
}

// New initializes the provider client. An empty apiKey yields a service
// whose Stream method reports ErrNotConfigured.
func New(ctx context.Context, apiKey, modelName string) (*Service, error) {
	if apiKey == "" {
		return &Service{}, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, err
	}

	return &Service{model: model}, nil
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s.model != nil
}

// Stream sends the conversation to the provider and forwards content chunks
// to onChunk as they arrive. It blocks until the completion finishes or ctx
// is canceled.
func (s *Service) Stream(ctx context.Context, turns []ChatTurn, onChunk func(chunk string) error) error {
	if s.model == nil {
		return ErrNotConfigured
	}

	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}

	content := make([]llms.MessageContent, 0, len(turns)+1)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))

	for _, turn := range turns {
		role := llms.ChatMessageTypeHuman
		if strings.EqualFold(turn.Role, "assistant") {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, turn.Content))
	}

	_, err := s.model.GenerateContent(ctx, content,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			return onChunk(string(chunk))
		}),
	)
	return err
}
