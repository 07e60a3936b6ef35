package driven

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// LLMService provides chat completion for the numerology assistant.
// This is an optional service - when nil, chat is disabled.
//
// Implementations may include:
//   - OpenAI (GPT-4o)
//   - Anthropic (Claude)
//   - Google Gemini
//   - Ollama (local models)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the assistant reply.
	// Messages may start with a system message.
	Chat(ctx context.Context, messages []domain.ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
