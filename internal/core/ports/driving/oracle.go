package driving

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// OracleService rolls the dice oracle.
type OracleService interface {
	// Roll rolls the dice, draws the card and records the reading.
	Roll(ctx context.Context, question string) (*domain.OracleReading, error)

	// History returns up to limit readings, newest first.
	History(ctx context.Context, limit int) ([]domain.OracleReading, error)
}

// BlogService serves blog posts.
type BlogService interface {
	// List returns posts newest first, filtered by tag when tag is non-empty.
	List(ctx context.Context, tag string) ([]domain.Post, error)

	// Get retrieves a post by slug.
	Get(ctx context.Context, slug string) (*domain.Post, error)

	// Render returns the post formatted for a terminal of the given width.
	Render(ctx context.Context, slug string, width int) (string, error)
}

// ChatService proxies numerology conversations to an LLM.
type ChatService interface {
	// Ask sends the conversation and returns the assistant reply.
	Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error)

	// Available returns true if an LLM is configured.
	Available() bool
}
