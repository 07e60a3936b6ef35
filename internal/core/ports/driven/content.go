package driven

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// PostStore provides blog content.
type PostStore interface {
	// List returns every post. Order is unspecified.
	List(ctx context.Context) ([]domain.Post, error)

	// Get retrieves a post by slug.
	// Returns domain.ErrNotFound if no post has the slug.
	Get(ctx context.Context, slug string) (*domain.Post, error)
}

// InterpretationCatalog maps numbers to canned interpretive text.
// It is treated as an opaque data source keyed by integer.
type InterpretationCatalog interface {
	// Number returns the text for a core number (1..9, 11, 22, 33).
	// The boolean is false when the catalog has no entry.
	Number(n int) (domain.Interpretation, bool)

	// KarmicLesson returns the lesson text for a missing digit 1..9.
	KarmicLesson(digit int) (string, bool)
}

// OracleDeck maps dice totals to oracle cards.
type OracleDeck interface {
	// Card returns the card for a dice total.
	// The boolean is false when the deck has no card for the total.
	Card(total int) (domain.OracleCard, bool)
}

// Dice rolls a single die.
type Dice interface {
	// Roll returns a face value in 1..faces.
	Roll(faces int) (int, error)
}

// MarkdownRenderer formats Markdown for display in a terminal.
type MarkdownRenderer interface {
	// Render returns markdown styled for a terminal of the given width.
	Render(markdown string, width int) (string, error)
}
