package blog

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Ensure TermRenderer implements the interface.
var _ driven.MarkdownRenderer = (*TermRenderer)(nil)

// Glamour standard styles.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// TermRenderer renders Markdown for a terminal with glamour.
// One glamour renderer is built per wrap width and reused.
type TermRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewTermRenderer creates a renderer using a glamour standard style.
func NewTermRenderer(style string) *TermRenderer {
	return &TermRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// NewAutoRenderer picks the dark style on a terminal and plain output otherwise.
func NewAutoRenderer() *TermRenderer {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return NewTermRenderer(StyleDark)
	}
	return NewTermRenderer(StyleNoTTY)
}

// Render returns markdown word-wrapped to width.
func (r *TermRenderer) Render(markdown string, width int) (string, error) {
	if markdown == "" {
		return "", nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("create markdown renderer: %w", err)
		}
		r.renderers[width] = tr
	}

	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
