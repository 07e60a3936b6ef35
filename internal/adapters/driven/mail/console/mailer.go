// Package console provides a Mailer that prints messages instead of sending them.
// It is the default when no email API is configured.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Ensure Mailer implements the interface.
var _ driven.Mailer = (*Mailer)(nil)

// Mailer writes messages to a writer.
type Mailer struct {
	mu   sync.Mutex
	w    io.Writer
	from string
}

// NewMailer creates a console mailer. A nil writer uses stdout.
func NewMailer(w io.Writer, from string) *Mailer {
	if w == nil {
		w = os.Stdout
	}
	return &Mailer{w: w, from: from}
}

// Send writes the text part of msg with simple mail headers.
func (m *Mailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := fmt.Fprintf(m.w, "From: %s\nTo: %s\nSubject: %s\n\n%s\n", m.from, msg.To, msg.Subject, msg.Text)
	if err != nil {
		return fmt.Errorf("console mailer: %w", err)
	}
	return nil
}
