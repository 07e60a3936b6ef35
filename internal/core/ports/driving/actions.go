package driving

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// ShareService renders and shares reports.
// This is used by TUI, CLI, MCP and HTTP adapters.
type ShareService interface {
	// Render formats the report as text, Markdown or JSON.
	Render(report *domain.Report, format domain.ShareFormat) ([]byte, error)

	// CopyToClipboard copies the text rendering to the system clipboard.
	CopyToClipboard(ctx context.Context, report *domain.Report) error

	// Export writes the rendering to path and returns the path written.
	// When path is a directory, a file name is derived from the profile.
	Export(ctx context.Context, report *domain.Report, path string, format domain.ShareFormat) (string, error)

	// Upload stores the rendering in the object store and returns a presigned link.
	Upload(ctx context.Context, report *domain.Report, format domain.ShareFormat) (*domain.ShareLink, error)

	// Open opens a share link or exported file with the system default handler.
	Open(ctx context.Context, target string) error
}

// EmailService sends reports by email.
type EmailService interface {
	// SendReport validates the address and sends the report once.
	SendReport(ctx context.Context, to string, report *domain.Report) error
}
