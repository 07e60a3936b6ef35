package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// Mailer delivers transactional email.
// Implementations make a single attempt; callers do not retry.
type Mailer interface {
	// Send delivers msg.
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// ObjectStore stores shared report files and issues time-limited links.
type ObjectStore interface {
	// Put uploads body under key with the given content type.
	Put(ctx context.Context, key, contentType string, body []byte) error

	// PresignGet returns a download URL for key that expires after ttl.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
