package driving

import (
	"time"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetMail configures outbound email.
	SetMail(provider domain.MailProvider, endpoint, apiKey, from string) error

	// SetShare configures report uploads.
	SetShare(bucket, region, prefix string, ttl time.Duration) error

	// Validate checks that every configured section is complete.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
