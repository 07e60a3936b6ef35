package services

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider  = "llm.provider"
	keyLLMModel     = "llm.model"
	keyLLMBaseURL   = "llm.base_url"
	keyLLMAPIKey    = "llm.api_key"
	keyMailProvider = "mail.provider"
	keyMailEndpoint = "mail.endpoint"
	keyMailAPIKey   = "mail.api_key"
	keyMailFrom     = "mail.from"
	keyShareBucket  = "share.bucket"
	keyShareRegion  = "share.region"
	keySharePrefix  = "share.prefix"
	keyShareTTL     = "share.link_ttl"
	keyServerAddr   = "server.addr"
	keyServerCORS   = "server.cors_origins"
	keyBlogDir      = "blog.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Mail: domain.MailSettings{
			Provider: s.getMailProvider(defaults.Mail.Provider),
			Endpoint: s.configStore.GetString(keyMailEndpoint),
			APIKey:   s.configStore.GetString(keyMailAPIKey),
			From:     s.getString(keyMailFrom, defaults.Mail.From),
		},
		Share: domain.ShareSettings{
			Bucket:  s.configStore.GetString(keyShareBucket),
			Region:  s.getString(keyShareRegion, defaults.Share.Region),
			Prefix:  s.getString(keySharePrefix, defaults.Share.Prefix),
			LinkTTL: s.getDuration(keyShareTTL, defaults.Share.LinkTTL),
		},
		Server: domain.ServerSettings{
			Addr:        s.getString(keyServerAddr, defaults.Server.Addr),
			CORSOrigins: s.configStore.GetStringSlice(keyServerCORS),
		},
		Blog: domain.BlogSettings{
			Dir: s.configStore.GetString(keyBlogDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	// Save mail settings
	if err := s.configStore.Set(keyMailProvider, settings.Mail.Provider.String()); err != nil {
		return fmt.Errorf("save mail provider: %w", err)
	}
	if err := s.configStore.Set(keyMailEndpoint, settings.Mail.Endpoint); err != nil {
		return fmt.Errorf("save mail endpoint: %w", err)
	}
	if settings.Mail.APIKey != "" {
		if err := s.configStore.Set(keyMailAPIKey, settings.Mail.APIKey); err != nil {
			return fmt.Errorf("save mail api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyMailFrom, settings.Mail.From); err != nil {
		return fmt.Errorf("save mail from: %w", err)
	}

	// Save share settings
	if err := s.configStore.Set(keyShareBucket, settings.Share.Bucket); err != nil {
		return fmt.Errorf("save share bucket: %w", err)
	}
	if err := s.configStore.Set(keyShareRegion, settings.Share.Region); err != nil {
		return fmt.Errorf("save share region: %w", err)
	}
	if err := s.configStore.Set(keySharePrefix, settings.Share.Prefix); err != nil {
		return fmt.Errorf("save share prefix: %w", err)
	}
	if err := s.configStore.Set(keyShareTTL, settings.Share.LinkTTL.String()); err != nil {
		return fmt.Errorf("save share link_ttl: %w", err)
	}

	// Save server settings
	if err := s.configStore.Set(keyServerAddr, settings.Server.Addr); err != nil {
		return fmt.Errorf("save server addr: %w", err)
	}
	if len(settings.Server.CORSOrigins) > 0 {
		if err := s.configStore.Set(keyServerCORS, settings.Server.CORSOrigins); err != nil {
			return fmt.Errorf("save server cors_origins: %w", err)
		}
	}

	if err := s.configStore.Set(keyBlogDir, settings.Blog.Dir); err != nil {
		return fmt.Errorf("save blog dir: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetMail configures outbound email.
func (s *SettingsService) SetMail(provider domain.MailProvider, endpoint, apiKey, from string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid mail provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Mail.Provider = provider
	settings.Mail.Endpoint = endpoint
	if apiKey != "" {
		settings.Mail.APIKey = apiKey
	}
	if from != "" {
		if _, err := mail.ParseAddress(from); err != nil {
			return fmt.Errorf("invalid from address %q: %w", from, err)
		}
		settings.Mail.From = from
	}

	if !settings.Mail.IsConfigured() {
		return fmt.Errorf("mail provider %s requires endpoint, API key and from address", provider)
	}

	return s.Save(settings)
}

// SetShare configures report uploads.
func (s *SettingsService) SetShare(bucket, region, prefix string, ttl time.Duration) error {
	if ttl < 0 {
		return fmt.Errorf("invalid link TTL: %s", ttl)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Share.Bucket = bucket
	if region != "" {
		settings.Share.Region = region
	}
	if prefix != "" {
		settings.Share.Prefix = prefix
	}
	if ttl > 0 {
		settings.Share.LinkTTL = ttl
	}

	return s.Save(settings)
}

// Validate checks that every configured section is complete.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("LLM provider %q is missing an API key", settings.LLM.Provider.Description()))
	}
	if !settings.Mail.IsConfigured() {
		errs = append(errs, fmt.Errorf("mail provider %q is incomplete", settings.Mail.Provider.Description()))
	}
	if settings.Share.IsConfigured() && settings.Share.Region == "" {
		errs = append(errs, errors.New("share bucket requires a region"))
	}

	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getMailProvider(defaultVal domain.MailProvider) domain.MailProvider {
	val := s.configStore.GetString(keyMailProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.MailProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
