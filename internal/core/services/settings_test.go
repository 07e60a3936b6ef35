package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.Equal(t, defaults.Mail.Provider, settings.Mail.Provider)
	assert.Equal(t, defaults.Mail.From, settings.Mail.From)
	assert.Equal(t, defaults.Share.Region, settings.Share.Region)
	assert.Equal(t, defaults.Share.Prefix, settings.Share.Prefix)
	assert.Equal(t, defaults.Share.LinkTTL, settings.Share.LinkTTL)
	assert.Equal(t, defaults.Server.Addr, settings.Server.Addr)
	assert.Empty(t, settings.Blog.Dir)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "openai")
	_ = store.Set("llm.model", "gpt-4o")
	_ = store.Set("mail.provider", "http")
	_ = store.Set("share.link_ttl", "2h")
	_ = store.Set("server.addr", "127.0.0.1:9000")
	_ = store.Set("server.cors_origins", []string{"https://numen.example"})
	_ = store.Set("blog.dir", "/srv/posts")

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Equal(t, "gpt-4o", settings.LLM.Model)
	assert.Equal(t, domain.MailProviderHTTP, settings.Mail.Provider)
	assert.Equal(t, 2*time.Hour, settings.Share.LinkTTL)
	assert.Equal(t, "127.0.0.1:9000", settings.Server.Addr)
	assert.Equal(t, []string{"https://numen.example"}, settings.Server.CORSOrigins)
	assert.Equal(t, "/srv/posts", settings.Blog.Dir)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "invalid_provider")
	_ = store.Set("mail.provider", "pigeon")
	_ = store.Set("share.link_ttl", "soon")

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.Mail.Provider, settings.Mail.Provider)
	assert.Equal(t, defaults.Share.LinkTTL, settings.Share.LinkTTL)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderAnthropic,
			Model:    "claude-3-5-sonnet-latest",
			APIKey:   "sk-ant-test",
		},
		Mail: domain.MailSettings{
			Provider: domain.MailProviderHTTP,
			Endpoint: "https://mail.example/send",
			APIKey:   "mk-test",
			From:     "hello@numen.example",
		},
		Share: domain.ShareSettings{
			Bucket:  "numen-reports",
			Region:  "eu-west-1",
			Prefix:  "shared/",
			LinkTTL: 90 * time.Minute,
		},
		Server: domain.ServerSettings{
			Addr:        ":9090",
			CORSOrigins: []string{"https://a.example", "https://b.example"},
		},
		Blog: domain.BlogSettings{Dir: "/tmp/posts"},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, retrieved)
}

func TestSettingsService_Save_EmptyAPIKeyKeepsStored(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.api_key", "existing-key")
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "existing-key", store.GetString("llm.api_key"))
}

func TestSettingsService_SetLLMProvider_Valid(t *testing.T) {
	tests := []struct {
		name      string
		provider  domain.AIProvider
		model     string
		apiKey    string
		wantModel string
	}{
		{"ollama default model", domain.AIProviderOllama, "", "", "llama3.2"},
		{"openai custom model", domain.AIProviderOpenAI, "gpt-4o", "sk-test", "gpt-4o"},
		{"anthropic default model", domain.AIProviderAnthropic, "", "sk-ant", "claude-3-5-sonnet-latest"},
		{"gemini default model", domain.AIProviderGemini, "", "g-key", "gemini-2.0-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, nil)

			err := service.SetLLMProvider(tt.provider, tt.model, tt.apiKey)
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.True(t, settings.LLM.IsConfigured())
		})
	}
}

func TestSettingsService_SetLLMProvider_BaseURL(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)

	// Cloud providers clear the local base URL.
	require.NoError(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", "sk-test"))
	settings, err = service.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.LLM.BaseURL)
}

func TestSettingsService_SetLLMProvider_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetLLMProvider("invalid", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LLM provider")
}

func TestSettingsService_SetLLMProvider_MissingAPIKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetLLMProvider(domain.AIProviderOpenAI, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestSettingsService_SetMail(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetMail(domain.MailProviderHTTP, "https://mail.example/send", "mk", "hello@numen.example")
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.MailProviderHTTP, settings.Mail.Provider)
	assert.Equal(t, "https://mail.example/send", settings.Mail.Endpoint)
	assert.Equal(t, "mk", settings.Mail.APIKey)
	assert.Equal(t, "hello@numen.example", settings.Mail.From)
}

func TestSettingsService_SetMail_ConsoleNeedsNothing(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetMail(domain.MailProviderConsole, "", "", ""))
}

func TestSettingsService_SetMail_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.MailProvider
		endpoint string
		apiKey   string
		from     string
		wantErr  string
	}{
		{"invalid provider", "pigeon", "", "", "", "invalid mail provider"},
		{"bad from", domain.MailProviderHTTP, "https://x", "k", "not an address", "invalid from address"},
		{"http incomplete", domain.MailProviderHTTP, "", "k", "a@b.example", "requires endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(), nil)

			err := service.SetMail(tt.provider, tt.endpoint, tt.apiKey, tt.from)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsService_SetShare(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetShare("bucket", "", "", 0))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "bucket", settings.Share.Bucket)
	assert.Equal(t, "us-east-1", settings.Share.Region)
	assert.Equal(t, "reports/", settings.Share.Prefix)
	assert.Equal(t, 24*time.Hour, settings.Share.LinkTTL)

	require.NoError(t, service.SetShare("bucket", "eu-central-1", "p/", time.Hour))
	settings, err = service.Get()
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", settings.Share.Region)
	assert.Equal(t, "p/", settings.Share.Prefix)
	assert.Equal(t, time.Hour, settings.Share.LinkTTL)
}

func TestSettingsService_SetShare_NegativeTTL(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetShare("bucket", "", "", -time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid link TTL")
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.NoError(t, service.Validate())
	})

	t.Run("cloud llm without key", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "anthropic")
		service := NewSettingsService(store, nil)

		err := service.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing an API key")
	})

	t.Run("collects every problem", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "openai")
		_ = store.Set("mail.provider", "http")
		service := NewSettingsService(store, nil)

		err := service.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing an API key")
		assert.Contains(t, err.Error(), "is incomplete")
	})
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.NoError(t, service.ValidateLLMConfig())
	})

	t.Run("passes current settings", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "ollama")
		validator := &mockAIConfigValidator{}
		service := NewSettingsService(store, validator)

		require.NoError(t, service.ValidateLLMConfig())
		require.NotNil(t, validator.got)
		assert.Equal(t, domain.AIProviderOllama, validator.got.Provider)
	})

	t.Run("propagates error", func(t *testing.T) {
		validator := &mockAIConfigValidator{err: errors.New("connection refused")}
		service := NewSettingsService(memory.NewConfigStore(), validator)

		err := service.ValidateLLMConfig()
		assert.EqualError(t, err, "connection refused")
	})
}
