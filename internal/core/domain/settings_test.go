package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"ollama is valid", AIProviderOllama, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"gemini is valid", AIProviderGemini, true},
		{"empty is invalid", AIProvider(""), false},
		{"unknown is invalid", AIProvider("mistral"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderGemini.IsLocal())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "Gemini (cloud)", AIProviderGemini.Description())
	assert.Equal(t, "Unknown", AIProvider("nope").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama, Model: "llama3.2"}, true},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestMailSettings_IsConfigured(t *testing.T) {
	assert.True(t, MailSettings{Provider: MailProviderConsole}.IsConfigured())
	assert.False(t, MailSettings{Provider: MailProviderHTTP}.IsConfigured())
	assert.True(t, MailSettings{
		Provider: MailProviderHTTP,
		Endpoint: "https://mail.example.com/send",
		APIKey:   "key",
		From:     "hello@example.com",
	}.IsConfigured())
	assert.False(t, MailSettings{Provider: "pigeon"}.IsConfigured())
	assert.Equal(t, "Unknown", MailProvider("pigeon").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.LLM.IsConfigured())
	assert.Equal(t, MailProviderConsole, s.Mail.Provider)
	assert.True(t, s.Mail.IsConfigured())
	assert.False(t, s.Share.IsConfigured())
	assert.Equal(t, 24*time.Hour, s.Share.LinkTTL)
	assert.Equal(t, ":8080", s.Server.Addr)
}

func TestDefaultLLMModels_CoverAllProviders(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], "provider %s has no default model", p)
	}
}
