package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
		model    string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name:     "cloud provider without key is not configured",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI},
			wantNil:  true,
		},
		{
			name: "unknown provider is not configured",
			settings: &domain.LLMSettings{
				Provider: "mistral",
				APIKey:   "test-key",
			},
			wantNil: true,
		},
		{
			name:     "ollama provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
			model:    "llama3.2",
		},
		{
			name:     "openai provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk-test", Model: "gpt-4o"},
			model:    "gpt-4o",
		},
		{
			name:     "anthropic provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "sk-ant"},
			model:    "claude-3-5-sonnet-latest",
		},
		{
			name:     "gemini provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderGemini, APIKey: "g-key"},
			model:    "gemini-2.0-flash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer func() { _ = svc.Close() }()
			assert.Equal(t, tt.model, svc.ModelName())
		})
	}
}

func TestCreateAndValidateLLMService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  srv.URL,
		Model:    "llama3.2",
	})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "numen settings llm")
}

func TestCreateAndValidateLLMService_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"}]}`))
	}))
	defer srv.Close()

	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  srv.URL,
		Model:    "llama3.2",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "llama3.2", svc.ModelName())
}

func TestInit(t *testing.T) {
	t.Run("unconfigured has no service and no warning", func(t *testing.T) {
		result := Init(&domain.LLMSettings{})
		assert.Nil(t, result.LLMService)
		assert.Empty(t, result.Warnings)
	})

	t.Run("unreachable provider warns", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		result := Init(&domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL})
		defer result.Close()
		assert.Nil(t, result.LLMService)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "LLM service unavailable")
	})
}
