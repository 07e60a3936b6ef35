package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a chat-completion service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds chat provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// MailProvider identifies how outbound email is delivered.
type MailProvider string

// Available mail providers.
const (
	// MailProviderConsole prints messages instead of sending them.
	MailProviderConsole MailProvider = "console"

	// MailProviderHTTP posts messages to a transactional email API.
	MailProviderHTTP MailProvider = "http"
)

// IsValid returns true if the mail provider is recognised.
func (p MailProvider) IsValid() bool {
	return p == MailProviderConsole || p == MailProviderHTTP
}

// String returns the string representation.
func (p MailProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p MailProvider) Description() string {
	switch p {
	case MailProviderConsole:
		return "Console (print only)"
	case MailProviderHTTP:
		return "HTTP email API"
	default:
		return unknownDescription
	}
}

// MailSettings holds outbound email configuration.
type MailSettings struct {
	// Provider selects the delivery adapter.
	Provider MailProvider

	// Endpoint is the API URL for the HTTP provider.
	Endpoint string

	// APIKey is sent as a bearer token to the HTTP provider.
	APIKey string

	// From is the sender address.
	From string
}

// IsConfigured returns true if mail can be delivered.
func (m MailSettings) IsConfigured() bool {
	switch m.Provider {
	case MailProviderConsole:
		return true
	case MailProviderHTTP:
		return m.Endpoint != "" && m.APIKey != "" && m.From != ""
	default:
		return false
	}
}

// ShareSettings holds object storage configuration for report uploads.
type ShareSettings struct {
	// Bucket is the S3 bucket name. Empty disables uploads.
	Bucket string

	// Region is the AWS region of the bucket.
	Region string

	// Prefix is prepended to every object key.
	Prefix string

	// LinkTTL is how long presigned links stay valid.
	LinkTTL time.Duration
}

// IsConfigured returns true if uploads are enabled.
func (s ShareSettings) IsConfigured() bool {
	return s.Bucket != ""
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// CORSOrigins lists allowed browser origins. Empty allows all.
	CORSOrigins []string
}

// BlogSettings holds blog content configuration.
type BlogSettings struct {
	// Dir is a directory of Markdown posts merged over the built-in posts.
	// Empty uses built-in posts only.
	Dir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds chat provider settings.
	LLM LLMSettings

	// Mail holds outbound email settings.
	Mail MailSettings

	// Share holds report upload settings.
	Share ShareSettings

	// Server holds HTTP API settings.
	Server ServerSettings

	// Blog holds blog content settings.
	Blog BlogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users must set it up with 'numen settings llm'.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Mail: MailSettings{
			Provider: MailProviderConsole,
			From:     "numen@localhost",
		},
		Share: ShareSettings{
			Region:  "us-east-1",
			Prefix:  "reports/",
			LinkTTL: 24 * time.Hour,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// AllLLMProviders returns providers that support chat.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}
