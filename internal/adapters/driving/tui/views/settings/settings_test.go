package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	args := m.Called(provider, model, apiKey)
	return args.Error(0)
}

func (m *MockSettingsService) SetMail(provider domain.MailProvider, endpoint, apiKey, from string) error {
	args := m.Called(provider, endpoint, apiKey, from)
	return args.Error(0)
}

func (m *MockSettingsService) SetShare(bucket, region, prefix string, ttl time.Duration) error {
	args := m.Called(bucket, region, prefix, ttl)
	return args.Error(0)
}

func (m *MockSettingsService) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func (m *MockSettingsService) ValidateLLMConfig() error {
	args := m.Called()
	return args.Error(0)
}

func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.LLM = domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  "http://localhost:11434",
	}
	return &s
}

func loadedView(t *testing.T, svc *MockSettingsService, settings *domain.AppSettings) *View {
	t.Helper()
	view := NewView(styles.DefaultStyles(), svc)
	view.Update(messages.SettingsLoaded{Settings: settings})
	return view
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(view *View, text string) {
	for _, r := range text {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mockService := new(MockSettingsService)

	view := NewView(s, mockService)

	require.NotNil(t, view)
	assert.Equal(t, s, view.styles)
	assert.Equal(t, mockService, view.settingsService)
	assert.Equal(t, SectionOverview, view.Section())
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 0, view.focusedField)
	assert.Equal(t, textinput.EchoPassword, view.mailInputs[mailFieldAPIKey].EchoMode)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, new(MockSettingsService))

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init_LoadsSettings(t *testing.T) {
	mockService := new(MockSettingsService)
	settings := testSettings()
	mockService.On("Get").Return(settings, nil)

	view := NewView(nil, mockService)
	cmd := view.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.Equal(t, settings, loaded.Settings)
	assert.NoError(t, loaded.Err)
	mockService.AssertExpectations(t)
}

func TestView_Init_NilService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.Init()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Update_SettingsLoadedError(t *testing.T) {
	view := NewView(nil, new(MockSettingsService))

	view.Update(messages.SettingsLoaded{Err: errors.New("read failed")})

	assert.EqualError(t, view.Err(), "read failed")
	assert.Nil(t, view.Settings())
	assert.Contains(t, view.View(), "Error: read failed")
	assert.Contains(t, view.View(), "Loading settings...")
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.True(t, view.ready)
}

func TestView_Overview_Render(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("Validate").Return(nil)
	view := loadedView(t, mockService, testSettings())

	out := view.View()

	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, "LLM Provider: Ollama (local) (llama3.2)")
	assert.Contains(t, out, "[configured]")
	assert.Contains(t, out, "Mail: Console")
	assert.Contains(t, out, "Share uploads: disabled")
	assert.Contains(t, out, "Blog posts:    built-in posts only")
	assert.Contains(t, out, "Configuration is valid")
}

func TestView_Overview_RenderWarnings(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("Validate").Return(errors.New("mail: endpoint is required"))
	settings := testSettings()
	settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOpenAI, Model: "gpt-4o-mini"}
	settings.Mail = domain.MailSettings{Provider: domain.MailProviderHTTP}
	settings.Share = domain.ShareSettings{Bucket: "reports", Region: "eu-west-1", Prefix: "r/", LinkTTL: time.Hour}
	settings.Blog.Dir = "/srv/posts"
	view := loadedView(t, mockService, settings)

	out := view.View()

	assert.Contains(t, out, "[needs API key]")
	assert.Contains(t, out, "[incomplete]")
	assert.Contains(t, out, "s3://reports/r/ (eu-west-1, links valid 1h0m0s)")
	assert.Contains(t, out, "/srv/posts")
	assert.Contains(t, out, "Warning: mail: endpoint is required")
}

func TestView_Overview_NoLLM(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("Validate").Return(nil)
	settings := testSettings()
	settings.LLM = domain.LLMSettings{}
	view := loadedView(t, mockService, settings)

	out := view.View()

	assert.Contains(t, out, "LLM Provider: Not Set")
	assert.Contains(t, out, "[chat disabled]")
}

func TestView_Overview_Navigation(t *testing.T) {
	view := loadedView(t, new(MockSettingsService), testSettings())

	view.Update(key("j"))
	assert.Equal(t, 1, view.selected)

	view.Update(key("j"))
	assert.Equal(t, 1, view.selected, "stops at last item")

	view.Update(key("k"))
	view.Update(key("up"))
	assert.Equal(t, 0, view.selected)
}

func TestView_Overview_EscReturnsToMenu(t *testing.T) {
	view := loadedView(t, new(MockSettingsService), testSettings())

	_, cmd := view.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_LLM_EnterSection(t *testing.T) {
	settings := testSettings()
	settings.LLM.Provider = domain.AIProviderAnthropic
	view := loadedView(t, new(MockSettingsService), settings)

	view.Update(key("enter"))

	assert.Equal(t, SectionLLM, view.Section())
	assert.Equal(t, 2, view.selected, "starts on the current provider")

	out := view.View()
	assert.Contains(t, out, "Select LLM Provider")
	assert.Contains(t, out, "(current)")
	assert.Contains(t, out, "Model: claude-3-5-sonnet-latest")
	assert.Contains(t, out, "API Key:")
}

func TestView_LLM_SelectLocalProvider(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("SetLLMProvider", domain.AIProviderOllama, "llama3.2", "").Return(nil)
	view := loadedView(t, mockService, testSettings())
	view.Update(key("enter"))

	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, saved.Err)
	mockService.AssertExpectations(t)
}

func TestView_LLM_SelectCloudProviderWithKey(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("SetLLMProvider", domain.AIProviderOpenAI, "gpt-4o-mini", "sk-test").Return(nil)
	mockService.On("Get").Return(testSettings(), nil)
	view := loadedView(t, mockService, testSettings())
	view.Update(key("enter"))
	view.Update(key("j"))

	view.Update(key("enter"))
	assert.Equal(t, 1, view.focusedField, "cloud provider asks for a key")

	typeText(view, "sk-test")
	assert.Equal(t, "sk-test", view.llmAPIKeyInput.Value())

	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	_, cmd = view.Update(msg)

	assert.Equal(t, SectionOverview, view.Section(), "save returns to overview")
	assert.Equal(t, "", view.llmAPIKeyInput.Value())
	require.NotNil(t, cmd, "save reloads settings")
	_, ok := cmd().(messages.SettingsLoaded)
	assert.True(t, ok)
	mockService.AssertExpectations(t)
}

func TestView_LLM_TabLeavesKeyInput(t *testing.T) {
	view := loadedView(t, new(MockSettingsService), testSettings())
	view.Update(key("enter"))
	view.Update(key("j"))
	view.Update(key("tab"))
	require.Equal(t, 1, view.focusedField)

	view.Update(key("tab"))

	assert.Equal(t, 0, view.focusedField)
	assert.False(t, view.llmAPIKeyInput.Focused())
}

func TestView_LLM_SaveError(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("SetLLMProvider", domain.AIProviderOllama, "llama3.2", "").Return(errors.New("disk full"))
	view := loadedView(t, mockService, testSettings())
	view.Update(key("enter"))

	_, cmd := view.Update(key("enter"))
	_, reload := view.Update(cmd())

	assert.Nil(t, reload)
	assert.EqualError(t, view.Err(), "disk full")
	assert.Equal(t, SectionLLM, view.Section(), "stays on the section")
}

func TestView_LLM_EscReturnsToOverview(t *testing.T) {
	view := loadedView(t, new(MockSettingsService), testSettings())
	view.Update(key("enter"))

	_, cmd := view.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.Equal(t, SectionOverview, view.Section())
}

func TestView_Mail_SelectConsole(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("SetMail", domain.MailProviderConsole, "", "", "").Return(nil)
	view := loadedView(t, mockService, testSettings())
	view.Update(key("j"))
	view.Update(key("enter"))
	require.Equal(t, SectionMail, view.Section())
	assert.Contains(t, view.View(), "Select Mail Provider")

	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, saved.Err)
	mockService.AssertExpectations(t)
}

func TestView_Mail_ConfigureHTTP(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("SetMail", domain.MailProviderHTTP,
		"https://mail.example.com/send", "key-1", "hello@example.com").Return(nil)
	settings := testSettings()
	settings.Mail.From = ""
	view := loadedView(t, mockService, settings)
	view.Update(key("j"))
	view.Update(key("enter"))
	view.Update(key("j"))

	out := view.View()
	assert.Contains(t, out, "Endpoint:")
	assert.Contains(t, out, "From:")

	view.Update(key("enter"))
	require.Equal(t, mailFieldEndpoint, view.focusedField)
	typeText(view, "https://mail.example.com/send")

	view.Update(key("tab"))
	require.Equal(t, mailFieldAPIKey, view.focusedField)
	typeText(view, "key-1")

	view.Update(key("tab"))
	require.Equal(t, mailFieldFrom, view.focusedField)
	typeText(view, "hello@example.com")

	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)
	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, saved.Err)
	mockService.AssertExpectations(t)
}

func TestView_Mail_TabWrapsToList(t *testing.T) {
	view := loadedView(t, new(MockSettingsService), testSettings())
	view.Update(key("j"))
	view.Update(key("enter"))
	view.Update(key("j"))
	view.Update(key("tab"))
	require.Equal(t, mailFieldEndpoint, view.focusedField)

	view.Update(key("shift+tab"))

	assert.Equal(t, mailFieldList, view.focusedField)
	assert.Contains(t, view.View(), "[enter] select")
}

func TestView_Mail_PrefillsStoredValues(t *testing.T) {
	settings := testSettings()
	settings.Mail = domain.MailSettings{
		Provider: domain.MailProviderHTTP,
		Endpoint: "https://mail.example.com",
		APIKey:   "secret",
		From:     "a@example.com",
	}
	view := loadedView(t, new(MockSettingsService), settings)
	view.Update(key("j"))
	view.Update(key("enter"))

	assert.Equal(t, 1, view.selected)
	assert.Equal(t, "https://mail.example.com", view.mailInputs[mailFieldEndpoint].Value())
	assert.Equal(t, "a@example.com", view.mailInputs[mailFieldFrom].Value())
	assert.Equal(t, "", view.mailInputs[mailFieldAPIKey].Value())
}

func TestView_SaveWithoutService(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.SettingsLoaded{Settings: testSettings()})
	view.Update(key("enter"))

	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.Error(t, saved.Err)
}

func TestView_Reset(t *testing.T) {
	view := loadedView(t, new(MockSettingsService), testSettings())
	view.Update(key("j"))
	view.Update(key("enter"))
	view.Update(messages.SettingsSaved{Err: errors.New("boom")})

	view.Reset()

	assert.Equal(t, SectionOverview, view.Section())
	assert.Equal(t, 0, view.selected)
	assert.NoError(t, view.Err())
	assert.Equal(t, "", view.mailInputs[mailFieldEndpoint].Value())
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil, nil)

	view.SetDimensions(120, 40)

	assert.Equal(t, 120, view.width)
	assert.Equal(t, 40, view.height)
	assert.True(t, view.ready)
}
