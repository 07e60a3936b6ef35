// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionLLM
	SectionMail
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// Mail form field indices. Zero is the provider list.
const (
	mailFieldList = iota
	mailFieldEndpoint
	mailFieldAPIKey
	mailFieldFrom
	mailFieldCount
)

// overviewItems is the number of selectable overview rows.
const overviewItems = 2

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	// Navigation state
	section      Section
	selected     int // selection within current section
	focusedField int // 0 is the list, higher values are text inputs

	llmAPIKeyInput textinput.Model
	mailInputs     [mailFieldCount]textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	llmAPIKeyInput := textinput.New()
	llmAPIKeyInput.Placeholder = "Enter API key"
	llmAPIKeyInput.EchoMode = textinput.EchoPassword
	llmAPIKeyInput.CharLimit = 256

	var mailInputs [mailFieldCount]textinput.Model
	for i := range mailInputs {
		mailInputs[i] = textinput.New()
		mailInputs[i].CharLimit = 256
	}
	mailInputs[mailFieldEndpoint].Placeholder = "https://api.example.com/send"
	mailInputs[mailFieldAPIKey].Placeholder = "Enter API key"
	mailInputs[mailFieldAPIKey].EchoMode = textinput.EchoPassword
	mailInputs[mailFieldFrom].Placeholder = "numen@example.com"

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		llmAPIKeyInput:  llmAPIKeyInput,
		mailInputs:      mailInputs,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.backToOverview()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.backToOverview()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionLLM:
		return v.handleLLMKeys(msg)
	case SectionMail:
		return v.handleMailKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewItems-1 {
			v.selected++
		}
	case keyEnter:
		switch v.selected {
		case 0:
			v.section = SectionLLM
			v.selected = v.getLLMProviderIndex()
		case 1:
			v.section = SectionMail
			v.selected = v.getMailProviderIndex()
			v.prefillMail()
		}
	}
	return v, nil
}

func (v *View) handleLLMKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllLLMProviders()

	// If we're focused on the API key input
	if v.focusedField == 1 {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.focusedField = 0
			v.llmAPIKeyInput.Blur()
			return v, nil
		case keyEnter:
			if v.selected >= 0 && v.selected < len(providers) {
				return v, v.setLLMProvider(providers[v.selected], v.llmAPIKeyInput.Value())
			}
		default:
			var cmd tea.Cmd
			v.llmAPIKeyInput, cmd = v.llmAPIKeyInput.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(providers)-1 {
			v.selected++
		}
	case keyTab, keyEnter:
		if v.selected < 0 || v.selected >= len(providers) {
			return v, nil
		}
		provider := providers[v.selected]
		if provider.RequiresAPIKey() {
			v.focusedField = 1
			return v, v.llmAPIKeyInput.Focus()
		}
		if msg.String() == keyEnter {
			return v, v.setLLMProvider(provider, "")
		}
	}
	return v, nil
}

func (v *View) handleMailKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := allMailProviders()

	if v.focusedField > mailFieldList {
		switch msg.String() {
		case keyTab:
			return v, v.focusMail((v.focusedField + 1) % mailFieldCount)
		case "shift+tab":
			return v, v.focusMail((v.focusedField + mailFieldCount - 1) % mailFieldCount)
		case keyEnter:
			return v, v.setMail(providers[v.selected])
		default:
			var cmd tea.Cmd
			v.mailInputs[v.focusedField], cmd = v.mailInputs[v.focusedField].Update(msg)
			return v, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(providers)-1 {
			v.selected++
		}
	case keyTab, keyEnter:
		if providers[v.selected] == domain.MailProviderHTTP {
			return v, v.focusMail(mailFieldEndpoint)
		}
		if msg.String() == keyEnter {
			return v, v.setMail(providers[v.selected])
		}
	}
	return v, nil
}

// focusMail focuses mail field i. Field zero returns focus to the list.
func (v *View) focusMail(i int) tea.Cmd {
	v.focusedField = i
	var cmd tea.Cmd
	for j := mailFieldEndpoint; j < mailFieldCount; j++ {
		if j == i {
			cmd = v.mailInputs[j].Focus()
		} else {
			v.mailInputs[j].Blur()
		}
	}
	return cmd
}

func (v *View) prefillMail() {
	if v.settings == nil {
		return
	}
	v.mailInputs[mailFieldEndpoint].SetValue(v.settings.Mail.Endpoint)
	v.mailInputs[mailFieldFrom].SetValue(v.settings.Mail.From)
	// The stored key is kept when the field is left empty.
	v.mailInputs[mailFieldAPIKey].SetValue("")
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.llmAPIKeyInput.SetValue("")
	v.llmAPIKeyInput.Blur()
	v.focusMail(mailFieldList)
}

// Commands to update settings.

func (v *View) setLLMProvider(provider domain.AIProvider, apiKey string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		model := domain.DefaultLLMModels()[provider]
		return messages.SettingsSaved{Err: svc.SetLLMProvider(provider, model, apiKey)}
	}
}

func (v *View) setMail(provider domain.MailProvider) tea.Cmd {
	svc := v.settingsService
	var endpoint, apiKey, from string
	if provider == domain.MailProviderHTTP {
		endpoint = strings.TrimSpace(v.mailInputs[mailFieldEndpoint].Value())
		apiKey = strings.TrimSpace(v.mailInputs[mailFieldAPIKey].Value())
		from = strings.TrimSpace(v.mailInputs[mailFieldFrom].Value())
	}
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: svc.SetMail(provider, endpoint, apiKey, from)}
	}
}

func allMailProviders() []domain.MailProvider {
	return []domain.MailProvider{domain.MailProviderConsole, domain.MailProviderHTTP}
}

// Helper methods to get current selection indices.

func (v *View) getLLMProviderIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, p := range domain.AllLLMProviders() {
		if p == v.settings.LLM.Provider {
			return i
		}
	}
	return 0
}

func (v *View) getMailProviderIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, p := range allMailProviders() {
		if p == v.settings.Mail.Provider {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionLLM:
		b.WriteString(v.renderLLMSelect())
	case SectionMail:
		b.WriteString(v.renderMailSelect())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	llmValue := "Not Set"
	if v.settings.LLM.Provider != "" {
		llmValue = fmt.Sprintf("%s (%s)", v.settings.LLM.Provider.Description(), v.settings.LLM.Model)
	}

	mailValue := v.settings.Mail.Provider.Description()
	if v.settings.Mail.From != "" {
		mailValue += ", from " + v.settings.Mail.From
	}

	items := []struct {
		label  string
		value  string
		status string
	}{
		{label: "LLM Provider", value: llmValue, status: v.getLLMStatus()},
		{label: "Mail", value: mailValue, status: v.getMailStatus()},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if item.status != "" {
			line += " " + item.status
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	// Sections edited from the command line only.
	b.WriteString("\n")
	share := "disabled"
	if v.settings.Share.IsConfigured() {
		share = fmt.Sprintf("s3://%s/%s (%s, links valid %s)",
			v.settings.Share.Bucket, v.settings.Share.Prefix, v.settings.Share.Region, v.settings.Share.LinkTTL)
	}
	b.WriteString(v.styles.Muted.Render("  Share uploads: " + share))
	b.WriteString("\n")
	blogDir := "built-in posts only"
	if v.settings.Blog.Dir != "" {
		blogDir = v.settings.Blog.Dir
	}
	b.WriteString(v.styles.Muted.Render("  Blog posts:    " + blogDir))
	b.WriteString("\n")

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) getLLMStatus() string {
	if v.settings.LLM.Provider == "" {
		return v.styles.Muted.Render("[chat disabled]")
	}
	if v.settings.LLM.IsConfigured() {
		return v.styles.Success.Render("[configured]")
	}
	return v.styles.Warning.Render("[needs API key]")
}

func (v *View) getMailStatus() string {
	if v.settings.Mail.IsConfigured() {
		return v.styles.Success.Render("[configured]")
	}
	return v.styles.Warning.Render("[incomplete]")
}

func (v *View) renderLLMSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select LLM Provider"))
	b.WriteString("\n\n")

	providers := domain.AllLLMProviders()
	defaults := domain.DefaultLLMModels()
	for i, provider := range providers {
		selected := i == v.selected && v.focusedField == 0
		indicator := "  "
		if selected {
			indicator = "> "
		}

		current := ""
		if provider == v.settings.LLM.Provider {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, provider.Description(), current)
		if selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")

		if model, ok := defaults[provider]; ok {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    Model: %s", model)))
			b.WriteString("\n")
		}
	}

	if v.selected >= 0 && v.selected < len(providers) && providers[v.selected].RequiresAPIKey() {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(v.llmAPIKeyInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderMailSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Mail Provider"))
	b.WriteString("\n\n")

	providers := allMailProviders()
	for i, provider := range providers {
		selected := i == v.selected && v.focusedField == mailFieldList
		indicator := "  "
		if selected {
			indicator = "> "
		}

		current := ""
		if provider == v.settings.Mail.Provider {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, provider.Description(), current)
		if selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if providers[v.selected] == domain.MailProviderHTTP {
		labels := map[int]string{
			mailFieldEndpoint: "Endpoint:",
			mailFieldAPIKey:   "API Key:",
			mailFieldFrom:     "From:",
		}
		for i := mailFieldEndpoint; i < mailFieldCount; i++ {
			b.WriteString("\n")
			b.WriteString(v.styles.Normal.Render(labels[i]))
			b.WriteString("\n")
			b.WriteString(v.mailInputs[i].View())
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionLLM, SectionMail:
		if v.focusedField > 0 {
			return v.styles.Help.Render("[tab] next field  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.backToOverview()
	v.err = nil
	for i := range v.mailInputs {
		v.mailInputs[i].SetValue("")
	}
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
