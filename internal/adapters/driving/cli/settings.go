package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, email delivery and report sharing.

Use subcommands to configure a specific section interactively.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used by 'numen chat' and the chat endpoint.`,
	RunE:  runSettingsLLM,
}

var settingsMailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Configure email delivery",
	Long: `Configure how reports are emailed.

Available providers:
  console - Print messages instead of sending them (no setup required)
  http    - Post messages to a transactional email API`,
	RunE: runSettingsMail,
}

var settingsShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Configure report uploads",
	Long:  `Configure the S3 bucket used by 'numen share upload'. AWS credentials are read from the environment.`,
	RunE:  runSettingsShare,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsMailCmd)
	settingsCmd.AddCommand(settingsShareCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		printSecret(cmd, "API Key", settings.LLM.APIKey)
	}
	printStatus(cmd, settings.LLM.IsConfigured())
	cmd.Println()

	// Mail settings
	cmd.Println("[Mail]")
	cmd.Printf("  Provider: %s\n", settings.Mail.Provider.Description())
	cmd.Printf("  From: %s\n", settings.Mail.From)
	if settings.Mail.Provider == domain.MailProviderHTTP {
		cmd.Printf("  Endpoint: %s\n", settings.Mail.Endpoint)
		printSecret(cmd, "API Key", settings.Mail.APIKey)
	}
	printStatus(cmd, settings.Mail.IsConfigured())
	cmd.Println()

	// Share settings
	cmd.Println("[Share]")
	if settings.Share.IsConfigured() {
		cmd.Printf("  Bucket: %s\n", settings.Share.Bucket)
		cmd.Printf("  Region: %s\n", settings.Share.Region)
		cmd.Printf("  Prefix: %s\n", settings.Share.Prefix)
		cmd.Printf("  Link TTL: %s\n", settings.Share.LinkTTL)
	}
	printStatus(cmd, settings.Share.IsConfigured())
	cmd.Println()

	// Server and blog settings
	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if len(settings.Server.CORSOrigins) > 0 {
		cmd.Printf("  CORS Origins: %s\n", strings.Join(settings.Server.CORSOrigins, ", "))
	} else {
		cmd.Println("  CORS Origins: (all)")
	}
	if settings.Blog.Dir != "" {
		cmd.Printf("  Blog Directory: %s\n", settings.Blog.Dir)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printSecret(cmd *cobra.Command, label, value string) {
	if value != "" {
		cmd.Printf("  %s: %s\n", label, maskAPIKey(value))
	} else {
		cmd.Printf("  %s: (not set)\n", label)
	}
}

func printStatus(cmd *cobra.Command, configured bool) {
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsMail(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Mail Provider")
	providers := []domain.MailProvider{domain.MailProviderConsole, domain.MailProviderHTTP}
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	cmd.Printf("Sender address [%s]: ", current.Mail.From)
	from := readLine(reader)
	if from == "" {
		from = current.Mail.From
	}

	var endpoint, apiKey string
	if provider == domain.MailProviderHTTP {
		cmd.Printf("API endpoint [%s]: ", current.Mail.Endpoint)
		endpoint = readLine(reader)
		if endpoint == "" {
			endpoint = current.Mail.Endpoint
		}
		if endpoint == "" {
			return errors.New("endpoint is required for the HTTP provider")
		}
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for the HTTP provider")
		}
	}

	if err := settingsService.SetMail(provider, endpoint, apiKey, from); err != nil {
		return fmt.Errorf("failed to configure mail: %w", err)
	}

	cmd.Printf("Mail configured: %s (from %s)\n", provider.Description(), from)
	return nil
}

func runSettingsShare(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Printf("S3 bucket [%s]: ", current.Share.Bucket)
	bucket := readLine(reader)
	if bucket == "" {
		bucket = current.Share.Bucket
	}
	if bucket == "" {
		return errors.New("bucket is required")
	}

	cmd.Printf("Region [%s]: ", current.Share.Region)
	region := readLine(reader)
	if region == "" {
		region = current.Share.Region
	}

	cmd.Printf("Key prefix [%s]: ", current.Share.Prefix)
	prefix := readLine(reader)
	if prefix == "" {
		prefix = current.Share.Prefix
	}

	cmd.Printf("Link lifetime [%s]: ", current.Share.LinkTTL)
	ttl := current.Share.LinkTTL
	if input := readLine(reader); input != "" {
		parsed, err := time.ParseDuration(input)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid link lifetime %q, use a duration such as 24h", input)
		}
		ttl = parsed
	}

	if err := settingsService.SetShare(bucket, region, prefix, ttl); err != nil {
		return fmt.Errorf("failed to configure sharing: %w", err)
	}

	cmd.Printf("Sharing configured: s3://%s/%s (links valid %s)\n", bucket, prefix, ttl)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is an interactive terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
