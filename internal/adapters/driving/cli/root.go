// Package cli provides the cobra command tree for numen.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services injected by the composition root.
var (
	numerologyService driving.NumerologyService
	profileService    driving.ProfileService
	oracleService     driving.OracleService
	blogService       driving.BlogService
	chatService       driving.ChatService
	emailService      driving.EmailService
	shareService      driving.ShareService
	settingsService   driving.SettingsService
	blogWatcher       BackgroundTask
)

// BackgroundTask is a long-running job started by 'numen serve'.
type BackgroundTask interface {
	Run(ctx context.Context) error
}

// Services aggregates everything the commands need.
type Services struct {
	Numerology driving.NumerologyService
	Profile    driving.ProfileService
	Oracle     driving.OracleService
	Blog       driving.BlogService
	Chat       driving.ChatService
	Email      driving.EmailService
	Share      driving.ShareService
	Settings   driving.SettingsService

	// BlogWatcher reloads blog posts while the server runs. Optional.
	BlogWatcher BackgroundTask
}

// Options are the global flag values passed to the initializer.
type Options struct {
	// ConfigDir overrides the default configuration directory.
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Initializer builds the services for a command invocation. The returned
// cleanup function is called after the command finishes.
type Initializer func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	initializer Initializer
	cleanup     func()

	flagVerbose   bool
	flagConfigDir string
)

// skipServicesAnnotation marks commands that run without services.
const skipServicesAnnotation = "numen/skip-services"

var rootCmd = &cobra.Command{
	Use:   "numen",
	Short: "Numerology reports, oracle readings and more",
	Long: `Numen computes Pythagorean numerology reports from a name and birth date,
rolls a dice oracle, serves a small blog and chats about your numbers with an LLM.

Use it from the command line, the interactive terminal UI ('numen tui'),
an MCP-compatible assistant ('numen mcp serve') or over HTTP ('numen serve').`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.numen)")
}

// SetVersion sets the version reported by 'numen version'.
func SetVersion(v string) {
	version = v
}

// SetInitializer registers the function that builds services on demand.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetServices injects services directly. Commands run with whatever is set.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	numerologyService = s.Numerology
	profileService = s.Profile
	oracleService = s.Oracle
	blogService = s.Blog
	chatService = s.Chat
	emailService = s.Email
	shareService = s.Share
	settingsService = s.Settings
	blogWatcher = s.BlogWatcher
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if cmd.Annotations[skipServicesAnnotation] == "true" {
		return nil
	}
	// Already injected, e.g. by tests.
	if initializer == nil || numerologyService != nil {
		return nil
	}

	services, done, err := initializer(cmd.Context(), Options{
		ConfigDir: flagConfigDir,
		Verbose:   flagVerbose,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
