package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/content"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/services"
)

// fixedDice returns faces in order, then repeats the last one.
type fixedDice struct {
	faces []int
	next  int
}

func (d *fixedDice) Roll(_ int) (int, error) {
	face := d.faces[min(d.next, len(d.faces)-1)]
	d.next++
	return face, nil
}

// mockChatService records the last request.
type mockChatService struct {
	available bool
	reply     string
	err       error
	got       domain.ChatRequest
}

func (m *mockChatService) Ask(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ChatReply{Content: m.reply, Model: "test"}, nil
}

func (m *mockChatService) Available() bool { return m.available }

// mockEmailService records the last report sent.
type mockEmailService struct {
	err    error
	to     string
	report *domain.Report
}

func (m *mockEmailService) SendReport(_ context.Context, to string, report *domain.Report) error {
	m.to, m.report = to, report
	return m.err
}

// testServices holds the injected services for assertions.
type testServices struct {
	profiles *memory.ProfileStore
	chat     *mockChatService
	email    *mockEmailService
	config   *memory.ConfigStore
}

// setupTestServices injects services backed by in-memory stores. They are
// removed when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	svc, ts := newTestServices(t)
	SetServices(svc)
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})
	return ts
}

// newTestServices builds services backed by in-memory stores.
func newTestServices(t *testing.T) (*Services, *testServices) {
	t.Helper()

	catalog, err := content.NewCatalog()
	require.NoError(t, err)

	ts := &testServices{
		profiles: memory.NewProfileStore(),
		chat:     &mockChatService{available: true, reply: "Seven is the seeker."},
		email:    &mockEmailService{},
		config:   memory.NewConfigStore(),
	}

	posts := memory.NewPostStore(
		domain.Post{
			Slug:        "master-numbers",
			Title:       "Master Numbers",
			PublishedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"basics"},
			Body:        "Eleven, twenty-two and thirty-three.",
		},
		domain.Post{
			Slug:        "personal-year",
			Title:       "Your Personal Year",
			PublishedAt: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"cycles"},
			Body:        "Each year has a theme.",
		},
	)

	return &Services{
		Numerology: services.NewNumerologyService(catalog),
		Profile:    services.NewProfileService(ts.profiles),
		Oracle:     services.NewOracleService(&fixedDice{faces: []int{2, 3, 4}}, catalog, memory.NewReadingStore()),
		Blog:       services.NewBlogService(posts, nil),
		Chat:       ts.chat,
		Email:      ts.email,
		Share:      services.NewShareService(nil, domain.DefaultAppSettings().Share),
		Settings:   services.NewSettingsService(ts.config, nil),
	}, ts
}

// resetFlags restores every flag in the tree to its default so that
// package-level flag variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// resetContexts clears the context cobra stored on each subcommand during
// an earlier run. Cobra only assigns a subcommand's context when it is nil.
func resetContexts(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.SetContext(nil) //nolint:staticcheck // nil clears the stale context
		resetContexts(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	resetContexts(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
