package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/blog"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/content"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/mail/console"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/mail/httpmail"
	s3store "github.com/custodia-labs/numen-cli/internal/adapters/driven/objectstore/s3"
	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/services"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// initialise is the composition root. It builds every adapter from the
// saved settings and returns a cleanup that releases them.
func initialise(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve config directory: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	var closers []func()
	closers = append(closers, func() { _ = store.Close() })
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	catalog, err := content.NewCatalog()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load content: %w", err)
	}

	numerologyService := services.NewNumerologyService(catalog)
	profileStore := store.ProfileStore()

	posts, err := blog.NewStore(settings.Blog.Dir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load blog: %w", err)
	}
	var watcher cli.BackgroundTask
	if settings.Blog.Dir != "" {
		w, err := blog.NewWatcher(settings.Blog.Dir, posts, 0)
		if err != nil {
			logger.Warn("blog watcher disabled: %v", err)
		} else {
			watcher = w
			closers = append(closers, w.Stop)
		}
	}

	aiResult := ai.Init(&settings.LLM)
	for _, w := range aiResult.Warnings {
		logger.Warn("%s", w)
	}
	closers = append(closers, aiResult.Close)

	chatService := services.NewChatService(aiResult.LLMService, profileStore, numerologyService)
	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		logger.Warn("custom prompts disabled: %v", err)
	} else {
		chatService.SetPromptStore(prompts)
	}

	return &cli.Services{
		Numerology:  numerologyService,
		Profile:     services.NewProfileService(profileStore),
		Oracle:      services.NewOracleService(content.CryptoDice{}, catalog, store.ReadingStore()),
		Blog:        services.NewBlogService(posts, blog.NewAutoRenderer()),
		Chat:        chatService,
		Email:       services.NewEmailService(newMailer(settings.Mail)),
		Share:       services.NewShareService(newObjectStore(ctx, settings.Share), settings.Share),
		Settings:    settingsService,
		BlogWatcher: watcher,
	}, cleanup, nil
}

// newMailer picks the configured mailer. An incomplete HTTP setup falls
// back to printing messages.
func newMailer(cfg domain.MailSettings) driven.Mailer {
	if cfg.Provider == domain.MailProviderHTTP {
		m, err := httpmail.NewMailer(httpmail.Config{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			From:     cfg.From,
		})
		if err == nil {
			return m
		}
		logger.Warn("http mail disabled, printing instead: %v", err)
	}
	return console.NewMailer(os.Stdout, cfg.From)
}

// newObjectStore returns nil when sharing is not configured.
func newObjectStore(ctx context.Context, cfg domain.ShareSettings) driven.ObjectStore {
	if !cfg.IsConfigured() {
		return nil
	}
	store, err := s3store.NewStore(ctx, s3store.Config{
		Bucket: cfg.Bucket,
		Region: cfg.Region,
		Prefix: cfg.Prefix,
	})
	if err != nil {
		logger.Warn("report uploads disabled: %v", err)
		return nil
	}
	return store
}
