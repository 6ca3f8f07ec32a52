package di

import (
	"context"
	"log/slog"

	feedService "github.com/efrenfb/telegram-inbox-bot/internal/modules/feed/service"
	keywordService "github.com/efrenfb/telegram-inbox-bot/internal/modules/keyword/service"
	statsService "github.com/efrenfb/telegram-inbox-bot/internal/modules/stats/service"
	uploadRepo "github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/repository"
	uploadService "github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/service"
	"github.com/efrenfb/telegram-inbox-bot/internal/shared/config"
	httpServer "github.com/efrenfb/telegram-inbox-bot/internal/transport/http"
	telegramHandler "github.com/efrenfb/telegram-inbox-bot/internal/transport/telegram"
	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Upload Repository
	do.Provide(injector, func(i do.Injector) (uploadRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := uploadRepo.NewFileStorage(cfg.DownloadPath)
		if err != nil {
			return nil, oops.With("download_path", cfg.DownloadPath, "context", "failed to initialize upload repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Stats Service
	do.Provide(injector, func(i do.Injector) (*statsService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return statsService.New(cfg.AutoForward), nil
	})

	// Register Keyword Service (a broken table degrades to an empty one)
	do.Provide(injector, func(i do.Injector) (*keywordService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		entries, err := keywordService.LoadTable(cfg.KeywordsPath)
		if err != nil {
			slog.Warn("Failed to load keyword table, continuing with empty table", "path", cfg.KeywordsPath, "error", err)
			entries = nil
		}
		return keywordService.New(entries), nil
	})

	// Register Upload Service
	do.Provide(injector, func(i do.Injector) (*uploadService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[uploadRepo.Repository](i)
		stats := do.MustInvoke[*statsService.Service](i)
		return uploadService.New(repo, stats, cfg.MaxUploadBytes), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		repo := do.MustInvoke[uploadRepo.Repository](i)
		return feedService.New(repo), nil
	})

	// Register Forwarder
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Forwarder, error) {
		cfg := do.MustInvoke[*config.Config](i)
		stats := do.MustInvoke[*statsService.Service](i)
		return telegramHandler.NewForwarder(cfg, stats), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		uploads := do.MustInvoke[*uploadService.Service](i)
		keywords := do.MustInvoke[*keywordService.Service](i)
		stats := do.MustInvoke[*statsService.Service](i)
		forwarder := do.MustInvoke[*telegramHandler.Forwarder](i)
		return telegramHandler.New(cfg, uploads, keywords, stats, forwarder), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feedService := do.MustInvoke[*feedService.Service](i)
		server := httpServer.New(cfg, feedService)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
		}
		if cfg.TelegramAPIURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.TelegramAPIURL))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		return b, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	return nil
}
