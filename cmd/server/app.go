package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hovertrans/backend/internal/bus"
	"hovertrans/backend/internal/config"
	"hovertrans/backend/internal/db"
	"hovertrans/backend/internal/dispatch"
	"hovertrans/backend/internal/i18n"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/network"
	"hovertrans/backend/internal/notify"
	"hovertrans/backend/internal/repository"
	"hovertrans/backend/internal/selection"
	"hovertrans/backend/internal/service"
	"hovertrans/backend/internal/snowflake"
	"hovertrans/backend/internal/tab"
	"hovertrans/backend/internal/translator"
	"hovertrans/backend/internal/translator/llm"
)

// app wires the services shared by every subcommand.
type app struct {
	cfg        config.Config
	repo       repository.SettingsRepository
	settings   service.SettingsService
	history    service.HistoryService
	catalog    *i18n.Catalog
	translator translator.Translator
	closers    []func() error
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	if err := snowflake.Init(cfg.NodeID); err != nil {
		return nil, fmt.Errorf("init snowflake: %w", err)
	}

	a := &app{cfg: cfg}
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)
	a.repo = repo

	catalog, err := i18n.New(cfg.Locale)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load messages: %w", err)
	}

	a.catalog = catalog
	a.settings = service.NewSettingsService(repo)
	a.history = service.NewHistoryService(repo)
	tr, err := newTranslator(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.translator = tr
	return a, nil
}

// Close releases the store. Errors from every closer are joined.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// server holds the long-running pieces only serve needs.
type server struct {
	hub        *tab.Hub
	bus        *bus.Bus
	dispatcher *dispatch.Dispatcher
}

func (a *app) newServer() (*server, error) {
	hub := tab.NewHub(tab.DefaultMailboxSize)
	b := bus.New()

	dispatcher, err := dispatch.New(dispatch.Options{
		Translator: a.translator,
		Settings:   a.settings,
		History:    a.history,
		Notifier:   notify.NewBusNotifier(b, hub),
		Tabs:       selection.NewRelay(hub, b),
		Catalog:    a.catalog,
		Workers:    a.cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	return &server{hub: hub, bus: b, dispatcher: dispatcher}, nil
}

func openStore(ctx context.Context, cfg config.Config) (repository.SettingsRepository, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("store opened", "module", "app", "action", "open", "resource", "store", "result", "ok", "store", cfg.Store, "addr", cfg.RedisAddr)
		return repository.NewRedisSettingsRepository(client), client.Close, nil
	default:
		conn, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		logger.Info("store opened", "module", "app", "action", "open", "resource", "store", "result", "ok", "store", cfg.Store, "path", cfg.DBPath)
		return repository.NewSettingsRepository(conn), conn.Close, nil
	}
}

func newTranslator(cfg config.Config) (translator.Translator, error) {
	if cfg.Translator != config.TranslatorGoogle {
		provider, err := llm.NewProvider(llm.Config{
			Provider:  cfg.Translator,
			APIKey:    cfg.AIAPIKey,
			BaseURL:   cfg.AIBaseURL,
			Model:     cfg.AIModel,
			MaxTokens: cfg.AIMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s translator: %w", cfg.Translator, err)
		}
		return llm.NewTranslator(provider, cfg.TranslateTimeout, cfg.TranslateQPS), nil
	}

	clients := network.NewClientFactory(network.StaticProxy(cfg.ProxyURL))

	var fetcher translator.Fetcher
	switch cfg.Transport {
	case config.TransportBrowser:
		fetcher = translator.NewBrowserFetcher(clients, cfg.TranslateTimeout)
	default:
		fetcher = translator.NewHTTPFetcher(clients, cfg.TranslateTimeout)
	}

	return translator.New(fetcher, translator.Options{
		Endpoint: cfg.TranslateEndpoint,
		Timeout:  cfg.TranslateTimeout,
		QPS:      cfg.TranslateQPS,
	}), nil
}
