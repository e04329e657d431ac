package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wenturc/prompt-market/internal/api"
	"github.com/wenturc/prompt-market/internal/core/service"
	"github.com/wenturc/prompt-market/internal/infrastructure/config"
	"github.com/wenturc/prompt-market/internal/infrastructure/db/mongo"
	"github.com/wenturc/prompt-market/internal/infrastructure/db/redis"
	"github.com/wenturc/prompt-market/internal/infrastructure/httpclient"
	"github.com/wenturc/prompt-market/internal/infrastructure/market"
	"github.com/wenturc/prompt-market/internal/infrastructure/queue"
	"github.com/wenturc/prompt-market/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("gateway failed")
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env != string(config.EnvProduction),
	})

	env, endpoints := config.Resolve(log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// --- Stores and shared outbound client ---
	creds := redis.NewCredentialStore(rdb)
	themes := redis.NewThemeStore(rdb)
	apiClient := httpclient.New(creds.Token, cfg.HTTPTimeout, log)

	// --- Services ---
	sessions := service.NewSessionService(creds, apiClient, endpoints.APIBase, log)
	if sessions.Init(ctx) {
		log.Info().Str("username", sessions.Snapshot().Username).Msg("session restored from stored credentials")
	} else {
		log.Info().Msg("starting as guest")
	}

	marketClient := market.New(apiClient, endpoints.APIBase, "external",
		cfg.Market.PageSize, cfg.Market.MaxPages, log)
	catalog := service.NewCatalogService(marketClient, mongo.NewPromptRepository(db), log)
	themeService := service.NewThemeService(themes, log)

	dispatcher := queue.NewDispatcher(cfg.Market.SyncWorkers, catalog, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Sessions:  sessions,
		Catalog:   catalog,
		Themes:    themeService,
		SyncQueue: dispatcher,
		Endpoints: endpoints,
		Mongo:     db,
		Redis:     rdb,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", string(env)).Msg("gateway listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
