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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/config"
	"github.com/gauthier-se/Checkpoint/internal/handler"
	"github.com/gauthier-se/Checkpoint/internal/logger"
	"github.com/gauthier-se/Checkpoint/internal/query"
	"github.com/gauthier-se/Checkpoint/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("APP_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.App.Port).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("starting checkpoint web")

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := api.New(cfg.Upstream.BaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build api client")
	}

	cache := query.New()
	go logCacheEvents(cache, log)

	sessions := service.NewSessionService(client, cache, log)
	catalog := service.NewCatalogService(client, cache, log)
	library := service.NewLibraryService(client, cache, log)

	r := handler.NewEngine(log, cfg.Web.TemplatesGlob, cfg.Web.StaticDir)
	handler.Register(r, client, sessions, catalog, library, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
	log.Info().Msg("graceful shutdown complete")
}

// logCacheEvents traces cache invalidations and writes at debug level.
func logCacheEvents(cache *query.Cache, log zerolog.Logger) {
	events, unsubscribe := cache.Subscribe("")
	defer unsubscribe()
	for ev := range events {
		log.Debug().
			Str("key", string(ev.Key)).
			Bool("invalidated", ev.Invalidated).
			Msg("cache event")
	}
}
