// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/config"
	"github.com/KARTHI-MAKES/event-booking/internal/database"
	"github.com/KARTHI-MAKES/event-booking/internal/handler"
	"github.com/KARTHI-MAKES/event-booking/internal/logging"
	"github.com/KARTHI-MAKES/event-booking/internal/repository"
	"github.com/KARTHI-MAKES/event-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging, os.Stderr)

	ctx := context.Background()

	// ── 1. Catalog source ────────────────────────────────────────────────
	src, cleanup, err := buildSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog source")
	}
	defer cleanup()
	logger.Info().Str("source", cfg.CatalogSource).Msg("catalog source ready")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	svc := service.New(src, logger, service.Options{
		SessionIdleTTL: cfg.SessionIdleTTL,
		ViewCacheTTL:   cfg.ViewCacheTTL,
	})
	eventHandler := handler.NewEventHandler(svc, 0)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.NewRouter(eventHandler, logger, cfg.WebDir),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Msgf("server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	logger.Info().Msg("server stopped")
}

// buildSource picks the catalog source from cfg and wraps it with the Redis
// cache when REDIS_ADDR is set. The returned cleanup releases connections.
func buildSource(ctx context.Context, cfg config.Config, logger zerolog.Logger) (catalog.Source, func(), error) {
	var (
		src     catalog.Source
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.CatalogSource {
	case config.SourceHTTP:
		src = catalog.HTTPSource{URL: cfg.CatalogURL, Client: &http.Client{Timeout: 10 * time.Second}}
	case config.SourcePostgres:
		pool, err := database.NewPool(ctx, cfg.DB, logger)
		if err != nil {
			return nil, cleanup, fmt.Errorf("database: %w", err)
		}
		closers = append(closers, pool.Close)
		logger.Info().Str("host", cfg.DB.Host).Msg("connected to PostgreSQL")
		src = repository.NewEventRepository(pool)
	default:
		src = catalog.FileSource{Path: cfg.CatalogPath}
	}

	if cfg.RedisAddr == "" {
		return src, cleanup, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	closers = append(closers, func() { _ = rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("redis: %w", err)
	}

	cached := catalog.NewRedisCache(rdb, src, "", cfg.CatalogCacheTTL, logger)
	// A restart picks up the current document rather than a stale copy.
	if err := cached.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("redis catalog cache enabled")
	return cached, cleanup, nil
}
