package container

import (
	"context"
	"fmt"

	"videodash-backend/internal/config"
	"videodash-backend/internal/domains/video/handler"
	"videodash-backend/internal/domains/video/repository"
	"videodash-backend/internal/domains/video/service"
	rediscache "videodash-backend/internal/infrastructure/cache"
	"videodash-backend/internal/infrastructure/database"
	"videodash-backend/internal/infrastructure/youtube"
	"videodash-backend/internal/shared/middleware"
	"videodash-backend/pkg/cache"
	"videodash-backend/pkg/logger"

	"github.com/rs/zerolog/log"
)

// Container wires configuration, infrastructure, services and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	RateLimiter *middleware.IPRateLimiter

	VideoHandler *handler.VideoHandler
}

// NewContainer builds the full dependency graph. The order matters:
// config -> logger -> database -> cache -> clients -> services -> handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment)
	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("[CONTAINER] Initializing")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repository.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return nil, err
	}

	// The response cache is optional: no REDIS_HOST means no caching.
	var searchCache cache.Cache
	if cfg.Redis.Host != "" {
		redisCache := rediscache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Connect(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		searchCache = redisCache
	} else {
		log.Info().Msg("[CONTAINER] REDIS_HOST not set, search cache disabled")
	}

	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.Timeout)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}

	repo := repository.NewPostgresRepository(db.Pool)
	importService := service.NewImportService(repo)
	searchService := service.NewSearchService(ytClient, repo, searchCache, cfg.YouTube.CacheTTL)

	c := &Container{
		Config:       cfg,
		DB:           db,
		Cache:        searchCache,
		RateLimiter:  middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		VideoHandler: handler.NewVideoHandler(importService, searchService),
	}

	log.Info().Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

// Cleanup releases all held resources in reverse initialization order.
func (c *Container) Cleanup() {
	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("[CONTAINER] Failed to close cache")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("[CONTAINER] Cleanup complete")
}
