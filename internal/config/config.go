package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the full application configuration, populated from
// environment variables.
type Config struct {
	App       AppConfig
	YouTube   YouTubeConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	StaticDir   string
}

type YouTubeConfig struct {
	APIKey string
	// Timeout bounds each upstream HTTP call.
	Timeout time.Duration
	// CacheTTL is how long enriched search responses stay cached.
	CacheTTL time.Duration
}

type RedisConfig struct {
	// Host empty disables the response cache entirely.
	Host     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	// Requests per second per client IP on the search endpoints.
	RPS   float64
	Burst int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("YOUTUBE_HTTP_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_HTTP_TIMEOUT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("SEARCH_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Video Dashboard API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			StaticDir:   getEnv("STATIC_DIR", "static"),
		},
		YouTube: YouTubeConfig{
			APIKey:   getEnv("YOUTUBE_API_KEY", ""),
			Timeout:  timeout,
			CacheTTL: cacheTTL,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate enforces the fatal startup conditions: the YouTube API key and
// the database credentials must be present.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY must be set")
	}
	if os.Getenv("DB_PASSWORD") == "" {
		return fmt.Errorf("DB_PASSWORD must be set")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
