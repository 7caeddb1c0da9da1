package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"videodash-backend/internal/shared/middleware"
	"videodash-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Dashboard page and its assets.
	staticDir := c.Config.App.StaticDir
	router.StaticFile("/", filepath.Join(staticDir, "index.html"))
	router.Static("/static", staticDir)

	// The search endpoints burn upstream API quota, so they sit behind the
	// per-IP rate limiter. Uploads do not.
	rateLimited := c.RateLimiter.Handler()

	router.POST("/upload-excel", c.VideoHandler.UploadExcel)
	router.GET("/search-videos", rateLimited, c.VideoHandler.SearchVideos)
	router.GET("/combined-videos", rateLimited, c.VideoHandler.CombinedVideos)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// The cache is optional; its absence never degrades the service.
		redisStatus := "disabled"
		if appCtx.Cache != nil {
			redisStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
