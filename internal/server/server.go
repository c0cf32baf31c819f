package server

import (
	"github.com/asadintwala/jobspy-scraper-api/internal/audit"
	"github.com/asadintwala/jobspy-scraper-api/internal/config"
	"github.com/asadintwala/jobspy-scraper-api/internal/server/middleware"
	"github.com/asadintwala/jobspy-scraper-api/internal/storage/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New builds the HTTP router with the full middleware chain and routes.
func New(
	cfg *config.Config,
	h *Handler,
	cache *redis.Cache,
	auditor *audit.Logger,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	if allowsAllOrigins(cfg.CORSOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.Timeout(cfg.RequestTimeout))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cache, cfg.RateLimitPerMinute, logger))
	api.Use(middleware.Audit(auditor))
	{
		api.GET("/jobs", h.GetJobs)
		api.GET("/logs", h.GetLogs)
		api.GET("/health", h.Health)
	}

	return r
}

func allowsAllOrigins(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
