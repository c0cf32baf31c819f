package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/asadintwala/jobspy-scraper-api/internal/config"
	"github.com/asadintwala/jobspy-scraper-api/internal/models"
	"github.com/asadintwala/jobspy-scraper-api/internal/search"
	"github.com/asadintwala/jobspy-scraper-api/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogStore is the slice of the audit store the handlers need.
type LogStore interface {
	GetLogs(ctx context.Context, skip, limit int) ([]models.RequestLog, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	cfg    *config.Config
	search *search.Service
	store  LogStore
	cache  *redis.Cache
	logger *zap.Logger
}

func NewHandler(
	cfg *config.Config,
	searchSvc *search.Service,
	store LogStore,
	cache *redis.Cache,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:    cfg,
		search: searchSvc,
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetJobs is GET /api/v1/jobs
func (h *Handler) GetJobs(c *gin.Context) {
	req := defaultSearchRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid query parameters: " + err.Error()})
		return
	}

	// Encode() sorts keys, so equivalent queries share a cache entry.
	encodedQuery := c.Request.URL.Query().Encode()

	if h.cache != nil {
		var cached models.SearchResponse
		if err := h.cache.GetSearchResults(c.Request.Context(), encodedQuery, &cached); err == nil {
			h.logger.Debug("search cache hit", zap.String("query", encodedQuery))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	resp, err := h.search.Search(c.Request.Context(), req.toQuery())
	if err != nil {
		var vErr *search.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"detail": vErr.Message})
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{"detail": "request timed out"})
		default:
			h.logger.Error("job search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "error searching jobs"})
		}
		return
	}

	if h.cache != nil {
		if err := h.cache.SetSearchResults(c.Request.Context(), encodedQuery, resp, h.cfg.CacheTTL); err != nil {
			h.logger.Warn("failed to cache search results", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetLogs is GET /api/v1/logs
func (h *Handler) GetLogs(c *gin.Context) {
	req := LogsRequest{Limit: 100}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid query parameters: " + err.Error()})
		return
	}

	if req.Skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "skip must be greater than or equal to 0"})
		return
	}

	if req.Limit < 1 || req.Limit > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be between 1 and 1000"})
		return
	}

	logs, err := h.store.GetLogs(c.Request.Context(), req.Skip, req.Limit)
	if err != nil {
		h.logger.Error("failed to retrieve logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "error retrieving logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Health is GET /api/v1/health. Always 200; connection failures land in
// the payload, not the status code.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	payload := gin.H{"status": "ok"}

	if err := h.store.Ping(ctx); err != nil {
		payload["status"] = "degraded"
		payload["database"] = fmt.Sprintf("error: %v", err)
	} else {
		payload["database"] = "connected"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			payload["status"] = "degraded"
			payload["cache"] = fmt.Sprintf("error: %v", err)
		} else {
			payload["cache"] = "connected"
		}
	}

	c.JSON(http.StatusOK, payload)
}
