package middleware

import (
	"context"
	"time"

	"github.com/asadintwala/jobspy-scraper-api/internal/audit"

	"github.com/gin-gonic/gin"
)

// Audit captures request/response metadata once the handler chain has
// produced the response and hands it to the audit logger on a detached
// goroutine. The response is never delayed or failed by persistence.
func Audit(recorder *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := audit.Entry{
			Method:         c.Request.Method,
			Path:           c.Request.URL.Path,
			QueryParams:    flatten(c.Request.URL.Query()),
			Headers:        flatten(c.Request.Header),
			ClientIP:       c.ClientIP(),
			ResponseStatus: c.Writer.Status(),
			ResponseTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
			UserAgent:      c.Request.UserAgent(),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			// Record logs its own failures; nothing reaches the caller.
			_ = recorder.Record(ctx, entry)
		}()
	}
}

func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
