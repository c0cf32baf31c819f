package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asadintwala/jobspy-scraper-api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotInitialized means a log attempt happened before the audit store
// was constructed or after teardown. Silent data loss is not acceptable
// for an audit trail, so this always surfaces loudly in the operator log.
var ErrNotInitialized = errors.New("audit store not initialized")

// Store persists audit records.
type Store interface {
	InsertLog(ctx context.Context, entry *models.RequestLog) error
}

type Logger struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Logger {
	return &Logger{
		store:  store,
		logger: logger,
	}
}

// Entry is the request/response metadata captured by the transport layer
// once the response has been computed.
type Entry struct {
	Method         string
	Path           string
	QueryParams    map[string]string
	Headers        map[string]string
	ClientIP       string
	ResponseStatus int
	ResponseTimeMs float64
	UserAgent      string
}

// Record builds an immutable audit record from the entry and persists it.
// Runs on a detached goroutine relative to the response path; persistence
// failures go to the operator log only and never reach the caller.
func (l *Logger) Record(ctx context.Context, e Entry) error {
	if l.store == nil {
		l.logger.Error("audit record dropped", zap.Error(ErrNotInitialized))
		return ErrNotInitialized
	}

	entry := &models.RequestLog{
		RequestID:      uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Method:         e.Method,
		Path:           e.Path,
		QueryParams:    e.QueryParams,
		Headers:        SanitizeHeaders(e.Headers),
		ClientIP:       e.ClientIP,
		ResponseStatus: e.ResponseStatus,
		ResponseTimeMs: e.ResponseTimeMs,
		UserAgent:      e.UserAgent,
	}

	if err := l.store.InsertLog(ctx, entry); err != nil {
		l.logger.Error("failed to persist audit record",
			zap.String("request_id", entry.RequestID),
			zap.String("path", entry.Path),
			zap.Error(err),
		)
		return fmt.Errorf("persist audit record: %w", err)
	}

	l.logger.Debug("request audited",
		zap.String("request_id", entry.RequestID),
		zap.String("path", entry.Path),
		zap.Int("status", entry.ResponseStatus),
	)

	return nil
}

// SanitizeHeaders strips the authorization header, case-insensitively.
// No other header is filtered.
func SanitizeHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.EqualFold(k, "authorization") {
			continue
		}
		out[k] = v
	}
	return out
}
