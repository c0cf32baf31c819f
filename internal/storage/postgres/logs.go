package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asadintwala/jobspy-scraper-api/internal/models"

	"go.uber.org/zap"
)

const logsTable = "request_logs"

// The audit table is created lazily on first write, mirroring a document
// store where the collection appears with the first insert. Reads against
// a not-yet-created table return an empty list.
const createLogsTable = `
	CREATE TABLE IF NOT EXISTS request_logs (
		id BIGSERIAL PRIMARY KEY,
		request_id TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		method TEXT NOT NULL,
		path TEXT NOT NULL,
		query_params JSONB,
		headers JSONB,
		client_ip TEXT,
		response_status INT NOT NULL,
		response_time_ms DOUBLE PRECISION NOT NULL,
		user_agent TEXT
	)
`

type requestLogRow struct {
	ID             int64          `db:"id"`
	RequestID      string         `db:"request_id"`
	Timestamp      time.Time      `db:"timestamp"`
	Method         string         `db:"method"`
	Path           string         `db:"path"`
	QueryParams    models.RawJSON `db:"query_params"`
	Headers        models.RawJSON `db:"headers"`
	ClientIP       string         `db:"client_ip"`
	ResponseStatus int            `db:"response_status"`
	ResponseTimeMs float64        `db:"response_time_ms"`
	UserAgent      string         `db:"user_agent"`
}

func (s *Store) ensureLogsTable(ctx context.Context) error {
	s.logsOnce.Do(func() {
		if _, err := s.sess.ExecContext(ctx, createLogsTable); err != nil {
			s.logsErr = fmt.Errorf("create logs table: %w", err)
		}
	})
	return s.logsErr
}

// InsertLog persists one audit record. Records are never updated or
// deleted afterwards.
func (s *Store) InsertLog(ctx context.Context, entry *models.RequestLog) error {
	if err := s.ensureLogsTable(ctx); err != nil {
		return err
	}

	queryParams, err := json.Marshal(entry.QueryParams)
	if err != nil {
		return fmt.Errorf("marshal query params: %w", err)
	}

	headers, err := json.Marshal(entry.Headers)
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}

	query := `
		INSERT INTO request_logs (
			request_id, timestamp, method, path, query_params, headers,
			client_ip, response_status, response_time_ms, user_agent
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.sess.
		InsertBySql(query,
			entry.RequestID,
			entry.Timestamp,
			entry.Method,
			entry.Path,
			models.RawJSON(queryParams),
			models.RawJSON(headers),
			entry.ClientIP,
			entry.ResponseStatus,
			entry.ResponseTimeMs,
			entry.UserAgent,
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to insert request log",
			zap.String("request_id", entry.RequestID),
			zap.Error(err),
		)
		return fmt.Errorf("insert request log: %w", err)
	}

	return nil
}

// GetLogs pages through audit records in insertion order. A missing table
// means no traffic has been audited yet and yields an empty list, not an
// error.
func (s *Store) GetLogs(ctx context.Context, skip, limit int) ([]models.RequestLog, error) {
	exists, err := s.logsTableExists(ctx)
	if err != nil {
		return nil, err
	}

	if !exists {
		s.logger.Warn("request_logs table does not exist yet")
		return []models.RequestLog{}, nil
	}

	var rows []requestLogRow

	_, err = s.sess.
		Select("*").
		From(logsTable).
		OrderAsc("id").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		LoadContext(ctx, &rows)

	if err != nil {
		s.logger.Error("failed to get request logs",
			zap.Int("skip", skip),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get request logs: %w", err)
	}

	logs := make([]models.RequestLog, 0, len(rows))
	for _, row := range rows {
		entry := models.RequestLog{
			RequestID:      row.RequestID,
			Timestamp:      row.Timestamp,
			Method:         row.Method,
			Path:           row.Path,
			ClientIP:       row.ClientIP,
			ResponseStatus: row.ResponseStatus,
			ResponseTimeMs: row.ResponseTimeMs,
			UserAgent:      row.UserAgent,
		}

		if len(row.QueryParams) > 0 {
			if err := json.Unmarshal(row.QueryParams, &entry.QueryParams); err != nil {
				s.logger.Warn("failed to decode query params",
					zap.String("request_id", row.RequestID),
					zap.Error(err),
				)
			}
		}

		if len(row.Headers) > 0 {
			if err := json.Unmarshal(row.Headers, &entry.Headers); err != nil {
				s.logger.Warn("failed to decode headers",
					zap.String("request_id", row.RequestID),
					zap.Error(err),
				)
			}
		}

		logs = append(logs, entry)
	}

	s.logger.Debug("request logs retrieved",
		zap.Int("count", len(logs)),
		zap.Int("skip", skip),
		zap.Int("limit", limit),
	)

	return logs, nil
}

func (s *Store) logsTableExists(ctx context.Context) (bool, error) {
	var exists bool

	err := s.sess.
		SelectBySql(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = ?
			)
		`, logsTable).
		LoadOneContext(ctx, &exists)

	if err != nil {
		s.logger.Error("failed to check logs table existence", zap.Error(err))
		return false, fmt.Errorf("logs table exists: %w", err)
	}

	return exists, nil
}
