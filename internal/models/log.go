package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// RequestLog is one audit record per HTTP request. Records are immutable
// once persisted; nothing in this service updates or deletes them.
type RequestLog struct {
	RequestID      string            `json:"request_id" db:"request_id"`
	Timestamp      time.Time         `json:"timestamp" db:"timestamp"`
	Method         string            `json:"method" db:"method"`
	Path           string            `json:"path" db:"path"`
	QueryParams    map[string]string `json:"query_params" db:"-"`
	Headers        map[string]string `json:"headers" db:"-"`
	ClientIP       string            `json:"client_ip" db:"client_ip"`
	ResponseStatus int               `json:"response_status" db:"response_status"`
	ResponseTimeMs float64           `json:"response_time_ms" db:"response_time_ms"`
	UserAgent      string            `json:"user_agent" db:"user_agent"`
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	*r = RawJSON(bytes)
	return nil
}
