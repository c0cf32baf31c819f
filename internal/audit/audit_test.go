package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/asadintwala/jobspy-scraper-api/internal/audit"
	"github.com/asadintwala/jobspy-scraper-api/internal/models"

	"go.uber.org/zap"
)

type fakeStore struct {
	inserted []*models.RequestLog
	err      error
}

func (f *fakeStore) InsertLog(ctx context.Context, entry *models.RequestLog) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, entry)
	return nil
}

func TestRecord_StripsAuthorizationHeader(t *testing.T) {
	store := &fakeStore{}
	l := audit.New(store, zap.NewNop())

	err := l.Record(context.Background(), audit.Entry{
		Method: "GET",
		Path:   "/api/v1/jobs",
		Headers: map[string]string{
			"Authorization": "Bearer secret",
			"authorization": "Bearer secret2",
			"User-Agent":    "curl/8.0",
			"Accept":        "application/json",
		},
		ResponseStatus: 200,
	})
	if err != nil {
		t.Fatalf("Record returned unexpected error: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(store.inserted))
	}

	headers := store.inserted[0].Headers
	for k := range headers {
		if k == "Authorization" || k == "authorization" {
			t.Errorf("authorization header %q survived sanitization", k)
		}
	}
	if headers["User-Agent"] != "curl/8.0" {
		t.Errorf("non-sensitive header was dropped: %v", headers)
	}
	if headers["Accept"] != "application/json" {
		t.Errorf("non-sensitive header was dropped: %v", headers)
	}
}

func TestRecord_FreshIdentifierPerRecord(t *testing.T) {
	store := &fakeStore{}
	l := audit.New(store, zap.NewNop())

	entry := audit.Entry{Method: "GET", Path: "/api/v1/jobs", ResponseStatus: 200}

	for i := 0; i < 3; i++ {
		if err := l.Record(context.Background(), entry); err != nil {
			t.Fatalf("Record returned unexpected error: %v", err)
		}
	}

	seen := make(map[string]bool)
	for _, rec := range store.inserted {
		if rec.RequestID == "" {
			t.Error("record has empty request id")
		}
		if seen[rec.RequestID] {
			t.Errorf("request id %q reused", rec.RequestID)
		}
		seen[rec.RequestID] = true
	}
}

func TestRecord_NotInitialized(t *testing.T) {
	l := audit.New(nil, zap.NewNop())

	err := l.Record(context.Background(), audit.Entry{Method: "GET", Path: "/"})
	if !errors.Is(err, audit.ErrNotInitialized) {
		t.Errorf("Record without store = %v, want ErrNotInitialized", err)
	}
}

func TestRecord_PersistenceFailureIsWrapped(t *testing.T) {
	storeErr := errors.New("connection refused")
	l := audit.New(&fakeStore{err: storeErr}, zap.NewNop())

	err := l.Record(context.Background(), audit.Entry{Method: "GET", Path: "/"})
	if !errors.Is(err, storeErr) {
		t.Errorf("Record error %v does not wrap the store error", err)
	}
}

func TestSanitizeHeaders_OnlyAuthorizationFiltered(t *testing.T) {
	in := map[string]string{
		"AUTHORIZATION": "x",
		"Cookie":        "session=abc",
		"X-Api-Key":     "key",
	}

	out := audit.SanitizeHeaders(in)

	if _, ok := out["AUTHORIZATION"]; ok {
		t.Error("AUTHORIZATION survived")
	}
	// only the authorization header is filtered, nothing else
	if out["Cookie"] != "session=abc" || out["X-Api-Key"] != "key" {
		t.Errorf("unexpected filtering: %v", out)
	}
}
