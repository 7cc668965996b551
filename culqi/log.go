package culqi

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Log is the audit record of one outbound API call. A fresh record is
// built per call and persisted once the call finishes, whatever the
// outcome. TrackingID and APIVersion come from response headers when the
// upstream sent them, otherwise they stay empty.
type Log struct {
	ID         string          `json:"id,omitempty"`
	TrackingID string          `json:"tracking_id"`
	APIVersion string          `json:"culqi_version"`
	Operation  Operation       `json:"operation"`
	URL        string          `json:"url"`
	HTTPCode   int             `json:"http_code,omitempty"`
	StartedAt  time.Time       `json:"start_date_utc,omitzero"`
	EndedAt    time.Time       `json:"end_date_utc,omitzero"`
	Request    json.RawMessage `json:"request,omitempty"`
	Response   json.RawMessage `json:"response"`
}

// LogStore persists audit records. Create failures never reach the
// payment flow; the client reports them to the system logger and moves on.
type LogStore interface {
	Create(ctx context.Context, entry *Log) error
}

// MultiStore fans one record out to several stores (e.g. SQLite plus an
// OpenSearch index). Every store is attempted; errors are joined.
type MultiStore []LogStore

// Create writes the entry to every store.
func (m MultiStore) Create(ctx context.Context, entry *Log) error {
	var errs []error
	for _, store := range m {
		if err := store.Create(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
