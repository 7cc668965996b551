package logstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// UpdateMetadata upserts the metadata document of a platform customer.
// It backs the payment adapter's customer store contract.
func (s *SQLiteStore) UpdateMetadata(ctx context.Context, customerID string, metadata map[string]any) error {
	if customerID == "" {
		return errors.New("customer id is required")
	}

	doc, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode customer metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO customer_metadata (customer_id, metadata, updated_at_utc)
		VALUES (?, ?, ?)
		ON CONFLICT(customer_id) DO UPDATE SET
			metadata = excluded.metadata,
			updated_at_utc = excluded.updated_at_utc`,
		customerID, string(doc), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert customer metadata: %w", err)
	}
	return nil
}

// GetMetadata returns the stored metadata document of a platform
// customer, or sql.ErrNoRows when none was recorded.
func (s *SQLiteStore) GetMetadata(ctx context.Context, customerID string) (map[string]any, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT metadata FROM customer_metadata WHERE customer_id = ?`, customerID,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to query customer metadata: %w", err)
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(doc), &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode customer metadata: %w", err)
	}
	return metadata, nil
}
