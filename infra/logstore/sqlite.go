// Package logstore persists gateway audit records in SQLite.
package logstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/andeslabs/culqi-gateway/culqi"
)

const (
	idPrefix     = "culqilog_"
	defaultLimit = 50
	maxLimit     = 200
)

// SQLiteStore is the durable audit store. It implements culqi.LogStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle for health checks.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the audit table. The operation column is constrained to
// the known operation names so unknown values fail loudly at write time.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	ops := culqi.Operations()
	quoted := make([]string, len(ops))
	for i, op := range ops {
		quoted[i] = "'" + string(op) + "'"
	}

	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS culqi_logs (
		id TEXT PRIMARY KEY,
		tracking_id TEXT NOT NULL DEFAULT '',
		culqi_version TEXT NOT NULL DEFAULT '',
		operation TEXT NOT NULL CHECK (operation IN (%s)),
		url TEXT NOT NULL,
		http_code INTEGER,
		start_date_utc TIMESTAMP NOT NULL,
		end_date_utc TIMESTAMP NOT NULL,
		request TEXT,
		response TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_culqi_logs_tracking_id ON culqi_logs(tracking_id);
	CREATE INDEX IF NOT EXISTS idx_culqi_logs_operation ON culqi_logs(operation);
	CREATE INDEX IF NOT EXISTS idx_culqi_logs_start_date ON culqi_logs(start_date_utc);
	`, strings.Join(quoted, ", "))

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate culqi_logs: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS customer_metadata (
		customer_id TEXT PRIMARY KEY,
		metadata TEXT NOT NULL DEFAULT '{}',
		updated_at_utc TIMESTAMP NOT NULL
	);`); err != nil {
		return fmt.Errorf("failed to migrate customer_metadata: %w", err)
	}
	return nil
}

// Create inserts one audit record, assigning its id.
func (s *SQLiteStore) Create(ctx context.Context, entry *culqi.Log) error {
	if entry.ID == "" {
		entry.ID = idPrefix + uuid.NewString()
	}

	var request any
	if len(entry.Request) > 0 {
		request = string(entry.Request)
	}
	response := "{}"
	if len(entry.Response) > 0 {
		response = string(entry.Response)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO culqi_logs (id, tracking_id, culqi_version, operation, url, http_code, start_date_utc, end_date_utc, request, response)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TrackingID, entry.APIVersion, string(entry.Operation), entry.URL,
		entry.HTTPCode, entry.StartedAt.UTC(), entry.EndedAt.UTC(), request, response,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// Filter narrows an audit listing.
type Filter struct {
	Operation  string
	TrackingID string
	HTTPCode   int
	Since      time.Time
	Until      time.Time
	Limit      int
}

// List returns audit records matching the filter, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]culqi.Log, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, tracking_id, culqi_version, operation, url, http_code, start_date_utc, end_date_utc, request, response
		FROM culqi_logs WHERE 1=1`)
	var args []any

	if filter.Operation != "" {
		query.WriteString(" AND operation = ?")
		args = append(args, filter.Operation)
	}
	if filter.TrackingID != "" {
		query.WriteString(" AND tracking_id = ?")
		args = append(args, filter.TrackingID)
	}
	if filter.HTTPCode != 0 {
		query.WriteString(" AND http_code = ?")
		args = append(args, filter.HTTPCode)
	}
	if !filter.Since.IsZero() {
		query.WriteString(" AND start_date_utc >= ?")
		args = append(args, filter.Since.UTC())
	}
	if !filter.Until.IsZero() {
		query.WriteString(" AND start_date_utc <= ?")
		args = append(args, filter.Until.UTC())
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	query.WriteString(" ORDER BY start_date_utc DESC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var logs []culqi.Log
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// Get returns one audit record by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*culqi.Log, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, tracking_id, culqi_version, operation, url, http_code, start_date_utc, end_date_utc, request, response
		FROM culqi_logs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	entry, err := scanLog(rows)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanLog(rows *sql.Rows) (culqi.Log, error) {
	var (
		entry     culqi.Log
		operation string
		httpCode  sql.NullInt64
		request   sql.NullString
		response  string
	)
	err := rows.Scan(&entry.ID, &entry.TrackingID, &entry.APIVersion, &operation, &entry.URL,
		&httpCode, &entry.StartedAt, &entry.EndedAt, &request, &response)
	if err != nil {
		return culqi.Log{}, fmt.Errorf("failed to scan audit record: %w", err)
	}
	entry.Operation = culqi.Operation(operation)
	entry.HTTPCode = int(httpCode.Int64)
	if request.Valid {
		entry.Request = []byte(request.String)
	}
	entry.Response = []byte(response)
	return entry, nil
}
