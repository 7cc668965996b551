package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andeslabs/culqi-gateway/culqi"
	"github.com/andeslabs/culqi-gateway/infra/logstore"
	"github.com/andeslabs/culqi-gateway/infra/response"
)

// AuditSearcher is the optional OpenSearch query surface.
type AuditSearcher interface {
	SearchByTrackingID(ctx context.Context, trackingID string) ([]culqi.Log, error)
	FailureStats(ctx context.Context, hours int) (map[string]any, error)
}

// LogsHandler serves the gateway audit records.
type LogsHandler struct {
	store    *logstore.SQLiteStore
	searcher AuditSearcher
}

// NewLogsHandler creates a new logs handler. searcher may be nil when
// OpenSearch indexing is disabled.
func NewLogsHandler(store *logstore.SQLiteStore, searcher AuditSearcher) *LogsHandler {
	return &LogsHandler{
		store:    store,
		searcher: searcher,
	}
}

// ListLogs lists audit records with filtering
func (h *LogsHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := logstore.Filter{
		Operation:  r.URL.Query().Get("operation"),
		TrackingID: r.URL.Query().Get("trackingId"),
	}

	if filter.Operation != "" && !culqi.Operation(filter.Operation).Valid() {
		response.Error(w, http.StatusBadRequest, "Unknown operation", nil)
		return
	}

	if codeStr := r.URL.Query().Get("httpCode"); codeStr != "" {
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid httpCode parameter", err)
			return
		}
		filter.HTTPCode = code
	}

	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil || hours <= 0 {
			response.Error(w, http.StatusBadRequest, "Invalid hours parameter", err)
			return
		}
		filter.Since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			response.Error(w, http.StatusBadRequest, "Invalid limit parameter", err)
			return
		}
		filter.Limit = limit
	}

	logs, err := h.store.List(ctx, filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list audit records", err)
		return
	}

	response.Success(w, http.StatusOK, "Audit records retrieved", map[string]any{
		"logs":  logs,
		"count": len(logs),
	})
}

// GetLog returns one audit record by id
func (h *LogsHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	entry, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(w, http.StatusNotFound, "Audit record not found", nil)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to load audit record", err)
		return
	}

	response.Success(w, http.StatusOK, "Audit record retrieved", entry)
}

// SearchByTrackingID returns the audit records carrying a gateway tracking id
func (h *LogsHandler) SearchByTrackingID(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		response.Error(w, http.StatusServiceUnavailable, "Search indexing is not enabled", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	trackingID := chi.URLParam(r, "trackingId")
	logs, err := h.searcher.SearchByTrackingID(ctx, trackingID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Search failed", err)
		return
	}

	response.Success(w, http.StatusOK, "Audit records retrieved", map[string]any{
		"logs":  logs,
		"count": len(logs),
	})
}

// GetStats returns per operation call and failure counts
func (h *LogsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		response.Error(w, http.StatusServiceUnavailable, "Search indexing is not enabled", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	hours := 24
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		if h, err := strconv.Atoi(hoursStr); err == nil && h > 0 {
			hours = h
		}
	}

	stats, err := h.searcher.FailureStats(ctx, hours)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to get stats", err)
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved", stats)
}
