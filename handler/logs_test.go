package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeslabs/culqi-gateway/culqi"
	"github.com/andeslabs/culqi-gateway/infra/logstore"
	"github.com/andeslabs/culqi-gateway/infra/response"
)

func newLogsRouter(t *testing.T) (*chi.Mux, *logstore.SQLiteStore) {
	t.Helper()
	store, err := logstore.NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	h := NewLogsHandler(store, nil)
	r := chi.NewRouter()
	r.Get("/v1/logs", h.ListLogs)
	r.Get("/v1/logs/stats", h.GetStats)
	r.Get("/v1/logs/{id}", h.GetLog)
	return r, store
}

func seedLog(t *testing.T, store *logstore.SQLiteStore, op culqi.Operation, httpCode int) *culqi.Log {
	t.Helper()
	now := time.Now().UTC()
	entry := &culqi.Log{
		TrackingID: "trk_1",
		Operation:  op,
		URL:        "charges",
		HTTPCode:   httpCode,
		StartedAt:  now,
		EndedAt:    now,
		Response:   json.RawMessage(`{}`),
	}
	require.NoError(t, store.Create(context.Background(), entry))
	return entry
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListLogs(t *testing.T) {
	router, store := newLogsRouter(t)
	seedLog(t, store, culqi.OpCreateCharge, 201)
	seedLog(t, store, culqi.OpCreateRefund, 400)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["count"])
}

func TestListLogs_FilterByOperation(t *testing.T) {
	router, store := newLogsRouter(t)
	seedLog(t, store, culqi.OpCreateCharge, 201)
	seedLog(t, store, culqi.OpCreateRefund, 400)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs?operation=create_refund", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, float64(1), data["count"])
}

func TestListLogs_RejectsUnknownOperation(t *testing.T) {
	router, _ := newLogsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs?operation=bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLogs_RejectsBadLimit(t *testing.T) {
	router, _ := newLogsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs?limit=zero", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLog(t *testing.T) {
	router, store := newLogsRouter(t)
	entry := seedLog(t, store, culqi.OpCreateCharge, 201)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs/"+entry.ID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestGetLog_NotFound(t *testing.T) {
	router, _ := newLogsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs/culqilog_missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStats_WithoutSearcher(t *testing.T) {
	router, _ := newLogsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs/stats", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
