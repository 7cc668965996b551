package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/andeslabs/culqi-gateway/culqi"
	"github.com/andeslabs/culqi-gateway/infra/config"
	"github.com/andeslabs/culqi-gateway/infra/response"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db        *sql.DB
	client    *culqi.Client
	startTime time.Time
}

// HealthStatus represents overall system health
type HealthStatus struct {
	Status      string          `json:"status"`
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Uptime      string          `json:"uptime"`
	Environment string          `json:"environment"`
	Database    *DatabaseHealth `json:"database"`
	Gateway     *GatewayHealth  `json:"gateway"`
	System      *SystemHealth   `json:"system"`
}

// DatabaseHealth represents audit database health status
type DatabaseHealth struct {
	Status       string        `json:"status"`
	Connected    bool          `json:"connected"`
	ResponseTime time.Duration `json:"response_time_ms"`
	OpenConns    int           `json:"open_connections"`
	Error        string        `json:"error,omitempty"`
}

// GatewayHealth reports the configured gateway client state. No network
// probe runs here; the upstream has no unauthenticated health endpoint.
type GatewayHealth struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
	TestMode   bool   `json:"test_mode"`
}

// SystemHealth represents system resource health
type SystemHealth struct {
	Memory     *MemoryHealth `json:"memory"`
	GoRoutines int           `json:"goroutines"`
}

// MemoryHealth represents memory usage
type MemoryHealth struct {
	Alloc      string `json:"alloc"`
	TotalAlloc string `json:"total_alloc"`
	Sys        string `json:"sys"`
	GCRuns     uint32 `json:"gc_runs"`
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, client *culqi.Client) *HealthHandler {
	return &HealthHandler{
		db:        db,
		client:    client,
		startTime: time.Now(),
	}
}

// CheckHealth performs the health checks
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	health := &HealthStatus{
		Version:     "1.0.0",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.startTime).String(),
		Environment: config.GetEnv("APP_ENV", "development"),
		Database:    h.checkDatabaseHealth(ctx),
		Gateway:     h.checkGatewayHealth(),
		System:      h.checkSystemHealth(),
	}

	health.Status = h.determineOverallStatus(health)

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	_ = response.WriteJSON(w, statusCode, response.Response{
		Success: health.Status != "unhealthy",
		Message: fmt.Sprintf("Service is %s", health.Status),
		Data:    health,
	})
}

// checkDatabaseHealth checks the SQLite audit database
func (h *HealthHandler) checkDatabaseHealth(ctx context.Context) *DatabaseHealth {
	dbHealth := &DatabaseHealth{
		Status:    "unknown",
		Connected: false,
	}

	if h.db == nil {
		dbHealth.Status = "not_configured"
		dbHealth.Error = "Database not configured"
		return dbHealth
	}

	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		dbHealth.Status = "unhealthy"
		dbHealth.Error = err.Error()
		dbHealth.ResponseTime = time.Since(start)
		return dbHealth
	}

	dbHealth.Connected = true
	dbHealth.ResponseTime = time.Since(start)
	dbHealth.OpenConns = h.db.Stats().OpenConnections

	if dbHealth.ResponseTime > 1*time.Second {
		dbHealth.Status = "degraded"
	} else {
		dbHealth.Status = "healthy"
	}

	return dbHealth
}

// checkGatewayHealth reports the gateway client configuration
func (h *HealthHandler) checkGatewayHealth() *GatewayHealth {
	health := &GatewayHealth{}

	if h.client == nil {
		health.Status = "not_configured"
		return health
	}

	health.Configured = true
	health.TestMode = h.client.IsTestEnv()
	health.Status = "healthy"
	return health
}

// checkSystemHealth checks system resource health
func (h *HealthHandler) checkSystemHealth() *SystemHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &SystemHealth{
		Memory: &MemoryHealth{
			Alloc:      formatBytes(memStats.Alloc),
			TotalAlloc: formatBytes(memStats.TotalAlloc),
			Sys:        formatBytes(memStats.Sys),
			GCRuns:     memStats.NumGC,
		},
		GoRoutines: runtime.NumGoroutine(),
	}
}

// determineOverallStatus determines overall system status
func (h *HealthHandler) determineOverallStatus(health *HealthStatus) string {
	if health.Gateway == nil || !health.Gateway.Configured {
		return "unhealthy"
	}
	if health.Database != nil && health.Database.Status == "unhealthy" {
		return "unhealthy"
	}
	if health.Database != nil && health.Database.Status == "degraded" {
		return "degraded"
	}
	return "healthy"
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
