package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/response"
	"github.com/wonny/influroi/internal/infra/database/postgres"
)

// DatabaseHealth DB 상태 조회 (postgres.Pool)
type DatabaseHealth interface {
	Health(ctx context.Context) *postgres.HealthStatus
}

// Pinger 선택 의존성 (Redis 랭킹 캐시)
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler /health 계열
type HealthHandler struct {
	db        DatabaseHealth
	cache     Pinger // nil 이면 검사 생략
	startTime time.Time
	version   string
}

// NewHealthHandler 생성. cache 는 nil 가능
func NewHealthHandler(db DatabaseHealth, cache Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		startTime: time.Now(),
		version:   version,
	}
}

// ReadyResponse readiness 응답
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// DetailedHealthResponse 상세 상태
type DetailedHealthResponse struct {
	Status        string                 `json:"status"`
	Version       string                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Timestamp     time.Time              `json:"timestamp"`
	Database      *postgres.HealthStatus `json:"database"`
	Cache         string                 `json:"cache"`
}

// Health GET /health (liveness)
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// Ready GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := make(map[string]string)
	ready := true
	message := ""

	if db := h.db.Health(ctx); db.Status == postgres.StatusUnhealthy {
		checks["database"] = "error"
		ready = false
		message = "Database connection failed"
	} else {
		checks["database"] = "ok"
	}

	// 캐시 장애는 읽기 경로가 DB 로 우회하므로 ready 를 깨지 않는다
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "error"
		} else {
			checks["cache"] = "ok"
		}
	}

	resp := ReadyResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Checks:    checks,
		Message:   message,
	}
	status := http.StatusOK
	if !ready {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}

// Detailed GET /api/health/detailed
func (h *HealthHandler) Detailed(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.db.Health(ctx)

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
		}
	}

	response.Success(c, DetailedHealthResponse{
		Status:        db.Status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now(),
		Database:      db,
		Cache:         cacheStatus,
	})
}
