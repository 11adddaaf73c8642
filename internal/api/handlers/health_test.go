package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/wonny/influroi/internal/infra/database/postgres"
)

type stubDB struct{ status string }

func (s stubDB) Health(context.Context) *postgres.HealthStatus {
	return &postgres.HealthStatus{Status: s.status}
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	serve := func(h *HealthHandler) *httptest.ResponseRecorder {
		engine := gin.New()
		engine.GET("/health/ready", h.Ready)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		return w
	}

	t.Run("ready without cache", func(t *testing.T) {
		w := serve(NewHealthHandler(stubDB{postgres.StatusHealthy}, nil, "test"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "cache")
	})

	t.Run("degraded pool is still ready", func(t *testing.T) {
		w := serve(NewHealthHandler(stubDB{postgres.StatusDegraded}, nil, "test"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cache failure does not fail readiness", func(t *testing.T) {
		w := serve(NewHealthHandler(stubDB{postgres.StatusHealthy}, stubPinger{errors.New("down")}, "test"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cache":"error"`)
	})

	t.Run("database down", func(t *testing.T) {
		w := serve(NewHealthHandler(stubDB{postgres.StatusUnhealthy}, nil, "test"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "not_ready")
	})
}
