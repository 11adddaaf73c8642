package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/pkg/metrics"
)

// slowRequestThreshold 이 시간을 넘으면 WARN
const slowRequestThreshold = 2 * time.Second

// LoggingConfig 접근 로그 설정
type LoggingConfig struct {
	AccessLogger *zerolog.Logger // nil 이면 전역 로거
	SkipPaths    []string        // 로그 생략 (/health, /metrics)
}

// Logging 요청/응답 로그 + HTTP 메트릭
func Logging(cfg LoggingConfig) gin.HandlerFunc {
	logger := log.Logger
	if cfg.AccessLogger != nil {
		logger = *cfg.AccessLogger
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), status, duration.Seconds())

		if skip[c.Request.URL.Path] {
			return
		}

		requestID := GetRequestID(c)

		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}

		event = event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Int64("duration_ms", duration.Milliseconds()).
			Int("response_size", c.Writer.Size()).
			Str("ip", c.ClientIP())
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}
		event.Msg("Request completed")

		if duration > slowRequestThreshold {
			log.Warn().
				Str("request_id", requestID).
				Str("method", c.Request.Method).
				Str("path", path).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("Slow request")
		}
	}
}

// Recovery panic 을 500 응답으로 바꾼다
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				requestID := GetRequestID(c)

				log.Error().
					Str("request_id", requestID).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", p).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":       "INTERNAL_SERVER_ERROR",
						"message":    "Internal server error",
						"request_id": requestID,
					},
				})
			}
		}()

		c.Next()
	}
}
