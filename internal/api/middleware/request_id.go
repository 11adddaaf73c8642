package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wonny/influroi/internal/pkg/logger"
)

// RequestIDHeader 요청 ID 헤더
const RequestIDHeader = "X-Request-ID"

// RequestIDKey gin 컨텍스트 키
const RequestIDKey = "request_id"

// RequestID 요청마다 ID 부여. 헤더로 들어오면 그대로 사용한다.
// 요청 context 에도 심어서 pgx 쿼리 로그와 서비스 로그가 같은 ID 를 쓴다.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID gin 컨텍스트에서 요청 ID 조회
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
