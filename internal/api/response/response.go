package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/middleware"
)

// SuccessResponse 성공 응답 봉투
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// Meta 응답 메타데이터
type Meta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Count     int       `json:"count,omitempty"`
}

func meta(c *gin.Context) Meta {
	return Meta{
		RequestID: middleware.GetRequestID(c),
		Timestamp: time.Now(),
	}
}

// Success 200 + data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: meta(c)})
}

// SuccessWithMessage 200 + data + message
func SuccessWithMessage(c *gin.Context, data interface{}, message string) {
	m := meta(c)
	m.Message = message
	c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: m})
}

// SuccessList 200 + 목록 + count
func SuccessList(c *gin.Context, data interface{}, count int) {
	m := meta(c)
	m.Count = count
	c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: m})
}

// Accepted 202. 백그라운드 작업이 시작됐음을 알린다
func Accepted(c *gin.Context, data interface{}, message string) {
	m := meta(c)
	m.Message = message
	c.JSON(http.StatusAccepted, SuccessResponse{Data: data, Meta: m})
}
