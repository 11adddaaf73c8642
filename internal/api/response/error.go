package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/api/middleware"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// ErrorResponse 에러 응답 봉투
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 에러 상세
type ErrorDetail struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Details   string       `json:"details,omitempty"`
	RequestID string       `json:"request_id"`
	Timestamp time.Time    `json:"timestamp"`
	Fields    []FieldError `json:"fields,omitempty"`
}

// FieldError 필드 단위 검증 오류
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInternalServer    = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidParameter  = "INVALID_PARAMETER"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeScoringInProgress = "SCORING_IN_PROGRESS"
	ErrCodeUnprocessable     = "UNPROCESSABLE"
)

// Error 에러 응답 전송
func Error(c *gin.Context, statusCode int, code, message string) {
	ErrorWithDetails(c, statusCode, code, message, "")
}

// ErrorWithDetails details 포함 에러 응답
func ErrorWithDetails(c *gin.Context, statusCode int, code, message, details string) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
		},
	}

	event := log.Warn()
	if statusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("request_id", resp.Error.RequestID).
		Str("error_code", code).
		Str("message", message).
		Str("details", details).
		Int("status", statusCode).
		Msg("API error response")

	c.JSON(statusCode, resp)
}

// ValidationError 필드 오류 목록과 함께 400
func ValidationError(c *gin.Context, fields []FieldError) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:      ErrCodeValidation,
			Message:   "Request validation failed",
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
			Fields:    fields,
		},
	}

	log.Warn().
		Str("request_id", resp.Error.RequestID).
		Int("field_count", len(fields)).
		Msg("Validation error")

	c.JSON(http.StatusBadRequest, resp)
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, code, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500. 원인은 details 로만 노출
func InternalError(c *gin.Context, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	ErrorWithDetails(c, http.StatusInternalServerError, ErrCodeInternalServer, "An unexpected error occurred", details)
}

// FromError 도메인 에러를 HTTP 상태/코드로 변환
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scoring.ErrProjectNotFound):
		NotFound(c, "Project not found")
	case errors.Is(err, scoring.ErrCandidateNotFound):
		NotFound(c, "Channel not found")
	case errors.Is(err, scoring.ErrScoringInProgress):
		Conflict(c, ErrCodeScoringInProgress, "Project scoring is still running")
	case errors.Is(err, scoring.ErrUnknownPolicy), errors.Is(err, scoring.ErrInvalidProject), errors.Is(err, scoring.ErrUnknownSortOrder):
		ErrorWithDetails(c, http.StatusBadRequest, ErrCodeInvalidParameter, "Invalid request", err.Error())
	case errors.Is(err, scoring.ErrNoComparableChannels):
		ErrorWithDetails(c, http.StatusUnprocessableEntity, ErrCodeUnprocessable, "No channel could be analyzed", err.Error())
	default:
		InternalError(c, err)
	}
}
