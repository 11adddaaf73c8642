package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/influroi/internal/domain/scoring"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"project", fmt.Errorf("get: %w", scoring.ErrProjectNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"channel", scoring.ErrCandidateNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"running", scoring.ErrScoringInProgress, http.StatusConflict, ErrCodeScoringInProgress},
		{"policy", scoring.ErrUnknownPolicy, http.StatusBadRequest, ErrCodeInvalidParameter},
		{"invalid", scoring.ErrInvalidProject, http.StatusBadRequest, ErrCodeInvalidParameter},
		{"sort", scoring.ErrUnknownSortOrder, http.StatusBadRequest, ErrCodeInvalidParameter},
		{"compare", scoring.ErrNoComparableChannels, http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError, ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Accepted(c, gin.H{"project_id": "p1"}, "scoring started")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"project_id":"p1"`)
	assert.Contains(t, w.Body.String(), "scoring started")
}
