package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/response"
	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

// CompareService 채널/가중치 비교
type CompareService interface {
	CompareChannels(ctx context.Context, projectID string, channelIDs []string) (*svc.ChannelComparisonResult, error)
	CompareWeights(ctx context.Context, projectID, channelID string, configs []scoring.WeightConfig) (*svc.WeightComparisonResult, error)
}

// CompareHandler /api/compare
type CompareHandler struct {
	service CompareService
}

// NewCompareHandler 생성
func NewCompareHandler(service CompareService) *CompareHandler {
	return &CompareHandler{service: service}
}

// ChannelCompareRequest 채널 비교 요청
type ChannelCompareRequest struct {
	ProjectID  string   `json:"project_id" binding:"required"`
	ChannelIDs []string `json:"channel_ids" binding:"required,min=1"`
}

// WeightInput 가중치 입력. 빠진 필드는 기본값, brand_image_weight 는 brand_weight 의 옛 이름
type WeightInput struct {
	BrandWeight      *float64 `json:"brand_weight"`
	BrandImageWeight *float64 `json:"brand_image_weight"`
	SentimentWeight  *float64 `json:"sentiment_weight"`
	ROIWeight        *float64 `json:"roi_weight"`
}

// Config WeightConfig 로 변환
func (in WeightInput) Config() scoring.WeightConfig {
	w := scoring.DefaultWeights()
	switch {
	case in.BrandWeight != nil:
		w.BrandWeight = *in.BrandWeight
	case in.BrandImageWeight != nil:
		w.BrandWeight = *in.BrandImageWeight
	}
	if in.SentimentWeight != nil {
		w.SentimentWeight = *in.SentimentWeight
	}
	if in.ROIWeight != nil {
		w.ROIWeight = *in.ROIWeight
	}
	return w
}

// WeightCompareRequest 가중치 비교 요청
type WeightCompareRequest struct {
	ProjectID     string        `json:"project_id" binding:"required"`
	ChannelID     string        `json:"channel_id" binding:"required"`
	WeightConfigs []WeightInput `json:"weight_configs" binding:"required,min=1"`
}

// Channels POST /api/compare/channels
func (h *CompareHandler) Channels(c *gin.Context) {
	var req ChannelCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body", err.Error())
		return
	}

	result, err := h.service.CompareChannels(c.Request.Context(), req.ProjectID, req.ChannelIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// Weights POST /api/compare/weights
func (h *CompareHandler) Weights(c *gin.Context) {
	var req WeightCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body", err.Error())
		return
	}

	configs := make([]scoring.WeightConfig, len(req.WeightConfigs))
	for i, in := range req.WeightConfigs {
		configs[i] = in.Config()
	}

	result, err := h.service.CompareWeights(c.Request.Context(), req.ProjectID, req.ChannelID, configs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}
