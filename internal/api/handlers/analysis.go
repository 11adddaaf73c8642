package handlers

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/response"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// AnalysisService 단일 (프로젝트, 채널) 분석
type AnalysisService interface {
	BrandMatch(ctx context.Context, projectID, channelID string) (*scoring.BrandScore, error)
	Sentiment(ctx context.Context, projectID, channelID string) (*scoring.SentimentScore, error)
	ROIEstimate(ctx context.Context, projectID, channelID string) (*scoring.ROIEstimate, error)
	TotalScore(ctx context.Context, projectID, channelID string, weights *scoring.WeightConfig) (*scoring.TotalScore, error)
}

// AnalysisHandler /api/analysis
type AnalysisHandler struct {
	service AnalysisService
}

// NewAnalysisHandler 생성
func NewAnalysisHandler(service AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// BrandMatch GET /api/analysis/brand-match/:project_id/:channel_id
func (h *AnalysisHandler) BrandMatch(c *gin.Context) {
	result, err := h.service.BrandMatch(c.Request.Context(), c.Param("project_id"), c.Param("channel_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// Sentiment GET /api/analysis/sentiment/:project_id/:channel_id
func (h *AnalysisHandler) Sentiment(c *gin.Context) {
	result, err := h.service.Sentiment(c.Request.Context(), c.Param("project_id"), c.Param("channel_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// ROIEstimate GET /api/analysis/roi-estimate/:project_id/:channel_id
func (h *AnalysisHandler) ROIEstimate(c *gin.Context) {
	result, err := h.service.ROIEstimate(c.Request.Context(), c.Param("project_id"), c.Param("channel_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// TotalScore GET /api/analysis/total-score/:project_id/:channel_id
// 가중치 쿼리(brand_weight, sentiment_weight, roi_weight)가 없으면 기본 가중치
func (h *AnalysisHandler) TotalScore(c *gin.Context) {
	weights, err := weightsFromQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.TotalScore(c.Request.Context(), c.Param("project_id"), c.Param("channel_id"), weights)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// weightsFromQuery 하나라도 지정되면 나머지는 기본값으로 채움
func weightsFromQuery(c *gin.Context) (*scoring.WeightConfig, error) {
	w := scoring.DefaultWeights()
	set := false

	fields := []struct {
		keys []string
		dst  *float64
	}{
		{[]string{"brand_weight", "brand_image_weight"}, &w.BrandWeight},
		{[]string{"sentiment_weight"}, &w.SentimentWeight},
		{[]string{"roi_weight"}, &w.ROIWeight},
	}

	for _, f := range fields {
		for _, key := range f.keys {
			raw, ok := c.GetQuery(key)
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s must be a finite number", key)
			}
			*f.dst = v
			set = true
			break
		}
	}

	if !set {
		return nil, nil
	}
	return &w, nil
}
