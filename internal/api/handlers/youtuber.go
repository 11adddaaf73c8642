package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/response"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// ChannelService 채널 조회
type ChannelService interface {
	Channel(ctx context.Context, channelID string) (*scoring.Influencer, error)
	ChannelVideos(ctx context.Context, channelID string, limit int) ([]*scoring.Video, error)
	ChannelStats(ctx context.Context, channelID string) (*scoring.ChannelStats, error)
}

// YoutuberHandler /api/youtuber
type YoutuberHandler struct {
	service ChannelService
}

// NewYoutuberHandler 생성
func NewYoutuberHandler(service ChannelService) *YoutuberHandler {
	return &YoutuberHandler{service: service}
}

// Profile GET /api/youtuber/:channel_id/profile
func (h *YoutuberHandler) Profile(c *gin.Context) {
	channel, err := h.service.Channel(c.Request.Context(), c.Param("channel_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, channel)
}

// Videos GET /api/youtuber/:channel_id/videos?limit=
func (h *YoutuberHandler) Videos(c *gin.Context) {
	limit, ok := queryLimit(c, "limit")
	if !ok {
		return
	}

	videos, err := h.service.ChannelVideos(c.Request.Context(), c.Param("channel_id"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if videos == nil {
		videos = []*scoring.Video{}
	}
	response.SuccessList(c, videos, len(videos))
}

// Stats GET /api/youtuber/:channel_id/stats
func (h *YoutuberHandler) Stats(c *gin.Context) {
	stats, err := h.service.ChannelStats(c.Request.Context(), c.Param("channel_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}
