package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/response"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// BrowseService 홈 화면 채널 목록
type BrowseService interface {
	ChannelCards(ctx context.Context, order scoring.ChannelOrder, limit int) ([]*scoring.ChannelCard, error)
	PopularChannels(ctx context.Context, limit int) ([]*scoring.Influencer, error)
}

// HomeHandler /api/home
type HomeHandler struct {
	service BrowseService
}

// NewHomeHandler 생성
func NewHomeHandler(service BrowseService) *HomeHandler {
	return &HomeHandler{service: service}
}

// Youtubers GET /api/home/youtubers?limit= (무작위 순서)
func (h *HomeHandler) Youtubers(c *gin.Context) {
	h.cards(c, scoring.OrderRandom)
}

// Sorted GET /api/home/youtubers/sorted?sort_by=followers|engagement|price&limit=
func (h *HomeHandler) Sorted(c *gin.Context) {
	order, err := scoring.ParseChannelOrder(c.Query("sort_by"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.cards(c, order)
}

func (h *HomeHandler) cards(c *gin.Context, order scoring.ChannelOrder) {
	limit, ok := queryLimit(c, "limit")
	if !ok {
		return
	}

	cards, err := h.service.ChannelCards(c.Request.Context(), order, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if cards == nil {
		cards = []*scoring.ChannelCard{}
	}
	response.SuccessList(c, cards, len(cards))
}

// Popular GET /api/home/popular?top_n=
func (h *HomeHandler) Popular(c *gin.Context) {
	limit, ok := queryLimit(c, "top_n")
	if !ok {
		return
	}

	channels, err := h.service.PopularChannels(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if channels == nil {
		channels = []*scoring.Influencer{}
	}
	response.SuccessList(c, channels, len(channels))
}

// queryLimit 음이 아닌 정수 쿼리. 없으면 0 (서비스 기본값). 잘못된 값이면 400 을 쓰고 false
func queryLimit(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		response.BadRequest(c, key+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
