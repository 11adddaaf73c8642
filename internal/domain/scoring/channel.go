package scoring

import (
	"fmt"
	"math"
)

// ChannelOrder 채널 목록 정렬 기준
type ChannelOrder string

const (
	OrderRandom     ChannelOrder = "random"
	OrderFollowers  ChannelOrder = "followers"  // 구독자 많은 순
	OrderEngagement ChannelOrder = "engagement" // 참여율 높은 순
	OrderPrice      ChannelOrder = "price"      // 단가 낮은 순 (구독자 적은 순)
)

// ParseChannelOrder 정렬 기준 파싱. 빈 값은 followers
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch ChannelOrder(s) {
	case "":
		return OrderFollowers, nil
	case OrderRandom, OrderFollowers, OrderEngagement, OrderPrice:
		return ChannelOrder(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
	}
}

// ChannelCard 홈 화면 채널 카드
type ChannelCard struct {
	ChannelID       string  `json:"channel_id"`
	Title           string  `json:"title"`
	SubscriberCount int64   `json:"subscriber_count"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	Category        string  `json:"category"`
	EngagementRate  float64 `json:"engagement_rate"`
	EstimatedPrice  string  `json:"estimated_price"`
}

// NewChannelCard 빈 값은 표시용 기본값으로 채움
func NewChannelCard(inf *Influencer) *ChannelCard {
	card := &ChannelCard{
		ChannelID:       inf.ChannelID,
		Title:           inf.Title,
		SubscriberCount: inf.SubscriberCount,
		ThumbnailURL:    inf.ThumbnailURL,
		Category:        inf.Category,
		EngagementRate:  inf.EngagementRate,
		EstimatedPrice:  inf.EstimatedPrice,
	}
	if card.Title == "" {
		card.Title = "Unknown"
	}
	if card.Category == "" {
		card.Category = UncategorizedLabel
	}
	if card.EstimatedPrice == "" {
		card.EstimatedPrice = PriceRange(inf.SubscriberCount)
	}
	return card
}

// PriceRange 구독자 규모별 협찬 단가 구간 (표시용)
func PriceRange(subs int64) string {
	switch {
	case subs < 1_000:
		return "10-50만원"
	case subs < 10_000:
		return "50-200만원"
	case subs < 100_000:
		return "200-500만원"
	case subs < 1_000_000:
		return "500-2000만원"
	default:
		return "2000만원 이상"
	}
}

// ChannelStats GET /api/youtuber/:channel_id/stats 응답
type ChannelStats struct {
	ChannelID      string            `json:"channel_id"`
	BasicStats     ChannelBasicStats `json:"basic_stats"`
	ROIMetrics     ChannelROIMetrics `json:"roi_metrics"`
	EstimatedPrice string            `json:"estimated_price"`
	Category       string            `json:"category"`
}

// ChannelBasicStats 채널 원본 수치
type ChannelBasicStats struct {
	SubscriberCount int64   `json:"subscriber_count"`
	ViewCount       int64   `json:"view_count"`
	VideoCount      int64   `json:"video_count"`
	EngagementRate  float64 `json:"engagement_rate"`
}

// ChannelROIMetrics 파생 지표. CPM, 브랜드 안전성, 협업 이력은 고정 기본값
type ChannelROIMetrics struct {
	ViralScore       float64 `json:"viral_score"`
	AvgViews         int64   `json:"avg_views"`
	EstimatedCPM     int     `json:"estimated_cpm"`
	BrandSafetyScore int     `json:"brand_safety_score"`
	CollabHistory    int     `json:"collab_history"`
}

const (
	defaultCPM         = 1500
	defaultBrandSafety = 85
)

// NewChannelStats avg_views = 누적 조회수 / 영상 수, viral_score = 참여율 * 10
func NewChannelStats(inf *Influencer) *ChannelStats {
	var avgViews int64
	if inf.VideoCount > 0 {
		avgViews = inf.ViewCount / inf.VideoCount
	}

	return &ChannelStats{
		ChannelID: inf.ChannelID,
		BasicStats: ChannelBasicStats{
			SubscriberCount: inf.SubscriberCount,
			ViewCount:       inf.ViewCount,
			VideoCount:      inf.VideoCount,
			EngagementRate:  inf.EngagementRate,
		},
		ROIMetrics: ChannelROIMetrics{
			ViralScore:       math.Round(inf.EngagementRate*10*10) / 10,
			AvgViews:         avgViews,
			EstimatedCPM:     defaultCPM,
			BrandSafetyScore: defaultBrandSafety,
		},
		EstimatedPrice: inf.EstimatedPrice,
		Category:       inf.Category,
	}
}
