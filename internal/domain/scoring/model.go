package scoring

import (
	"math"
	"time"
)

// Influencer 평가 대상 채널 (Candidate)
type Influencer struct {
	ChannelID       string     `json:"channel_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	SubscriberCount int64      `json:"subscriber_count"`
	ViewCount       int64      `json:"view_count"`
	VideoCount      int64      `json:"video_count"`
	ThumbnailURL    string     `json:"thumbnail_url"`
	Country         string     `json:"country"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`

	Category       string  `json:"category"`        // 자유 텍스트, 빈 값 가능
	EstimatedPrice string  `json:"estimated_price"` // 표시용 협찬 단가
	EngagementRate float64 `json:"engagement_rate"` // % (1000 초과 가능)
	AvgViews       int64   `json:"avg_views"`
}

// Video 채널 영상 (제목 샘플 + 좋아요/조회수 비율)
type Video struct {
	VideoID      string     `json:"video_id"`
	ChannelID    string     `json:"channel_id"`
	Title        string     `json:"video_title"`
	PublishedAt  *time.Time `json:"video_published_at,omitempty"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
}

// BrandTone 브랜드 톤앤매너
type BrandTone string

const (
	ToneFriendly BrandTone = "친화적"
	TonePremium  BrandTone = "프리미엄"
	ToneLuxury   BrandTone = "럭셔리"
	ToneCalm     BrandTone = "침착한"
)

// Project 브랜드 캠페인. 생성 후 삭제 외에는 변경되지 않음
type Project struct {
	ProjectID       string    `json:"project_id"`
	CompanyName     string    `json:"company_name"`
	BrandCategories string    `json:"brand_categories"` // 콤마 구분 다중 카테고리 가능
	BrandTone       BrandTone `json:"brand_tone"`
	CampaignGoal    string    `json:"campaign_goal"`
	BrandImagePath  string    `json:"brand_image_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProjectSummary 프로젝트 목록 항목
type ProjectSummary struct {
	Project
	TotalYoutubers int `json:"total_youtubers"`
}

// WeightConfig 종합 점수 가중치.
// 필드별로 [0,1] 범위지만 합이 1이 되도록 정규화하지 않는다.
type WeightConfig struct {
	BrandWeight     float64 `json:"brand_weight" koanf:"brand_weight"`
	SentimentWeight float64 `json:"sentiment_weight" koanf:"sentiment_weight"`
	ROIWeight       float64 `json:"roi_weight" koanf:"roi_weight"`
}

// DefaultWeights 분석/배치 경로 기본 가중치 (0.3/0.3/0.4)
func DefaultWeights() WeightConfig {
	return WeightConfig{
		BrandWeight:     0.3,
		SentimentWeight: 0.3,
		ROIWeight:       0.4,
	}
}

// CompareWeights 채널 비교 경로 기본 가중치 (0.4/0.3/0.3)
func CompareWeights() WeightConfig {
	return WeightConfig{
		BrandWeight:     0.4,
		SentimentWeight: 0.3,
		ROIWeight:       0.3,
	}
}

// Clamp 각 필드를 [0,1]로 자름. 합은 건드리지 않는다
func (w WeightConfig) Clamp() WeightConfig {
	return WeightConfig{
		BrandWeight:     clampUnit(w.BrandWeight),
		SentimentWeight: clampUnit(w.SentimentWeight),
		ROIWeight:       clampUnit(w.ROIWeight),
	}
}

// Sum 가중치 합
func (w WeightConfig) Sum() float64 {
	return w.BrandWeight + w.SentimentWeight + w.ROIWeight
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RawMetricSet (Project, Candidate) 별 독립 원시 점수
type RawMetricSet struct {
	Brand     float64 `json:"brand_score"`
	Sentiment float64 `json:"sentiment_score"`
	ROI       float64 `json:"roi_score"`
}

// ScoreResult 배치 결과 (프로젝트-채널 단위로 저장)
type ScoreResult struct {
	ID             int64        `json:"id"`
	ProjectID      string       `json:"project_id"`
	ChannelID      string       `json:"channel_id"`
	Score          float64      `json:"score"`
	Grade          Grade        `json:"grade"`
	Recommendation string       `json:"recommendation,omitempty"`
	Weights        WeightConfig `json:"weights_used"`
	Metrics        RawMetricSet `json:"metrics"`
	Fallback       bool         `json:"fallback"` // 채점 실패로 고정 점수 부여됨
	CreatedAt      time.Time    `json:"created_at"`
}

// Image 브랜드 이미지 또는 채널 썸네일 원본
type Image struct {
	Source      string
	ContentType string
	Data        []byte
}
