package scoring

import "time"

// RankedYoutuber 코호트 재분배 후 사용자에게 보이는 순위 항목
type RankedYoutuber struct {
	Rank            int     `json:"rank"`
	ChannelID       string  `json:"channel_id"`
	Title           string  `json:"title"`
	SubscriberCount int64   `json:"subscriber_count"`
	ThumbnailURL    string  `json:"thumbnail_url,omitempty"`
	Category        string  `json:"category"`
	EngagementRate  float64 `json:"engagement_rate"`
	EstimatedPrice  string  `json:"estimated_price"`

	RawScore       float64 `json:"raw_score"`
	TotalScore     float64 `json:"total_score"`
	Grade          Grade   `json:"grade"`
	Recommendation string  `json:"recommendation"`
	Fallback       bool    `json:"fallback,omitempty"`
}

// ProjectRanking 프로젝트 코호트 전체 순위
type ProjectRanking struct {
	ProjectID   string           `json:"project_id"`
	Policy      string           `json:"policy"`
	GeneratedAt time.Time        `json:"generated_at"`
	TotalCount  int              `json:"total_count"`
	Youtubers   []RankedYoutuber `json:"youtubers"`
	Stats       RankingStats     `json:"stats"`
}

// RankingStats 등급 분포 통계
type RankingStats struct {
	AvgRawScore       float64       `json:"avg_raw_score"`
	AvgTotalScore     float64       `json:"avg_total_score"`
	GradeDistribution map[Grade]int `json:"grade_distribution"`
	FallbackCount     int           `json:"fallback_count"`
}

// Display defaults for missing candidate metadata
const (
	UncategorizedLabel = "미분류"
	PriceOnRequest     = "가격 문의"
)
