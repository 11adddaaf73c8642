package scoring

// BrandScore 브랜드 적합도 결과
type BrandScore struct {
	Score   float64      `json:"score"`
	Details BrandDetails `json:"details"`
}

// BrandDetails 브랜드 적합도 분해
type BrandDetails struct {
	ImageSimilarity   float64 `json:"image_similarity"`
	TextCompatibility float64 `json:"text_compatibility"`
	MatchBonus        float64 `json:"match_bonus"`
	Penalty           float64 `json:"penalty"`
	BrandCategory     string  `json:"brand_category"`
	AnalysisMethod    string  `json:"analysis_method"`

	ThumbnailsAnalyzed int  `json:"thumbnails_analyzed"`
	TitlesAnalyzed     int  `json:"titles_analyzed"`
	HasBrandImage      bool `json:"has_brand_image"`
}

// SentimentScore 감성 분석 결과
type SentimentScore struct {
	Score         float64 `json:"score"`
	PositiveRatio float64 `json:"positive_ratio"`
	NegativeRatio float64 `json:"negative_ratio"`
	NeutralRatio  float64 `json:"neutral_ratio"`
	TotalComments int     `json:"total_comments"`
}

// ROIEstimate ROI 추정 결과
type ROIEstimate struct {
	Score               float64 `json:"score"`
	EstimatedViews      int64   `json:"estimated_views"`
	EstimatedEngagement float64 `json:"estimated_engagement"`
	EstimatedCost       string  `json:"estimated_cost"`
	EstimatedCostWon    int64   `json:"estimated_cost_won"`
	CostPer10kSubs      float64 `json:"cpm"` // 구독자 1만명당 협찬비 (만원)

	// 점수 분해
	EngagementScore float64 `json:"engagement_score"`
	ViewRatioScore  float64 `json:"view_ratio_score"`
	SubscriberScore float64 `json:"subscriber_score"`
}

// TotalScore 단일 채널 종합 점수 (코호트 재분배 전)
type TotalScore struct {
	TotalScore     float64      `json:"total_score"`
	Grade          Grade        `json:"grade"`
	Recommendation string       `json:"recommendation"`
	WeightsUsed    WeightConfig `json:"weights_used"`
	Breakdown      RawMetricSet `json:"score_breakdown"`
	Defaulted      []string     `json:"defaulted,omitempty"` // 기본값(50)으로 대체된 지표
}
