package analysis

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// ROIEstimator 구독자 수, 참여율 기반 ROI 추정
type ROIEstimator struct{}

// NewROIEstimator 생성
func NewROIEstimator() *ROIEstimator {
	return &ROIEstimator{}
}

// defaultEngagementRate 참여율 정보가 없을 때
const defaultEngagementRate = 1.0

// EstimateROI 점수 = 참여율(0-60) + 조회/구독 비율(0-25) + 구독자 규모(0-15)
func (e *ROIEstimator) EstimateROI(_ context.Context, candidate *scoring.Influencer) (*scoring.ROIEstimate, error) {
	subs := candidate.SubscriberCount
	if subs < 0 {
		subs = 0
	}

	engagement := candidate.EngagementRate
	if engagement <= 0 {
		engagement = defaultEngagementRate
	}

	views := EstimatedViews(subs)
	costPer10k := CostPer10kSubscribers(subs)

	// (구독자 / 1만) * 1만명당 단가(만원) * 1만 = 원
	costWon := decimal.NewFromInt(subs).
		Div(tenThousand).
		Mul(decimal.NewFromInt(costPer10k)).
		Mul(tenThousand)

	viewRatio := float64(views) / float64(max64(subs, 1))

	engagementScore := EngagementTierScore(engagement)
	viewRatioScore := ViewRatioTierScore(viewRatio)
	subscriberScore := SubscriberTierScore(subs)

	return &scoring.ROIEstimate{
		Score:               engagementScore + viewRatioScore + subscriberScore,
		EstimatedViews:      views,
		EstimatedEngagement: math.Round(math.Min(engagement*1.1, 10.0)*100) / 100,
		EstimatedCost:       FormatCost(costWon),
		EstimatedCostWon:    costWon.IntPart(),
		CostPer10kSubs:      float64(costPer10k),
		EngagementScore:     engagementScore,
		ViewRatioScore:      viewRatioScore,
		SubscriberScore:     subscriberScore,
	}, nil
}

// EstimatedViews 구독자 규모별 예상 조회수 (15/20/25/30%)
func EstimatedViews(subs int64) int64 {
	var ratio float64
	switch {
	case subs > 1_000_000:
		ratio = 0.15
	case subs > 100_000:
		ratio = 0.20
	case subs > 10_000:
		ratio = 0.25
	default:
		ratio = 0.30
	}
	return int64(float64(subs) * ratio)
}

// CostPer10kSubscribers 구독자 1만명당 협찬비 (만원)
func CostPer10kSubscribers(subs int64) int64 {
	switch {
	case subs < 10_000:
		return 5
	case subs < 100_000:
		return 8
	case subs < 1_000_000:
		return 12
	default:
		return 20
	}
}

// EngagementTierScore 참여율 구간 점수 (0-60). 관측 범위 약 1% ~ 5000%
func EngagementTierScore(rate float64) float64 {
	tiers := []struct {
		above float64
		score float64
	}{
		{1000, 60},
		{500, 55},
		{200, 50},
		{100, 45},
		{50, 40},
		{20, 30},
		{10, 20},
		{5, 10},
	}
	for _, t := range tiers {
		if rate > t.above {
			return t.score
		}
	}
	return 0
}

// ViewRatioTierScore 조회수/구독자 비율 점수 (0-25)
func ViewRatioTierScore(ratio float64) float64 {
	switch {
	case ratio > 1.0:
		return 25
	case ratio > 0.5:
		return 20
	case ratio > 0.2:
		return 15
	case ratio > 0.1:
		return 10
	default:
		return 0
	}
}

// SubscriberTierScore 구독자 규모 점수 (0-15)
func SubscriberTierScore(subs int64) float64 {
	switch {
	case subs >= 1_000_000:
		return 15
	case subs >= 100_000:
		return 10
	case subs >= 10_000:
		return 5
	default:
		return 0
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
