package scoring

import (
	"math"

	"github.com/wonny/influroi/internal/domain/scoring"
)

// 원시 점수 범위
const (
	MinRawScore  = 0.0
	MaxRawScore  = 100.0
	NeutralScore = 50.0 // 범위가 붕괴되었거나 지표를 구할 수 없을 때
)

// Normalize 점수를 [min,max] 기준 0-100으로 정규화 후 경계로 자름.
// min == max 이면 중립값 50을 돌려준다.
func Normalize(score, min, max float64) float64 {
	if max == min {
		return NeutralScore
	}
	normalized := (score - min) / (max - min) * 100
	return math.Max(MinRawScore, math.Min(MaxRawScore, normalized))
}

// Combine 세 원시 점수에 가중치를 적용한 종합 점수.
// 가중치는 그대로 사용하며 합이 1이 아니어도 재정규화하지 않는다.
func Combine(brand, sentiment, roi float64, weights scoring.WeightConfig) float64 {
	return Normalize(brand, MinRawScore, MaxRawScore)*weights.BrandWeight +
		Normalize(sentiment, MinRawScore, MaxRawScore)*weights.SentimentWeight +
		Normalize(roi, MinRawScore, MaxRawScore)*weights.ROIWeight
}

// CombineSet RawMetricSet 편의 함수
func CombineSet(raw scoring.RawMetricSet, weights scoring.WeightConfig) float64 {
	return Combine(raw.Brand, raw.Sentiment, raw.ROI, weights)
}

// Total 종합 점수 + 절대 등급 + 추천 문구
func Total(raw scoring.RawMetricSet, weights scoring.WeightConfig) *scoring.TotalScore {
	total := CombineSet(raw, weights)
	grade := scoring.GradeOf(total)

	return &scoring.TotalScore{
		TotalScore:     total,
		Grade:          grade,
		Recommendation: scoring.Recommendation(grade),
		WeightsUsed:    weights,
		Breakdown:      raw,
	}
}

// Round2 소수 둘째 자리 반올림 (응답 표시용)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 소수 첫째 자리 반올림
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
