package scoring

import (
	"math"
	"sort"

	"github.com/wonny/influroi/internal/domain/scoring"
)

// 재분배 출력 대역
const (
	CurveMinScore = 53.0
	CurveMaxScore = 92.0
)

// CohortEntry 코호트 한 명의 원시 종합 점수
type CohortEntry struct {
	ChannelID string
	RawScore  float64
}

// RankedEntry 정책 적용 결과
type RankedEntry struct {
	ChannelID  string
	RawScore   float64
	Rank       int     // 0-based
	Percentile float64 // 0 = 최상위, 1 = 최하위
	FinalScore float64
	Grade      scoring.Grade
}

// CurveFactor 백분위 → 코사인 보간 가중치. 0에서 1, 0.5에서 0.5, 1에서 0
func CurveFactor(percentile float64) float64 {
	return (math.Cos(percentile*math.Pi) + 1) / 2
}

// Redistribute 코호트 전체를 순위 기준으로 [53,92] 대역에 재배치하고
// 재배치된 점수로 절대 등급을 다시 매긴다.
// 반드시 전체 코호트로 호출해야 한다. 부분 코호트는 모든 값을 바꾼다.
func Redistribute(entries []CohortEntry) []RankedEntry {
	sorted := sortByRawScore(entries)
	n := len(sorted)

	denom := n - 1
	if denom < 1 {
		denom = 1
	}

	ranked := make([]RankedEntry, n)
	for r, e := range sorted {
		percentile := float64(r) / float64(denom)
		final := CurveMinScore + CurveFactor(percentile)*(CurveMaxScore-CurveMinScore)

		ranked[r] = RankedEntry{
			ChannelID:  e.ChannelID,
			RawScore:   e.RawScore,
			Rank:       r,
			Percentile: percentile,
			FinalScore: final,
			Grade:      scoring.GradeOf(final),
		}
	}

	return ranked
}

// sortByRawScore 내림차순 안정 정렬 복사본. 동점은 입력 순서 유지, NaN은 맨 뒤
func sortByRawScore(entries []CohortEntry) []CohortEntry {
	sorted := make([]CohortEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].RawScore, sorted[j].RawScore
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})

	return sorted
}
