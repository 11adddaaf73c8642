package scoring

import (
	"fmt"
	"strings"

	"github.com/wonny/influroi/internal/domain/scoring"
)

// 정책 이름
const (
	PolicyCurve      = "curve"
	PolicyPercentile = "percentile"
	PolicyAbsolute   = "absolute"
)

// GradingPolicy 코호트 등급 정책.
// 결과는 최종 점수 내림차순(순위순)으로 정렬되어 있다.
type GradingPolicy interface {
	Name() string
	Apply(entries []CohortEntry) []RankedEntry
}

// CurvePolicy 코사인 곡선 재분배 후 절대 임계값 등급
type CurvePolicy struct{}

func (CurvePolicy) Name() string { return PolicyCurve }

func (CurvePolicy) Apply(entries []CohortEntry) []RankedEntry {
	return Redistribute(entries)
}

// PercentileBucketPolicy 순위 백분위 5분위 등급. 점수는 원시 값을 유지한다
type PercentileBucketPolicy struct{}

func (PercentileBucketPolicy) Name() string { return PolicyPercentile }

func (PercentileBucketPolicy) Apply(entries []CohortEntry) []RankedEntry {
	sorted := sortByRawScore(entries)
	n := len(sorted)
	ranked := make([]RankedEntry, n)

	// 동점은 가장 앞선 순위를 공유한다
	tieRank := 0
	for r, e := range sorted {
		if r > 0 && e.RawScore != sorted[r-1].RawScore {
			tieRank = r
		}
		ranked[r] = RankedEntry{
			ChannelID:  e.ChannelID,
			RawScore:   e.RawScore,
			Rank:       r,
			Percentile: percentileOf(r, n),
			FinalScore: e.RawScore,
			Grade:      PercentileGrade(tieRank, n),
		}
	}

	return ranked
}

// AbsolutePolicy 원시 점수 그대로 절대 임계값 등급
type AbsolutePolicy struct{}

func (AbsolutePolicy) Name() string { return PolicyAbsolute }

func (AbsolutePolicy) Apply(entries []CohortEntry) []RankedEntry {
	sorted := sortByRawScore(entries)
	n := len(sorted)
	ranked := make([]RankedEntry, n)

	for r, e := range sorted {
		ranked[r] = RankedEntry{
			ChannelID:  e.ChannelID,
			RawScore:   e.RawScore,
			Rank:       r,
			Percentile: percentileOf(r, n),
			FinalScore: e.RawScore,
			Grade:      scoring.GradeOf(e.RawScore),
		}
	}

	return ranked
}

// PercentileGrade 0-based 순위의 5분위 등급.
// 상위 20% S, 21-40% A, 41-60% B, 61-80% C, 나머지 D
func PercentileGrade(rank, n int) scoring.Grade {
	if n <= 0 {
		return scoring.GradeD
	}
	// (rank+1)/n*100 <= 20*k 를 정수로 비교
	pos := (rank + 1) * 100
	switch {
	case pos <= 20*n:
		return scoring.GradeS
	case pos <= 40*n:
		return scoring.GradeA
	case pos <= 60*n:
		return scoring.GradeB
	case pos <= 80*n:
		return scoring.GradeC
	default:
		return scoring.GradeD
	}
}

func percentileOf(rank, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(rank) / float64(n-1)
}

// PolicyByName 이름으로 정책 선택. 빈 이름은 curve
func PolicyByName(name string) (GradingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyCurve:
		return CurvePolicy{}, nil
	case PolicyPercentile:
		return PercentileBucketPolicy{}, nil
	case PolicyAbsolute:
		return AbsolutePolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownPolicy, name)
	}
}

// PolicyNames 지원하는 정책 이름 목록
func PolicyNames() []string {
	return []string{PolicyCurve, PolicyPercentile, PolicyAbsolute}
}
