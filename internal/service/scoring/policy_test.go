package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/influroi/internal/domain/scoring"
)

func TestPercentileGrade(t *testing.T) {
	want := []scoring.Grade{
		scoring.GradeS, scoring.GradeS,
		scoring.GradeA, scoring.GradeA,
		scoring.GradeB, scoring.GradeB,
		scoring.GradeC, scoring.GradeC,
		scoring.GradeD, scoring.GradeD,
	}
	for rank, g := range want {
		assert.Equal(t, g, PercentileGrade(rank, 10), "rank %d", rank)
	}

	// 단독 후보는 (0+1)/1 = 100% 이므로 최하위 구간
	assert.Equal(t, scoring.GradeD, PercentileGrade(0, 1))
	assert.Equal(t, scoring.GradeD, PercentileGrade(0, 0))
	// 3명: 33% → A, 67% → C, 100% → D
	assert.Equal(t, scoring.GradeA, PercentileGrade(0, 3))
	assert.Equal(t, scoring.GradeC, PercentileGrade(1, 3))
	assert.Equal(t, scoring.GradeD, PercentileGrade(2, 3))
}

func TestPercentileBucketPolicy(t *testing.T) {
	t.Run("scores are kept", func(t *testing.T) {
		got := PercentileBucketPolicy{}.Apply(cohort(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
		require.Len(t, got, 10)
		assert.Equal(t, 100.0, got[0].FinalScore)
		assert.Equal(t, scoring.GradeS, got[0].Grade)
		assert.Equal(t, scoring.GradeD, got[9].Grade)
	})

	t.Run("ties share the best rank", func(t *testing.T) {
		got := PercentileBucketPolicy{}.Apply(cohort(90, 80, 80, 80, 70))
		// 순위 1 → S(20%), 80점 3명은 순위 2(40%) → A
		assert.Equal(t, scoring.GradeS, got[0].Grade)
		for _, e := range got[1:4] {
			assert.Equal(t, scoring.GradeA, e.Grade)
		}
		assert.Equal(t, scoring.GradeD, got[4].Grade)
	})
}

func TestAbsolutePolicy(t *testing.T) {
	got := AbsolutePolicy{}.Apply(cohort(59.99, 90, 80))
	assert.Equal(t, scoring.GradeS, got[0].Grade)
	assert.Equal(t, scoring.GradeA, got[1].Grade)
	assert.Equal(t, scoring.GradeD, got[2].Grade)
	assert.Equal(t, 59.99, got[2].FinalScore)
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", "curve", " CURVE "} {
		p, err := PolicyByName(name)
		require.NoError(t, err)
		assert.Equal(t, PolicyCurve, p.Name())
	}

	p, err := PolicyByName("percentile")
	require.NoError(t, err)
	assert.Equal(t, PolicyPercentile, p.Name())

	p, err = PolicyByName("absolute")
	require.NoError(t, err)
	assert.Equal(t, PolicyAbsolute, p.Name())

	_, err = PolicyByName("zscore")
	assert.ErrorIs(t, err, scoring.ErrUnknownPolicy)

	assert.Len(t, PolicyNames(), 3)
}
