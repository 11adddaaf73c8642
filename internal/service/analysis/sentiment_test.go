package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/influroi/internal/domain/scoring"
)

type fixedClassifier struct {
	label string
	err   error
	calls int
}

func (c *fixedClassifier) Classify(_ context.Context, texts []string) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	labels := make([]string, len(texts))
	for i := range labels {
		labels[i] = c.label
	}
	return labels, nil
}

func TestAnalyzeEmpty(t *testing.T) {
	analyzer := NewSentimentAnalyzer(nil)

	got, err := analyzer.Analyze(context.Background(), nil)
	require.NoError(t, err)

	// 50 + 0.33*30 - 0.33*40
	assert.InDelta(t, 46.7, got.Score, 1e-9)
	assert.Equal(t, 0.33, got.PositiveRatio)
	assert.Equal(t, 0.33, got.NegativeRatio)
	assert.Equal(t, 0.34, got.NeutralRatio)
	assert.Equal(t, 0, got.TotalComments)

	t.Run("channel without videos", func(t *testing.T) {
		got, err := analyzer.Sentiment(context.Background(), &scoring.Influencer{ChannelID: "UC_empty"}, nil)
		require.NoError(t, err)
		assert.InDelta(t, 46.7, got.Score, 1e-9)
	})
}

func TestAdjustedSentimentScore(t *testing.T) {
	t.Run("all positive clamps at 100", func(t *testing.T) {
		assert.Equal(t, 100.0, AdjustedSentimentScore(1, 0, 0, 10))
	})

	t.Run("all negative clamps at 0", func(t *testing.T) {
		assert.Equal(t, 0.0, AdjustedSentimentScore(0, 1, 0, 5))
	})

	t.Run("all neutral", func(t *testing.T) {
		// (50*0.8+20) + 4/10
		assert.InDelta(t, 60.4, AdjustedSentimentScore(0, 0, 1, 4), 1e-9)
	})

	t.Run("comment bonus caps at 10", func(t *testing.T) {
		assert.InDelta(t, 70.0, AdjustedSentimentScore(0, 0, 1, 1000), 1e-9)
	})
}

func TestSentimentClassifierHandle(t *testing.T) {
	ctx := context.Background()
	comments := []string{"a", "b", "c", "d"}

	t.Run("external classifier used", func(t *testing.T) {
		c := &fixedClassifier{label: LabelNeutral}
		analyzer := NewSentimentAnalyzer(StaticHandle[Classifier]("fixed", c))

		got, err := analyzer.Analyze(ctx, comments)
		require.NoError(t, err)

		assert.Equal(t, 1, c.calls)
		assert.Equal(t, 1.0, got.NeutralRatio)
		assert.InDelta(t, 60.4, got.Score, 1e-9)
	})

	t.Run("classifier error falls back to dictionary", func(t *testing.T) {
		c := &fixedClassifier{err: errors.New("model offline")}
		analyzer := NewSentimentAnalyzer(StaticHandle[Classifier]("broken", c))

		got, err := analyzer.Analyze(ctx, []string{"정말 최고", "별로 최악"})
		require.NoError(t, err)

		assert.Equal(t, 0.5, got.PositiveRatio)
		assert.Equal(t, 0.5, got.NegativeRatio)
		assert.Equal(t, 2, got.TotalComments)
	})

	t.Run("init failure falls back to dictionary", func(t *testing.T) {
		h := NewHandle("unavailable", func() (Classifier, error) {
			return nil, errors.New("weights missing")
		})
		analyzer := NewSentimentAnalyzer(h)

		got, err := analyzer.Analyze(ctx, []string{"감사합니다"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.PositiveRatio)
	})
}

func TestDictionaryClassifier(t *testing.T) {
	labels, err := DictionaryClassifier{}.Classify(context.Background(), []string{
		"정말 유용한 영상이네요!",
		"별로네요",
		"잘 봤어요",
		"좋다 그런데 최악",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{LabelPositive, LabelNegative, LabelNeutral, LabelNeutral}, labels)
}

func TestProxyComments(t *testing.T) {
	t.Run("high like ratio", func(t *testing.T) {
		got := ProxyComments([]*scoring.Video{{ViewCount: 1000, LikeCount: 100}})
		assert.Equal(t, positiveSamples, got)
	})

	t.Run("low like ratio", func(t *testing.T) {
		got := ProxyComments([]*scoring.Video{{ViewCount: 10000, LikeCount: 5}})
		assert.Equal(t, negativeSamples, got)
	})

	t.Run("missing counts default to neutral", func(t *testing.T) {
		got := ProxyComments([]*scoring.Video{{}})
		assert.Equal(t, neutralSamples, got)
	})

	t.Run("no videos", func(t *testing.T) {
		assert.Empty(t, ProxyComments(nil))
	})
}

func TestSentimentFromVideos(t *testing.T) {
	analyzer := NewSentimentAnalyzer(nil)

	got, err := analyzer.Sentiment(context.Background(), &scoring.Influencer{ChannelID: "UC1"}, []*scoring.Video{
		{ViewCount: 1000, LikeCount: 100},
		{ViewCount: 1000, LikeCount: 100},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, got.TotalComments)
	assert.Greater(t, got.Score, 50.0)
}

func TestHandleInitOnce(t *testing.T) {
	calls := 0
	h := NewHandle("counter", func() (int, error) {
		calls++
		return 42, nil
	})

	for i := 0; i < 3; i++ {
		v, err := h.Get()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	var missing *Handle[int]
	_, err := missing.Get()
	assert.Error(t, err)
}
