package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/influroi/internal/domain/scoring"
)

func ranking(projectID, policy string) *scoring.ProjectRanking {
	return &scoring.ProjectRanking{
		ProjectID:  projectID,
		Policy:     policy,
		TotalCount: 1,
		Youtubers: []scoring.RankedYoutuber{
			{Rank: 1, ChannelID: "UC1", TotalScore: 92, Grade: scoring.GradeS},
		},
	}
}

func TestRankingKey(t *testing.T) {
	assert.Equal(t, "influroi:ranking:p1:curve", RankingKey("p1", "curve"))
}

func TestMemoryRankingCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c := NewMemoryRankingCache(time.Minute)

		_, ok, err := c.Get(ctx, "p1", "curve")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, ranking("p1", "curve")))

		got, ok, err := c.Get(ctx, "p1", "curve")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "UC1", got.Youtubers[0].ChannelID)

		hits, misses, size := c.Stats()
		assert.Equal(t, int64(1), hits)
		assert.Equal(t, int64(1), misses)
		assert.Equal(t, 1, size)
	})

	t.Run("policies are separate entries", func(t *testing.T) {
		c := NewMemoryRankingCache(0)
		require.NoError(t, c.Set(ctx, ranking("p1", "curve")))

		_, ok, _ := c.Get(ctx, "p1", "percentile")
		assert.False(t, ok)
	})

	t.Run("invalidate drops every policy of project", func(t *testing.T) {
		c := NewMemoryRankingCache(0)
		require.NoError(t, c.Set(ctx, ranking("p1", "curve")))
		require.NoError(t, c.Set(ctx, ranking("p1", "absolute")))
		require.NoError(t, c.Set(ctx, ranking("p2", "curve")))

		require.NoError(t, c.Invalidate(ctx, "p1"))

		_, ok, _ := c.Get(ctx, "p1", "curve")
		assert.False(t, ok)
		_, ok, _ = c.Get(ctx, "p1", "absolute")
		assert.False(t, ok)
		_, ok, _ = c.Get(ctx, "p2", "curve")
		assert.True(t, ok)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		c := NewMemoryRankingCache(time.Minute)
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		require.NoError(t, c.Set(ctx, ranking("p1", "curve")))
		now = now.Add(2 * time.Minute)

		_, ok, _ := c.Get(ctx, "p1", "curve")
		assert.False(t, ok)
		_, _, size := c.Stats()
		assert.Equal(t, 0, size)
	})
}

func TestRedisRankingCache(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	ctx := context.Background()
	client, err := NewRedisClient(ctx, &redis.Options{Addr: "localhost:6379"})
	require.NoError(t, err)
	defer client.Close()

	c := NewRedisRankingCache(client, time.Minute)
	require.NoError(t, c.Set(ctx, ranking("it-p1", "curve")))

	got, ok, err := c.Get(ctx, "it-p1", "curve")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, scoring.GradeS, got.Youtubers[0].Grade)

	require.NoError(t, c.Invalidate(ctx, "it-p1"))
	_, ok, err = c.Get(ctx, "it-p1", "curve")
	require.NoError(t, err)
	assert.False(t, ok)
}
