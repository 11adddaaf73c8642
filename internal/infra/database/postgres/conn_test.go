package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/influroi/internal/domain/scoring"
	"github.com/wonny/influroi/internal/infra/database/postgres"
	"github.com/wonny/influroi/internal/pkg/config"
)

func TestNewPool(t *testing.T) {
	t.Skip("Integration test - requires PostgreSQL")

	ctx := context.Background()

	cfg, err := config.Load()
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	health := pool.Health(ctx)
	assert.Equal(t, postgres.StatusHealthy, health.Status)
	assert.Greater(t, health.MaxConns, int32(0))
}

func TestResultRepository_SaveBatchReplaces(t *testing.T) {
	t.Skip("Integration test - requires PostgreSQL with migrations/001_init.sql and seeded influencer rows")

	ctx := context.Background()

	cfg, err := config.Load()
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	projects := postgres.NewProjectRepository(pool.Pool)
	results := postgres.NewResultRepository(pool.Pool)
	candidates := postgres.NewInfluencerRepository(pool.Pool)

	all, err := candidates.ListAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	project := &scoring.Project{
		ProjectID:       "it-" + time.Now().Format("150405.000"),
		CompanyName:     "테스트",
		BrandCategories: "뷰티",
		BrandTone:       scoring.ToneFriendly,
		CampaignGoal:    "인지도",
		CreatedAt:       time.Now(),
	}
	require.NoError(t, projects.Create(ctx, project))
	defer projects.Delete(ctx, project.ProjectID)

	row := &scoring.ScoreResult{
		ChannelID: all[0].ChannelID,
		Score:     72.5,
		Grade:     scoring.GradeB,
		Weights:   scoring.DefaultWeights(),
		CreatedAt: time.Now(),
	}

	require.NoError(t, results.SaveBatch(ctx, project.ProjectID, []*scoring.ScoreResult{row}))
	require.NoError(t, results.SaveBatch(ctx, project.ProjectID, []*scoring.ScoreResult{row}))

	saved, err := results.ListByProject(ctx, project.ProjectID)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Equal(t, scoring.GradeB, saved[0].Grade)

	require.NoError(t, projects.Delete(ctx, project.ProjectID))
	saved, err = results.ListByProject(ctx, project.ProjectID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	_, err = projects.GetByID(ctx, project.ProjectID)
	assert.ErrorIs(t, err, scoring.ErrProjectNotFound)
}
