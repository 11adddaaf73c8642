package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// ResultRepository PostgreSQL 채점 결과 저장소
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository 결과 저장소 생성
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// SaveBatch 프로젝트 결과 교체 (기존 결과 삭제 후 저장, 단일 트랜잭션)
func (r *ResultRepository) SaveBatch(ctx context.Context, projectID string, results []*scoring.ScoreResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM project_result WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete old results: %w", err)
	}

	insertQuery := `
		INSERT INTO project_result (
			project_id, channel_id, roi_score, roi_grade, recommendation,
			brand_weight, sentiment_weight, roi_weight,
			brand_score, sentiment_score, roi_metric_score,
			fallback, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11,
			$12, $13
		)
	`

	batch := &pgx.Batch{}
	for _, res := range results {
		batch.Queue(insertQuery,
			projectID, res.ChannelID, res.Score, string(res.Grade), res.Recommendation,
			res.Weights.BrandWeight, res.Weights.SentimentWeight, res.Weights.ROIWeight,
			res.Metrics.Brand, res.Metrics.Sentiment, res.Metrics.ROI,
			res.Fallback, res.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range results {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert result: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Debug().
		Str("project_id", projectID).
		Int("count", len(results)).
		Msg("Saved project results")

	return nil
}

// ListByProject 프로젝트 결과 (channel_id 순)
func (r *ResultRepository) ListByProject(ctx context.Context, projectID string) ([]*scoring.ScoreResult, error) {
	query := `
		SELECT id, project_id, channel_id, roi_score, roi_grade, COALESCE(recommendation, ''),
		       brand_weight, sentiment_weight, roi_weight,
		       brand_score, sentiment_score, roi_metric_score,
		       fallback, created_at
		FROM project_result
		WHERE project_id = $1
		ORDER BY channel_id
	`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []*scoring.ScoreResult
	for rows.Next() {
		var res scoring.ScoreResult
		var grade string
		if err := rows.Scan(
			&res.ID, &res.ProjectID, &res.ChannelID, &res.Score, &grade, &res.Recommendation,
			&res.Weights.BrandWeight, &res.Weights.SentimentWeight, &res.Weights.ROIWeight,
			&res.Metrics.Brand, &res.Metrics.Sentiment, &res.Metrics.ROI,
			&res.Fallback, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Grade = scoring.Grade(grade)
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}

var _ scoring.ResultRepository = (*ResultRepository)(nil)
