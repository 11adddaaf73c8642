package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// ProjectRepository PostgreSQL 프로젝트 저장소
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository 프로젝트 저장소 생성
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create 프로젝트 등록
func (r *ProjectRepository) Create(ctx context.Context, p *scoring.Project) error {
	query := `
		INSERT INTO project (
			project_id, company_name, brand_categories, brand_tone,
			campaign_goal, brand_image_path, created_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ProjectID, p.CompanyName, p.BrandCategories, string(p.BrandTone),
		p.CampaignGoal, p.BrandImagePath, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	log.Debug().Str("project_id", p.ProjectID).Msg("Project created")
	return nil
}

// GetByID 프로젝트 조회
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*scoring.Project, error) {
	query := `
		SELECT project_id, company_name, brand_categories, brand_tone,
		       campaign_goal, COALESCE(brand_image_path, ''), created_at
		FROM project
		WHERE project_id = $1
	`

	var p scoring.Project
	var tone string
	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&p.ProjectID, &p.CompanyName, &p.BrandCategories, &tone,
		&p.CampaignGoal, &p.BrandImagePath, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, scoring.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("query project: %w", err)
	}
	p.BrandTone = scoring.BrandTone(tone)

	return &p, nil
}

// List 최신순 프로젝트 목록 (결과 수 포함)
func (r *ProjectRepository) List(ctx context.Context) ([]*scoring.ProjectSummary, error) {
	query := `
		SELECT p.project_id, p.company_name, p.brand_categories, p.brand_tone,
		       p.campaign_goal, COALESCE(p.brand_image_path, ''), p.created_at,
		       COUNT(r.id)
		FROM project p
		LEFT JOIN project_result r ON r.project_id = p.project_id
		GROUP BY p.project_id
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []*scoring.ProjectSummary
	for rows.Next() {
		var s scoring.ProjectSummary
		var tone string
		if err := rows.Scan(
			&s.ProjectID, &s.CompanyName, &s.BrandCategories, &tone,
			&s.CampaignGoal, &s.BrandImagePath, &s.CreatedAt,
			&s.TotalYoutubers,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		s.BrandTone = scoring.BrandTone(tone)
		projects = append(projects, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Delete 프로젝트 삭제. 결과 행은 FK cascade 로 함께 삭제됨
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM project WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, scoring.ErrProjectNotFound)
	}

	log.Info().Str("project_id", projectID).Msg("Project deleted")
	return nil
}

var _ scoring.ProjectRepository = (*ProjectRepository)(nil)
