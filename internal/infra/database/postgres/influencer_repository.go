package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// InfluencerRepository PostgreSQL 채널/영상 저장소 (읽기 전용)
type InfluencerRepository struct {
	pool *pgxpool.Pool
}

// NewInfluencerRepository 채널 저장소 생성
func NewInfluencerRepository(pool *pgxpool.Pool) *InfluencerRepository {
	return &InfluencerRepository{pool: pool}
}

const influencerColumns = `
	channel_id,
	COALESCE(title, ''),
	COALESCE(description, ''),
	COALESCE(subscriber_count, 0),
	COALESCE(view_count, 0),
	COALESCE(video_count, 0),
	COALESCE(thumbnail_url, ''),
	COALESCE(country, ''),
	published_at,
	COALESCE(category, ''),
	COALESCE(estimated_price, ''),
	COALESCE(engagement_rate, 0),
	COALESCE(avg_views, 0)
`

func scanInfluencer(row pgx.Row) (*scoring.Influencer, error) {
	var inf scoring.Influencer
	err := row.Scan(
		&inf.ChannelID,
		&inf.Title,
		&inf.Description,
		&inf.SubscriberCount,
		&inf.ViewCount,
		&inf.VideoCount,
		&inf.ThumbnailURL,
		&inf.Country,
		&inf.PublishedAt,
		&inf.Category,
		&inf.EstimatedPrice,
		&inf.EngagementRate,
		&inf.AvgViews,
	)
	if err != nil {
		return nil, err
	}
	return &inf, nil
}

func collectInfluencers(rows pgx.Rows) ([]*scoring.Influencer, error) {
	defer rows.Close()

	var out []*scoring.Influencer
	for rows.Next() {
		inf, err := scanInfluencer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan influencer: %w", err)
		}
		out = append(out, inf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate influencers: %w", err)
	}

	return out, nil
}

// ListAll 전체 채널 (channel_id 순)
func (r *InfluencerRepository) ListAll(ctx context.Context) ([]*scoring.Influencer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+influencerColumns+` FROM influencer ORDER BY channel_id`)
	if err != nil {
		return nil, fmt.Errorf("query influencers: %w", err)
	}
	return collectInfluencers(rows)
}

// GetByID 채널 조회
func (r *InfluencerRepository) GetByID(ctx context.Context, channelID string) (*scoring.Influencer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+influencerColumns+` FROM influencer WHERE channel_id = $1`, channelID)

	inf, err := scanInfluencer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("channel %s: %w", channelID, scoring.ErrCandidateNotFound)
		}
		return nil, fmt.Errorf("query influencer: %w", err)
	}
	return inf, nil
}

// ListVideos 최신 영상 순
func (r *InfluencerRepository) ListVideos(ctx context.Context, channelID string, limit int) ([]*scoring.Video, error) {
	query := `
		SELECT video_id, channel_id, COALESCE(video_title, ''), video_published_at,
		       COALESCE(view_count, 0), COALESCE(like_count, 0), COALESCE(comment_count, 0)
		FROM video
		WHERE channel_id = $1
		ORDER BY video_published_at DESC NULLS LAST
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []*scoring.Video
	for rows.Next() {
		var v scoring.Video
		if err := rows.Scan(
			&v.VideoID, &v.ChannelID, &v.Title, &v.PublishedAt,
			&v.ViewCount, &v.LikeCount, &v.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

// orderClauses 정렬 기준별 ORDER BY. 이 목록 밖의 값은 SQL 에 들어가지 않는다
var orderClauses = map[scoring.ChannelOrder]string{
	scoring.OrderRandom:     `random()`,
	scoring.OrderFollowers:  `subscriber_count DESC NULLS LAST, channel_id`,
	scoring.OrderEngagement: `engagement_rate DESC NULLS LAST, channel_id`,
	scoring.OrderPrice:      `subscriber_count ASC NULLS LAST, channel_id`,
}

// ListOrdered 정렬 기준별 상위 limit 개 채널
func (r *InfluencerRepository) ListOrdered(ctx context.Context, order scoring.ChannelOrder, limit int) ([]*scoring.Influencer, error) {
	clause, ok := orderClauses[order]
	if !ok {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownSortOrder, order)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+influencerColumns+` FROM influencer ORDER BY `+clause+` LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query influencers by %s: %w", order, err)
	}
	return collectInfluencers(rows)
}

var _ scoring.CandidateRepository = (*InfluencerRepository)(nil)
