package scoring

import (
	"context"
)

// ProjectRepository 프로젝트 저장소
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error

	// 없으면 ErrProjectNotFound
	GetByID(ctx context.Context, projectID string) (*Project, error)

	// 최신순, 결과 수 포함
	List(ctx context.Context) ([]*ProjectSummary, error)

	// 결과 행까지 함께 삭제 (cascade)
	Delete(ctx context.Context, projectID string) error
}

// CandidateRepository 채널 저장소 (읽기 전용)
type CandidateRepository interface {
	ListAll(ctx context.Context) ([]*Influencer, error)

	// 없으면 ErrCandidateNotFound
	GetByID(ctx context.Context, channelID string) (*Influencer, error)

	ListVideos(ctx context.Context, channelID string, limit int) ([]*Video, error)

	// 정렬 기준별 상위 limit 개
	ListOrdered(ctx context.Context, order ChannelOrder, limit int) ([]*Influencer, error)
}

// ResultRepository 채점 결과 저장소
type ResultRepository interface {
	// 프로젝트 결과 전체를 한 트랜잭션으로 교체
	SaveBatch(ctx context.Context, projectID string, results []*ScoreResult) error

	ListByProject(ctx context.Context, projectID string) ([]*ScoreResult, error)
}
