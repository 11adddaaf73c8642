package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
	"github.com/wonny/influroi/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// 채점 실패 채널에 부여하는 고정 결과
const (
	FallbackScore = 50.0
	FallbackGrade = scoring.GradeC
)

const defaultConcurrency = 1

// BatchReport 배치 실행 요약
type BatchReport struct {
	ProjectID string        `json:"project_id"`
	Total     int           `json:"total"`
	Scored    int           `json:"scored"`
	Fallbacks int           `json:"fallbacks"`
	Duration  time.Duration `json:"duration"`
}

// OrchestratorOption 옵션
type OrchestratorOption func(*Orchestrator)

// WithConcurrency 동시 채점 수 (1 이하면 순차)
func WithConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithWeights 배치 가중치
func WithWeights(w scoring.WeightConfig) OrchestratorOption {
	return func(o *Orchestrator) {
		o.weights = w.Clamp()
	}
}

// WithCompletionHook 결과 저장 직후 호출 (캐시 무효화 등)
func WithCompletionHook(fn func(ctx context.Context, projectID string)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.onComplete = fn
	}
}

// Orchestrator 프로젝트 단위 배치 채점
type Orchestrator struct {
	projects   scoring.ProjectRepository
	candidates scoring.CandidateRepository
	results    scoring.ResultRepository
	evaluator  *Evaluator

	weights     scoring.WeightConfig
	concurrency int
	onComplete  func(ctx context.Context, projectID string)
	now         func() time.Time
}

// NewOrchestrator 생성
func NewOrchestrator(
	projects scoring.ProjectRepository,
	candidates scoring.CandidateRepository,
	results scoring.ResultRepository,
	evaluator *Evaluator,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		projects:    projects,
		candidates:  candidates,
		results:     results,
		evaluator:   evaluator,
		weights:     scoring.DefaultWeights(),
		concurrency: defaultConcurrency,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// RunProjectScoring 전체 채널 풀을 채점하고 한 번에 저장한다.
// 채널 단위 실패(에러, panic)는 고정 점수로 대체되며 배치를 중단시키지 않는다.
func (o *Orchestrator) RunProjectScoring(ctx context.Context, projectID string) (*BatchReport, error) {
	start := o.now()

	project, err := o.projects.GetByID(ctx, projectID)
	if err != nil {
		metrics.RecordBatchRun("failed", time.Since(start).Seconds())
		return nil, fmt.Errorf("load project: %w", err)
	}

	candidates, err := o.candidates.ListAll(ctx)
	if err != nil {
		metrics.RecordBatchRun("failed", time.Since(start).Seconds())
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	log.Info().
		Str("project_id", projectID).
		Int("candidates", len(candidates)).
		Int("concurrency", o.concurrency).
		Msg("Project scoring started")

	results := make([]*scoring.ScoreResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			results[i] = o.scoreCandidate(gctx, project, candidate)
			return nil
		})
	}
	// scoreCandidate 는 에러를 반환하지 않는다
	_ = g.Wait()

	report := &BatchReport{
		ProjectID: projectID,
		Total:     len(results),
	}
	for _, r := range results {
		if r.Fallback {
			report.Fallbacks++
		} else {
			report.Scored++
		}
	}

	if err := o.results.SaveBatch(ctx, projectID, results); err != nil {
		metrics.RecordBatchRun("failed", time.Since(start).Seconds())
		return nil, fmt.Errorf("save results: %w", err)
	}

	if o.onComplete != nil {
		o.onComplete(ctx, projectID)
	}

	report.Duration = time.Since(start)
	metrics.RecordBatchRun("completed", report.Duration.Seconds())

	log.Info().
		Str("project_id", projectID).
		Int("scored", report.Scored).
		Int("fallbacks", report.Fallbacks).
		Dur("duration", report.Duration).
		Msg("Project scoring completed")

	return report, nil
}

// scoreCandidate 한 채널 채점. 실패하면 고정 결과
func (o *Orchestrator) scoreCandidate(ctx context.Context, project *scoring.Project, candidate *scoring.Influencer) (result *scoring.ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("project_id", project.ProjectID).
				Str("channel_id", candidate.ChannelID).
				Msg("Candidate scoring panicked, using fallback")
			result = o.fallback(project.ProjectID, candidate.ChannelID)
		}
	}()

	eval, err := o.evaluator.EvaluateStrict(ctx, project, candidate)
	if err != nil {
		log.Warn().
			Err(err).
			Str("project_id", project.ProjectID).
			Str("channel_id", candidate.ChannelID).
			Msg("Candidate scoring failed, using fallback")
		return o.fallback(project.ProjectID, candidate.ChannelID)
	}

	total := Total(eval.Raw(), o.weights)
	metrics.RecordCandidate(metrics.OutcomeScored)

	return &scoring.ScoreResult{
		ProjectID:      project.ProjectID,
		ChannelID:      candidate.ChannelID,
		Score:          total.TotalScore,
		Grade:          total.Grade,
		Recommendation: total.Recommendation,
		Weights:        o.weights,
		Metrics:        total.Breakdown,
		CreatedAt:      o.now(),
	}
}

func (o *Orchestrator) fallback(projectID, channelID string) *scoring.ScoreResult {
	metrics.RecordCandidate(metrics.OutcomeFallback)

	return &scoring.ScoreResult{
		ProjectID:      projectID,
		ChannelID:      channelID,
		Score:          FallbackScore,
		Grade:          FallbackGrade,
		Recommendation: scoring.Recommendation(FallbackGrade),
		Weights:        o.weights,
		Fallback:       true,
		CreatedAt:      o.now(),
	}
}
