package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
	"github.com/wonny/influroi/internal/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// RankingCache 재분배 결과 캐시 (project, policy 단위)
type RankingCache interface {
	Get(ctx context.Context, projectID, policy string) (*scoring.ProjectRanking, bool, error)
	Set(ctx context.Context, ranking *scoring.ProjectRanking) error
	Invalidate(ctx context.Context, projectID string) error
}

// ProjectInput 프로젝트 생성 입력
type ProjectInput struct {
	ProjectID       string // 비어 있으면 새로 발급
	CompanyName     string
	BrandCategories string
	BrandTone       scoring.BrandTone
	CampaignGoal    string
	BrandImagePath  string
}

// Validate 필수 항목 확인
func (in ProjectInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if strings.TrimSpace(in.BrandCategories) == "" {
		missing = append(missing, "brand_categories")
	}
	if strings.TrimSpace(string(in.BrandTone)) == "" {
		missing = append(missing, "brand_tone")
	}
	if strings.TrimSpace(in.CampaignGoal) == "" {
		missing = append(missing, "campaign_goal")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", scoring.ErrInvalidProject, strings.Join(missing, ", "))
	}
	return nil
}

// WeightProfiles 호출 경로별 기본 가중치
type WeightProfiles struct {
	Analysis scoring.WeightConfig `koanf:"analysis"`
	Compare  scoring.WeightConfig `koanf:"compare"`
}

// DefaultWeightProfiles 기본 프로필
func DefaultWeightProfiles() WeightProfiles {
	return WeightProfiles{
		Analysis: scoring.DefaultWeights(),
		Compare:  scoring.CompareWeights(),
	}
}

// Service 프로젝트 채점/순위/분석 서비스
type Service struct {
	projects     scoring.ProjectRepository
	candidates   scoring.CandidateRepository
	results      scoring.ResultRepository
	evaluator    *Evaluator
	orchestrator *Orchestrator
	runner       *TaskRunner
	cache        RankingCache
	profiles     WeightProfiles

	defaultPolicy string
	sf            singleflight.Group

	// 프로젝트별 무효화 세대. 읽는 동안 세대가 바뀌면 캐시에 쓰지 않는다
	genMu       sync.Mutex
	generations map[string]uint64
}

// ServiceConfig 서비스 구성
type ServiceConfig struct {
	Projects      scoring.ProjectRepository
	Candidates    scoring.CandidateRepository
	Results       scoring.ResultRepository
	Providers     Providers
	Runner        *TaskRunner
	Cache         RankingCache // nil 이면 캐시 없음
	Profiles      WeightProfiles
	DefaultPolicy string
	Concurrency   int
}

// NewService 생성
func NewService(cfg ServiceConfig) *Service {
	evaluator := NewEvaluator(cfg.Candidates, cfg.Providers)

	runner := cfg.Runner
	if runner == nil {
		runner = NewTaskRunner()
	}

	s := &Service{
		projects:      cfg.Projects,
		candidates:    cfg.Candidates,
		results:       cfg.Results,
		evaluator:     evaluator,
		runner:        runner,
		cache:         cfg.Cache,
		profiles:      cfg.Profiles,
		defaultPolicy: cfg.DefaultPolicy,
		generations:   make(map[string]uint64),
	}

	s.orchestrator = NewOrchestrator(
		cfg.Projects,
		cfg.Candidates,
		cfg.Results,
		evaluator,
		WithConcurrency(cfg.Concurrency),
		WithWeights(cfg.Profiles.Analysis),
		WithCompletionHook(s.invalidate),
	)

	return s
}

// Orchestrator 배치 오케스트레이터 (CLI 동기 실행용)
func (s *Service) Orchestrator() *Orchestrator {
	return s.orchestrator
}

// Runner 백그라운드 실행기
func (s *Service) Runner() *TaskRunner {
	return s.runner
}

// CreateProject 프로젝트 저장 후 배치 채점을 백그라운드로 시작.
// 호출자는 즉시 반환받고, 반환된 Task 로 완료를 관찰할 수 있다.
func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (*scoring.Project, *Task, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}

	projectID := in.ProjectID
	if projectID == "" {
		projectID = NewProjectID()
	}

	project := &scoring.Project{
		ProjectID:       projectID,
		CompanyName:     strings.TrimSpace(in.CompanyName),
		BrandCategories: strings.TrimSpace(in.BrandCategories),
		BrandTone:       scoring.BrandTone(strings.TrimSpace(string(in.BrandTone))),
		CampaignGoal:    strings.TrimSpace(in.CampaignGoal),
		BrandImagePath:  in.BrandImagePath,
		CreatedAt:       time.Now(),
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, nil, fmt.Errorf("create project: %w", err)
	}

	task := s.Dispatch(project.ProjectID)

	log.Info().
		Str("project_id", project.ProjectID).
		Str("company", project.CompanyName).
		Msg("Project created, scoring dispatched")

	return project, task, nil
}

// NewProjectID 프로젝트 ID 발급 (업로드 파일명 접두어로도 사용)
func NewProjectID() string {
	return uuid.New().String()
}

// Dispatch 배치 채점을 백그라운드로 시작
func (s *Service) Dispatch(projectID string) *Task {
	return s.runner.Submit(projectID, func(ctx context.Context) error {
		_, err := s.orchestrator.RunProjectScoring(ctx, projectID)
		return err
	})
}

// Rescore 기존 프로젝트 재채점 (존재 확인 후 dispatch)
func (s *Service) Rescore(ctx context.Context, projectID string) (*Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Dispatch(projectID), nil
}

// GetProject 조회
func (s *Service) GetProject(ctx context.Context, projectID string) (*scoring.Project, error) {
	return s.projects.GetByID(ctx, projectID)
}

// ListProjects 목록
func (s *Service) ListProjects(ctx context.Context) ([]*scoring.ProjectSummary, error) {
	return s.projects.List(ctx)
}

// DeleteProject 삭제 (결과 cascade + 캐시 무효화)
func (s *Service) DeleteProject(ctx context.Context, projectID string) error {
	if s.runner.Running(projectID) {
		return scoring.ErrScoringInProgress
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.invalidate(ctx, projectID)
	return nil
}

// Channel 채널 프로필
func (s *Service) Channel(ctx context.Context, channelID string) (*scoring.Influencer, error) {
	return s.candidates.GetByID(ctx, channelID)
}

// ChannelVideos 채널 최근 영상. limit <= 0 이면 분석 샘플 크기
func (s *Service) ChannelVideos(ctx context.Context, channelID string, limit int) ([]*scoring.Video, error) {
	if _, err := s.candidates.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > videoSampleLimit {
		limit = videoSampleLimit
	}
	return s.candidates.ListVideos(ctx, channelID, limit)
}

const (
	defaultChannelListLimit = 50
	maxChannelListLimit     = 200
)

func channelListLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultChannelListLimit
	case limit > maxChannelListLimit:
		return maxChannelListLimit
	default:
		return limit
	}
}

// ChannelCards 홈 화면 채널 카드 (OrderRandom 이면 무작위 순서)
func (s *Service) ChannelCards(ctx context.Context, order scoring.ChannelOrder, limit int) ([]*scoring.ChannelCard, error) {
	channels, err := s.candidates.ListOrdered(ctx, order, channelListLimit(limit))
	if err != nil {
		return nil, err
	}

	cards := make([]*scoring.ChannelCard, len(channels))
	for i, ch := range channels {
		cards[i] = scoring.NewChannelCard(ch)
	}
	return cards, nil
}

// PopularChannels 구독자 많은 순 채널
func (s *Service) PopularChannels(ctx context.Context, limit int) ([]*scoring.Influencer, error) {
	return s.candidates.ListOrdered(ctx, scoring.OrderFollowers, channelListLimit(limit))
}

// ChannelStats 채널 기본 수치 + 파생 지표
func (s *Service) ChannelStats(ctx context.Context, channelID string) (*scoring.ChannelStats, error) {
	channel, err := s.candidates.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return scoring.NewChannelStats(channel), nil
}

// 채점 상태
const (
	StatusScoring = "scoring"
	StatusReady   = "ready"
)

// ScoringStatus 프로젝트 배치 진행 상태
type ScoringStatus struct {
	ProjectID   string     `json:"project_id"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	ResultCount int        `json:"result_count"`
}

// ScoringStatus 실행 중이면 시작 시각, 끝났으면 저장된 결과 수
func (s *Service) ScoringStatus(ctx context.Context, projectID string) (*ScoringStatus, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	if task, ok := s.runner.Get(projectID); ok {
		started := task.StartedAt
		return &ScoringStatus{ProjectID: projectID, Status: StatusScoring, StartedAt: &started}, nil
	}

	results, err := s.results.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return &ScoringStatus{ProjectID: projectID, Status: StatusReady, ResultCount: len(results)}, nil
}

// Rankings 프로젝트 전체 코호트에 등급 정책을 적용한 순위.
// 배치가 실행 중이면 부분 코호트를 쓰지 않도록 ErrScoringInProgress.
func (s *Service) Rankings(ctx context.Context, projectID, policyName string) (*scoring.ProjectRanking, error) {
	if policyName == "" {
		policyName = s.defaultPolicy
	}
	policy, err := PolicyByName(policyName)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	if s.runner.Running(projectID) {
		return nil, scoring.ErrScoringInProgress
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, projectID, policy.Name())
		if err != nil {
			log.Warn().Err(err).Str("project_id", projectID).Msg("Ranking cache read failed")
		} else if ok {
			metrics.RecordRankingRead(policy.Name(), true, cached.TotalCount)
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(projectID+":"+policy.Name(), func() (interface{}, error) {
		return s.buildRanking(ctx, projectID, policy)
	})
	if err != nil {
		return nil, err
	}

	ranking := v.(*scoring.ProjectRanking)
	metrics.RecordRankingRead(policy.Name(), false, ranking.TotalCount)

	return ranking, nil
}

func (s *Service) buildRanking(ctx context.Context, projectID string, policy GradingPolicy) (*scoring.ProjectRanking, error) {
	gen := s.generation(projectID)

	results, err := s.results.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load cohort: %w", err)
	}

	candidates, err := s.candidates.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	byID := make(map[string]*scoring.Influencer, len(candidates))
	for _, c := range candidates {
		byID[c.ChannelID] = c
	}

	entries := make([]CohortEntry, len(results))
	resultByID := make(map[string]*scoring.ScoreResult, len(results))
	for i, r := range results {
		entries[i] = CohortEntry{ChannelID: r.ChannelID, RawScore: r.Score}
		resultByID[r.ChannelID] = r
	}

	ranked := policy.Apply(entries)

	ranking := &scoring.ProjectRanking{
		ProjectID:   projectID,
		Policy:      policy.Name(),
		GeneratedAt: time.Now(),
		TotalCount:  len(ranked),
		Youtubers:   make([]scoring.RankedYoutuber, 0, len(ranked)),
		Stats: scoring.RankingStats{
			GradeDistribution: make(map[scoring.Grade]int),
		},
	}

	var sumRaw, sumTotal float64
	for _, e := range ranked {
		item := scoring.RankedYoutuber{
			Rank:           e.Rank + 1,
			ChannelID:      e.ChannelID,
			Category:       scoring.UncategorizedLabel,
			EstimatedPrice: scoring.PriceOnRequest,
			RawScore:       Round2(e.RawScore),
			TotalScore:     Round2(e.FinalScore),
			Grade:          e.Grade,
			Recommendation: scoring.Recommendation(e.Grade),
			Fallback:       resultByID[e.ChannelID].Fallback,
		}
		if c, ok := byID[e.ChannelID]; ok {
			item.Title = c.Title
			item.SubscriberCount = c.SubscriberCount
			item.ThumbnailURL = c.ThumbnailURL
			item.EngagementRate = c.EngagementRate
			if c.Category != "" {
				item.Category = c.Category
			}
			if c.EstimatedPrice != "" {
				item.EstimatedPrice = c.EstimatedPrice
			}
		}

		ranking.Youtubers = append(ranking.Youtubers, item)
		ranking.Stats.GradeDistribution[e.Grade]++
		if item.Fallback {
			ranking.Stats.FallbackCount++
		}
		sumRaw += e.RawScore
		sumTotal += e.FinalScore
	}

	if n := len(ranked); n > 0 {
		ranking.Stats.AvgRawScore = Round2(sumRaw / float64(n))
		ranking.Stats.AvgTotalScore = Round2(sumTotal / float64(n))
	}

	s.cacheIfCurrent(ctx, ranking, gen)

	return ranking, nil
}

func (s *Service) generation(projectID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[projectID]
}

// cacheIfCurrent 코호트를 읽은 뒤 배치가 끝났거나 다시 시작됐으면 저장하지 않음.
// 세대 비교와 Set 은 같은 락 안에서 실행되고, invalidate 는 세대를 먼저 올린다
func (s *Service) cacheIfCurrent(ctx context.Context, ranking *scoring.ProjectRanking, gen uint64) {
	if s.cache == nil {
		return
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()

	if s.generations[ranking.ProjectID] != gen || s.runner.Running(ranking.ProjectID) {
		log.Debug().Str("project_id", ranking.ProjectID).Msg("Cohort changed during read, ranking not cached")
		return
	}
	if err := s.cache.Set(ctx, ranking); err != nil {
		log.Warn().Err(err).Str("project_id", ranking.ProjectID).Msg("Ranking cache write failed")
	}
}

func (s *Service) invalidate(ctx context.Context, projectID string) {
	s.genMu.Lock()
	s.generations[projectID]++
	s.genMu.Unlock()

	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("Ranking cache invalidation failed")
	}
}

// lookup 프로젝트와 채널 로드
func (s *Service) lookup(ctx context.Context, projectID, channelID string) (*scoring.Project, *scoring.Influencer, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	candidate, err := s.candidates.GetByID(ctx, channelID)
	if err != nil {
		return nil, nil, err
	}
	return project, candidate, nil
}

// BrandMatch 브랜드 적합도 단건 분석
func (s *Service) BrandMatch(ctx context.Context, projectID, channelID string) (*scoring.BrandScore, error) {
	project, candidate, err := s.lookup(ctx, projectID, channelID)
	if err != nil {
		return nil, err
	}
	videos, err := s.candidates.ListVideos(ctx, channelID, videoSampleLimit)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return s.evaluator.Brand(ctx, project, candidate, videos)
}

// Sentiment 감성 단건 분석
func (s *Service) Sentiment(ctx context.Context, projectID, channelID string) (*scoring.SentimentScore, error) {
	_, candidate, err := s.lookup(ctx, projectID, channelID)
	if err != nil {
		return nil, err
	}
	videos, err := s.candidates.ListVideos(ctx, channelID, videoSampleLimit)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return s.evaluator.Sentiment(ctx, candidate, videos)
}

// ROIEstimate ROI 단건 추정
func (s *Service) ROIEstimate(ctx context.Context, projectID, channelID string) (*scoring.ROIEstimate, error) {
	_, candidate, err := s.lookup(ctx, projectID, channelID)
	if err != nil {
		return nil, err
	}
	return s.evaluator.ROI(ctx, candidate)
}

// TotalScore 단일 채널 종합 점수 (절대 등급, 재분배 전).
// 실패한 지표는 50으로 대체된다.
func (s *Service) TotalScore(ctx context.Context, projectID, channelID string, weights *scoring.WeightConfig) (*scoring.TotalScore, error) {
	project, candidate, err := s.lookup(ctx, projectID, channelID)
	if err != nil {
		return nil, err
	}

	w := s.profiles.Analysis
	if weights != nil {
		w = weights.Clamp()
	}

	eval, err := s.evaluator.EvaluateLenient(ctx, project, candidate)
	if err != nil {
		return nil, err
	}

	total := Total(eval.Raw(), w)
	total.TotalScore = Round2(total.TotalScore)
	total.Defaulted = eval.Defaulted
	return total, nil
}

// ChannelComparison 채널 비교 한 행
type ChannelComparison struct {
	ChannelID       string        `json:"channel_id"`
	ChannelName     string        `json:"channel_name"`
	SubscriberCount int64         `json:"subscriber_count"`
	BrandScore      float64       `json:"brand_score"`
	SentimentScore  float64       `json:"sentiment_score"`
	ROIScore        float64       `json:"roi_score"`
	TotalScore      float64       `json:"total_score"`
	Grade           scoring.Grade `json:"grade"`
	Recommendation  string        `json:"recommendation"`
}

// ChannelComparisonResult 채널 비교 결과
type ChannelComparisonResult struct {
	ProjectID string               `json:"project_id"`
	Results   []ChannelComparison  `json:"comparison_results"`
	Best      ChannelComparison    `json:"best_channel"`
	Criteria  scoring.WeightConfig `json:"analysis_criteria"`
	Skipped   []string             `json:"skipped,omitempty"`
}

// CompareChannels 여러 채널을 비교 가중치로 비교. 분석 실패 채널은 제외
func (s *Service) CompareChannels(ctx context.Context, projectID string, channelIDs []string) (*ChannelComparisonResult, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	weights := s.profiles.Compare
	out := &ChannelComparisonResult{
		ProjectID: projectID,
		Criteria:  weights,
	}

	for _, channelID := range channelIDs {
		candidate, err := s.candidates.GetByID(ctx, channelID)
		if err != nil {
			log.Warn().Err(err).Str("channel_id", channelID).Msg("Compare: channel skipped")
			out.Skipped = append(out.Skipped, channelID)
			continue
		}

		eval, err := s.evaluator.EvaluateStrict(ctx, project, candidate)
		if err != nil {
			log.Warn().Err(err).Str("channel_id", channelID).Msg("Compare: channel skipped")
			out.Skipped = append(out.Skipped, channelID)
			continue
		}

		total := Total(eval.Raw(), weights)
		out.Results = append(out.Results, ChannelComparison{
			ChannelID:       channelID,
			ChannelName:     candidate.Title,
			SubscriberCount: candidate.SubscriberCount,
			BrandScore:      eval.Brand.Score,
			SentimentScore:  eval.Sentiment.Score,
			ROIScore:        eval.ROI.Score,
			TotalScore:      Round2(total.TotalScore),
			Grade:           total.Grade,
			Recommendation:  total.Recommendation,
		})
	}

	if len(out.Results) == 0 {
		return nil, scoring.ErrNoComparableChannels
	}

	out.Best = out.Results[0]
	for _, r := range out.Results[1:] {
		if r.TotalScore > out.Best.TotalScore {
			out.Best = r
		}
	}

	return out, nil
}

// WeightComparison 가중치 설정별 결과
type WeightComparison struct {
	Name       string               `json:"name"`
	Weights    scoring.WeightConfig `json:"weight_config"`
	TotalScore float64              `json:"total_score"`
	Grade      scoring.Grade        `json:"grade"`
	Breakdown  scoring.RawMetricSet `json:"score_breakdown"`
}

// WeightComparisonResult 가중치 비교 결과
type WeightComparisonResult struct {
	ProjectID   string             `json:"project_id"`
	ChannelID   string             `json:"channel_id"`
	ChannelName string             `json:"channel_name"`
	Results     []WeightComparison `json:"weight_comparison"`
	Optimal     WeightComparison   `json:"optimal_weights"`
}

// CompareWeights 한 채널에 여러 가중치 설정을 적용. 지표는 한 번만 계산한다
func (s *Service) CompareWeights(ctx context.Context, projectID, channelID string, configs []scoring.WeightConfig) (*WeightComparisonResult, error) {
	if len(configs) == 0 {
		return nil, errors.New("at least one weight config is required")
	}

	project, candidate, err := s.lookup(ctx, projectID, channelID)
	if err != nil {
		return nil, err
	}

	eval, err := s.evaluator.EvaluateStrict(ctx, project, candidate)
	if err != nil {
		return nil, fmt.Errorf("evaluate channel: %w", err)
	}
	raw := eval.Raw()

	out := &WeightComparisonResult{
		ProjectID:   projectID,
		ChannelID:   channelID,
		ChannelName: candidate.Title,
	}

	for i, cfg := range configs {
		w := cfg.Clamp()
		total := Total(raw, w)
		out.Results = append(out.Results, WeightComparison{
			Name:       fmt.Sprintf("Config %d", i+1),
			Weights:    w,
			TotalScore: Round1(total.TotalScore),
			Grade:      total.Grade,
			Breakdown:  raw,
		})
	}

	out.Optimal = out.Results[0]
	for _, r := range out.Results[1:] {
		if r.TotalScore > out.Optimal.TotalScore {
			out.Optimal = r
		}
	}

	return out, nil
}
