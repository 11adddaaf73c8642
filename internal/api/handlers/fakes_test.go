package handlers

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService 모든 핸들러 서비스 인터페이스 구현
type fakeService struct {
	mu sync.Mutex

	projects map[string]*scoring.Project
	running  map[string]bool
	rankings map[string]*scoring.ProjectRanking
	channels map[string]*scoring.Influencer
	videos   map[string][]*scoring.Video

	created     []svc.ProjectInput
	gotPolicy   string
	gotWeights  *scoring.WeightConfig
	gotConfigs  []scoring.WeightConfig
	gotChannels []string
	gotOrder    scoring.ChannelOrder
	gotLimit    int
	rescored    []string
	createErr   error
}

func newFakeService() *fakeService {
	return &fakeService{
		projects: map[string]*scoring.Project{},
		running:  map[string]bool{},
		rankings: map[string]*scoring.ProjectRanking{},
		channels: map[string]*scoring.Influencer{},
		videos:   map[string][]*scoring.Video{},
	}
}

func (f *fakeService) project(id string) error {
	if _, ok := f.projects[id]; !ok {
		return scoring.ErrProjectNotFound
	}
	return nil
}

func (f *fakeService) pair(projectID, channelID string) error {
	if err := f.project(projectID); err != nil {
		return err
	}
	if _, ok := f.channels[channelID]; !ok {
		return scoring.ErrCandidateNotFound
	}
	return nil
}

func (f *fakeService) CreateProject(_ context.Context, in svc.ProjectInput) (*scoring.Project, *svc.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, nil, f.createErr
	}
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	f.created = append(f.created, in)
	p := &scoring.Project{
		ProjectID:       in.ProjectID,
		CompanyName:     in.CompanyName,
		BrandCategories: in.BrandCategories,
		BrandTone:       in.BrandTone,
		CampaignGoal:    in.CampaignGoal,
		BrandImagePath:  in.BrandImagePath,
	}
	f.projects[p.ProjectID] = p
	f.running[p.ProjectID] = true
	return p, nil, nil
}

func (f *fakeService) ListProjects(_ context.Context) ([]*scoring.ProjectSummary, error) {
	var out []*scoring.ProjectSummary
	for _, p := range f.projects {
		out = append(out, &scoring.ProjectSummary{Project: *p})
	}
	return out, nil
}

func (f *fakeService) DeleteProject(_ context.Context, id string) error {
	if f.running[id] {
		return scoring.ErrScoringInProgress
	}
	if err := f.project(id); err != nil {
		return err
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeService) Rankings(_ context.Context, id, policy string) (*scoring.ProjectRanking, error) {
	f.gotPolicy = policy
	if _, err := svc.PolicyByName(policy); err != nil {
		return nil, err
	}
	if err := f.project(id); err != nil {
		return nil, err
	}
	if f.running[id] {
		return nil, scoring.ErrScoringInProgress
	}
	return f.rankings[id], nil
}

func (f *fakeService) BrandMatch(_ context.Context, p, c string) (*scoring.BrandScore, error) {
	if err := f.pair(p, c); err != nil {
		return nil, err
	}
	return &scoring.BrandScore{Score: 71.5}, nil
}

func (f *fakeService) Sentiment(_ context.Context, p, c string) (*scoring.SentimentScore, error) {
	if err := f.pair(p, c); err != nil {
		return nil, err
	}
	return &scoring.SentimentScore{Score: 64}, nil
}

func (f *fakeService) ROIEstimate(_ context.Context, p, c string) (*scoring.ROIEstimate, error) {
	if err := f.pair(p, c); err != nil {
		return nil, err
	}
	return &scoring.ROIEstimate{Score: 80, EstimatedCost: "500만원"}, nil
}

func (f *fakeService) TotalScore(_ context.Context, p, c string, w *scoring.WeightConfig) (*scoring.TotalScore, error) {
	if err := f.pair(p, c); err != nil {
		return nil, err
	}
	f.gotWeights = w
	return svc.Total(scoring.RawMetricSet{Brand: 70, Sentiment: 60, ROI: 80}, scoring.DefaultWeights()), nil
}

func (f *fakeService) CompareChannels(_ context.Context, p string, ids []string) (*svc.ChannelComparisonResult, error) {
	if err := f.project(p); err != nil {
		return nil, err
	}
	f.gotChannels = ids
	var out svc.ChannelComparisonResult
	for _, id := range ids {
		if _, ok := f.channels[id]; ok {
			out.Results = append(out.Results, svc.ChannelComparison{ChannelID: id})
		}
	}
	if len(out.Results) == 0 {
		return nil, scoring.ErrNoComparableChannels
	}
	out.Best = out.Results[0]
	return &out, nil
}

func (f *fakeService) CompareWeights(_ context.Context, p, c string, configs []scoring.WeightConfig) (*svc.WeightComparisonResult, error) {
	if err := f.pair(p, c); err != nil {
		return nil, err
	}
	f.gotConfigs = configs
	return &svc.WeightComparisonResult{ProjectID: p, ChannelID: c}, nil
}

func (f *fakeService) Channel(_ context.Context, id string) (*scoring.Influencer, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, scoring.ErrCandidateNotFound
	}
	return ch, nil
}

func (f *fakeService) ChannelVideos(_ context.Context, id string, _ int) ([]*scoring.Video, error) {
	if _, ok := f.channels[id]; !ok {
		return nil, scoring.ErrCandidateNotFound
	}
	return f.videos[id], nil
}

func (f *fakeService) Rescore(_ context.Context, id string) (*svc.Task, error) {
	if err := f.project(id); err != nil {
		return nil, err
	}
	f.rescored = append(f.rescored, id)
	f.running[id] = true
	return nil, nil
}

func (f *fakeService) ScoringStatus(_ context.Context, id string) (*svc.ScoringStatus, error) {
	if err := f.project(id); err != nil {
		return nil, err
	}
	if f.running[id] {
		return &svc.ScoringStatus{ProjectID: id, Status: svc.StatusScoring}, nil
	}
	return &svc.ScoringStatus{ProjectID: id, Status: svc.StatusReady, ResultCount: 2}, nil
}

func (f *fakeService) ChannelStats(_ context.Context, id string) (*scoring.ChannelStats, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, scoring.ErrCandidateNotFound
	}
	return scoring.NewChannelStats(ch), nil
}

func (f *fakeService) ChannelCards(_ context.Context, order scoring.ChannelOrder, limit int) ([]*scoring.ChannelCard, error) {
	f.gotOrder = order
	f.gotLimit = limit
	var out []*scoring.ChannelCard
	for _, ch := range f.channels {
		out = append(out, scoring.NewChannelCard(ch))
	}
	return out, nil
}

func (f *fakeService) PopularChannels(_ context.Context, limit int) ([]*scoring.Influencer, error) {
	f.gotLimit = limit
	return nil, nil
}

// newTestEngine 라우터 패키지 없이 핸들러만 연결
func newTestEngine(f *fakeService, uploadDir string) *gin.Engine {
	engine := gin.New()

	project := NewProjectHandler(f, uploadDir)
	analysis := NewAnalysisHandler(f)
	compare := NewCompareHandler(f)
	youtuber := NewYoutuberHandler(f)
	home := NewHomeHandler(f)

	engine.POST("/api/project/create", project.Create)
	engine.GET("/api/project/list", project.List)
	engine.GET("/api/project/youtubers/:project_id", project.Youtubers)
	engine.GET("/api/project/status/:project_id", project.Status)
	engine.POST("/api/project/rescore/:project_id", project.Rescore)
	engine.DELETE("/api/project/:project_id", project.Delete)
	engine.GET("/api/analysis/brand-match/:project_id/:channel_id", analysis.BrandMatch)
	engine.GET("/api/analysis/sentiment/:project_id/:channel_id", analysis.Sentiment)
	engine.GET("/api/analysis/roi-estimate/:project_id/:channel_id", analysis.ROIEstimate)
	engine.GET("/api/analysis/total-score/:project_id/:channel_id", analysis.TotalScore)
	engine.POST("/api/compare/channels", compare.Channels)
	engine.POST("/api/compare/weights", compare.Weights)
	engine.GET("/api/youtuber/:channel_id/profile", youtuber.Profile)
	engine.GET("/api/youtuber/:channel_id/videos", youtuber.Videos)
	engine.GET("/api/youtuber/:channel_id/stats", youtuber.Stats)
	engine.GET("/api/home/youtubers", home.Youtubers)
	engine.GET("/api/home/youtubers/sorted", home.Sorted)
	engine.GET("/api/home/popular", home.Popular)

	return engine
}
