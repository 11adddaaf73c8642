package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/wonny/influroi/internal/domain/scoring"
)

var errProviderDown = errors.New("provider down")

type fakeProjects struct {
	mu       sync.Mutex
	projects map[string]*scoring.Project
}

func newFakeProjects(ps ...*scoring.Project) *fakeProjects {
	f := &fakeProjects{projects: make(map[string]*scoring.Project)}
	for _, p := range ps {
		f.projects[p.ProjectID] = p
	}
	return f
}

func (f *fakeProjects) Create(_ context.Context, p *scoring.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ProjectID] = p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*scoring.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, scoring.ErrProjectNotFound)
	}
	return p, nil
}

func (f *fakeProjects) List(_ context.Context) ([]*scoring.ProjectSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*scoring.ProjectSummary
	for _, p := range f.projects {
		out = append(out, &scoring.ProjectSummary{Project: *p})
	}
	return out, nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return scoring.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

type fakeCandidates struct {
	list    []*scoring.Influencer
	videos  map[string][]*scoring.Video
	listErr error
}

func (f *fakeCandidates) ListAll(_ context.Context) ([]*scoring.Influencer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeCandidates) GetByID(_ context.Context, id string) (*scoring.Influencer, error) {
	for _, c := range f.list {
		if c.ChannelID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("channel %s: %w", id, scoring.ErrCandidateNotFound)
}

func (f *fakeCandidates) ListVideos(_ context.Context, id string, _ int) ([]*scoring.Video, error) {
	return f.videos[id], nil
}

// ListOrdered random 은 입력 순서 그대로
func (f *fakeCandidates) ListOrdered(_ context.Context, order scoring.ChannelOrder, limit int) ([]*scoring.Influencer, error) {
	out := append([]*scoring.Influencer(nil), f.list...)
	switch order {
	case scoring.OrderRandom:
	case scoring.OrderFollowers:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SubscriberCount > out[j].SubscriberCount })
	case scoring.OrderEngagement:
		sort.SliceStable(out, func(i, j int) bool { return out[i].EngagementRate > out[j].EngagementRate })
	case scoring.OrderPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SubscriberCount < out[j].SubscriberCount })
	default:
		return nil, scoring.ErrUnknownSortOrder
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeResults struct {
	mu        sync.Mutex
	saved     map[string][]*scoring.ScoreResult
	saveCalls int
	saveErr   error
	onList    func() // ListByProject 가 행을 읽은 직후 호출
}

func newFakeResults() *fakeResults {
	return &fakeResults{saved: make(map[string][]*scoring.ScoreResult)}
}

func (f *fakeResults) SaveBatch(_ context.Context, projectID string, results []*scoring.ScoreResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[projectID] = results
	return nil
}

func (f *fakeResults) ListByProject(_ context.Context, projectID string) ([]*scoring.ScoreResult, error) {
	f.mu.Lock()
	out := append([]*scoring.ScoreResult(nil), f.saved[projectID]...)
	hook := f.onList
	f.mu.Unlock()

	if hook != nil {
		hook()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out, nil
}

// scoreTable 채널별 고정 점수 + 실패/패닉/대기 제어
type scoreTable struct {
	scores  map[string]float64
	fail    map[string]bool
	panicOn map[string]bool
	gate    chan struct{} // nil 이 아니면 닫힐 때까지 대기
}

func (s *scoreTable) score(channelID string) (float64, error) {
	if s.gate != nil {
		<-s.gate
	}
	if s.panicOn[channelID] {
		panic("provider exploded for " + channelID)
	}
	if s.fail[channelID] {
		return 0, errProviderDown
	}
	if v, ok := s.scores[channelID]; ok {
		return v, nil
	}
	return NeutralScore, nil
}

type fakeBrand struct{ *scoreTable }

func (f fakeBrand) BrandCompatibility(_ context.Context, req BrandRequest) (*scoring.BrandScore, error) {
	v, err := f.score(req.Candidate.ChannelID)
	if err != nil {
		return nil, err
	}
	return &scoring.BrandScore{Score: v}, nil
}

type fakeSentiment struct{ *scoreTable }

func (f fakeSentiment) Sentiment(_ context.Context, c *scoring.Influencer, _ []*scoring.Video) (*scoring.SentimentScore, error) {
	v, err := f.score(c.ChannelID)
	if err != nil {
		return nil, err
	}
	return &scoring.SentimentScore{Score: v}, nil
}

type fakeROI struct{ *scoreTable }

func (f fakeROI) EstimateROI(_ context.Context, c *scoring.Influencer) (*scoring.ROIEstimate, error) {
	v, err := f.score(c.ChannelID)
	if err != nil {
		return nil, err
	}
	return &scoring.ROIEstimate{Score: v}, nil
}

// uniformProviders 세 지표가 같은 점수 → 종합 점수 = 그 점수 * 가중치 합
func uniformProviders(t *scoreTable) Providers {
	return Providers{
		Brand:     fakeBrand{t},
		Sentiment: fakeSentiment{t},
		ROI:       fakeROI{t},
	}
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]*scoring.ProjectRanking
	gets, sets  int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*scoring.ProjectRanking)}
}

func (c *fakeCache) Get(_ context.Context, projectID, policy string) (*scoring.ProjectRanking, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	r, ok := c.entries[projectID+":"+policy]
	return r, ok, nil
}

func (c *fakeCache) Set(_ context.Context, r *scoring.ProjectRanking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[r.ProjectID+":"+r.Policy] = r
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, projectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, projectID)
	for _, name := range PolicyNames() {
		delete(c.entries, projectID+":"+name)
	}
	return nil
}

func channels(ids ...string) []*scoring.Influencer {
	out := make([]*scoring.Influencer, len(ids))
	for i, id := range ids {
		out[i] = &scoring.Influencer{ChannelID: id, Title: "채널 " + id}
	}
	return out
}

func testProject(id string) *scoring.Project {
	return &scoring.Project{
		ProjectID:       id,
		CompanyName:     "테스트 브랜드",
		BrandCategories: "뷰티",
		BrandTone:       scoring.ToneFriendly,
		CampaignGoal:    "인지도 향상",
	}
}
