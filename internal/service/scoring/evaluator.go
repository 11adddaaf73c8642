package scoring

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
	"github.com/wonny/influroi/internal/pkg/metrics"
)

// videoSampleLimit 채널당 분석에 쓰는 영상 수
const videoSampleLimit = 50

// Evaluation 한 채널의 세 지표 원본 결과
type Evaluation struct {
	Candidate *scoring.Influencer
	Brand     *scoring.BrandScore
	Sentiment *scoring.SentimentScore
	ROI       *scoring.ROIEstimate
	Defaulted []string
}

// Raw 원시 점수 묶음
func (e *Evaluation) Raw() scoring.RawMetricSet {
	return scoring.RawMetricSet{
		Brand:     e.Brand.Score,
		Sentiment: e.Sentiment.Score,
		ROI:       e.ROI.Score,
	}
}

// Evaluator 지표 제공자 호출
type Evaluator struct {
	candidates scoring.CandidateRepository
	providers  Providers
}

// NewEvaluator 생성
func NewEvaluator(candidates scoring.CandidateRepository, providers Providers) *Evaluator {
	return &Evaluator{
		candidates: candidates,
		providers:  providers,
	}
}

// EvaluateStrict 지표 제공자 실패를 그대로 반환 (배치 경로)
func (e *Evaluator) EvaluateStrict(ctx context.Context, project *scoring.Project, candidate *scoring.Influencer) (*Evaluation, error) {
	return e.evaluate(ctx, project, candidate, true)
}

// EvaluateLenient 실패한 지표는 중립값 50으로 대체 (단일 채널 분석 경로)
func (e *Evaluator) EvaluateLenient(ctx context.Context, project *scoring.Project, candidate *scoring.Influencer) (*Evaluation, error) {
	return e.evaluate(ctx, project, candidate, false)
}

func (e *Evaluator) evaluate(ctx context.Context, project *scoring.Project, candidate *scoring.Influencer, strict bool) (*Evaluation, error) {
	videos, err := e.candidates.ListVideos(ctx, candidate.ChannelID, videoSampleLimit)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("list videos: %w", err)
		}
		log.Warn().Err(err).Str("channel_id", candidate.ChannelID).Msg("Failed to load videos, continuing without")
		videos = nil
	}

	eval := &Evaluation{Candidate: candidate}

	brand, err := e.Brand(ctx, project, candidate, videos)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("%s provider: %w", ProviderBrand, err)
		}
		brand = &scoring.BrandScore{Score: NeutralScore}
		eval.Defaulted = append(eval.Defaulted, ProviderBrand)
	}
	eval.Brand = brand

	sentiment, err := e.Sentiment(ctx, candidate, videos)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("%s provider: %w", ProviderSentiment, err)
		}
		sentiment = &scoring.SentimentScore{Score: NeutralScore}
		eval.Defaulted = append(eval.Defaulted, ProviderSentiment)
	}
	eval.Sentiment = sentiment

	roi, err := e.ROI(ctx, candidate)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("%s provider: %w", ProviderROI, err)
		}
		roi = &scoring.ROIEstimate{Score: NeutralScore}
		eval.Defaulted = append(eval.Defaulted, ProviderROI)
	}
	eval.ROI = roi

	return eval, nil
}

// Brand 이미지 로딩(가능할 때만) 포함 브랜드 적합도
func (e *Evaluator) Brand(ctx context.Context, project *scoring.Project, candidate *scoring.Influencer, videos []*scoring.Video) (*scoring.BrandScore, error) {
	req := BrandRequest{
		Project:   project,
		Candidate: candidate,
		Videos:    videos,
	}
	e.attachImages(ctx, &req)

	score, err := e.providers.Brand.BrandCompatibility(ctx, req)
	if err != nil {
		e.providerFailed(ProviderBrand, candidate.ChannelID, err)
		return nil, err
	}
	return score, nil
}

// Sentiment 감성 점수
func (e *Evaluator) Sentiment(ctx context.Context, candidate *scoring.Influencer, videos []*scoring.Video) (*scoring.SentimentScore, error) {
	score, err := e.providers.Sentiment.Sentiment(ctx, candidate, videos)
	if err != nil {
		e.providerFailed(ProviderSentiment, candidate.ChannelID, err)
		return nil, err
	}
	return score, nil
}

// ROI ROI 추정
func (e *Evaluator) ROI(ctx context.Context, candidate *scoring.Influencer) (*scoring.ROIEstimate, error) {
	estimate, err := e.providers.ROI.EstimateROI(ctx, candidate)
	if err != nil {
		e.providerFailed(ProviderROI, candidate.ChannelID, err)
		return nil, err
	}
	return estimate, nil
}

// attachImages 브랜드 이미지와 썸네일이 모두 있을 때만 이미지 분석 입력을 채움
func (e *Evaluator) attachImages(ctx context.Context, req *BrandRequest) {
	if e.providers.Images == nil || req.Project.BrandImagePath == "" || req.Candidate.ThumbnailURL == "" {
		return
	}

	brandImage, err := e.providers.Images.LoadBrandImage(ctx, req.Project.BrandImagePath)
	if err != nil {
		log.Warn().Err(err).Str("project_id", req.Project.ProjectID).Msg("Brand image unavailable, text-only brand score")
		return
	}

	thumbnail, err := e.providers.Images.LoadThumbnail(ctx, req.Candidate.ThumbnailURL)
	if err != nil {
		log.Warn().Err(err).Str("channel_id", req.Candidate.ChannelID).Msg("Thumbnail unavailable, text-only brand score")
		return
	}

	req.BrandImage = brandImage
	req.Thumbnails = []*scoring.Image{thumbnail}
}

func (e *Evaluator) providerFailed(provider, channelID string, err error) {
	metrics.RecordProviderError(provider)
	log.Warn().
		Err(err).
		Str("provider", provider).
		Str("channel_id", channelID).
		Msg("Metric provider failed")
}
