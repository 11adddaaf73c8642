package scoring

import (
	"context"

	"github.com/wonny/influroi/internal/domain/scoring"
)

// Provider names (로그/메트릭 라벨)
const (
	ProviderBrand     = "brand"
	ProviderSentiment = "sentiment"
	ProviderROI       = "roi"
)

// BrandRequest 브랜드 적합도 입력
type BrandRequest struct {
	Project    *scoring.Project
	Candidate  *scoring.Influencer
	Videos     []*scoring.Video
	BrandImage *scoring.Image   // nil 이면 이미지 분석 생략
	Thumbnails []*scoring.Image // 비어 있으면 이미지 분석 생략
}

// BrandProvider 브랜드/이미지 적합도 (0-100)
type BrandProvider interface {
	BrandCompatibility(ctx context.Context, req BrandRequest) (*scoring.BrandScore, error)
}

// SentimentProvider 시청자 감성 (0-100 + 비율)
type SentimentProvider interface {
	Sentiment(ctx context.Context, candidate *scoring.Influencer, videos []*scoring.Video) (*scoring.SentimentScore, error)
}

// ROIProvider ROI 추정 (0-100 + 예상 조회수/비용)
type ROIProvider interface {
	EstimateROI(ctx context.Context, candidate *scoring.Influencer) (*scoring.ROIEstimate, error)
}

// ImageLoader 브랜드 이미지/채널 썸네일 로더
type ImageLoader interface {
	LoadBrandImage(ctx context.Context, path string) (*scoring.Image, error)
	LoadThumbnail(ctx context.Context, url string) (*scoring.Image, error)
}

// Providers 배치/분석 경로에 주입되는 지표 제공자 묶음.
// Images 가 nil 이면 이미지 분석을 하지 않는다.
type Providers struct {
	Brand     BrandProvider
	Sentiment SentimentProvider
	ROI       ROIProvider
	Images    ImageLoader
}
