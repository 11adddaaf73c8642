package analysis

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

// 보너스/페널티
const (
	bonusCategoryInDescription = 20.0
	bonusToneInDescription     = 10.0
	bonusCategoryInTitle       = 10.0
	bonusThumbnails            = 5.0
	penaltyNoMatch             = 20.0

	minThumbnailsForBonus = 3
	maxTitlesForText      = 10

	imageWeight = 0.4
	textWeight  = 0.6
)

// BrandAnalyzer 이미지 + 텍스트 유사도와 키워드 매칭으로 브랜드 적합도 계산
type BrandAnalyzer struct {
	text  *Handle[TextSimilarity]
	image *Handle[ImageSimilarity]
}

// NewBrandAnalyzer 핸들이 nil 이면 해당 유사도는 중립(50)으로 처리
func NewBrandAnalyzer(text *Handle[TextSimilarity], image *Handle[ImageSimilarity]) *BrandAnalyzer {
	return &BrandAnalyzer{text: text, image: image}
}

// BrandCompatibility 브랜드 적합도
func (a *BrandAnalyzer) BrandCompatibility(ctx context.Context, req svc.BrandRequest) (*scoring.BrandScore, error) {
	project := req.Project
	candidate := req.Candidate

	titles := make([]string, 0, len(req.Videos))
	for _, v := range req.Videos {
		if v.Title != "" {
			titles = append(titles, v.Title)
		}
	}

	imageScore := a.imageScore(ctx, req)
	textScore := a.textScore(ctx, BrandText(project), ChannelText(candidate.Description, titles))

	base := imageScore*imageWeight + textScore*textWeight

	category := strings.ToLower(project.BrandCategories)
	tone := strings.ToLower(string(project.BrandTone))
	description := strings.ToLower(candidate.Description)

	var bonus float64
	if category != "" && strings.Contains(description, category) {
		bonus += bonusCategoryInDescription
	}
	if tone != "" && strings.Contains(description, tone) {
		bonus += bonusToneInDescription
	}
	if category != "" && anyContains(titles, category) {
		bonus += bonusCategoryInTitle
	}
	if len(req.Thumbnails) >= minThumbnailsForBonus {
		bonus += bonusThumbnails
	}

	var penalty float64
	if bonus == 0 {
		penalty = penaltyNoMatch
	}

	total := math.Max(0, math.Min(100, base+bonus-penalty))

	return &scoring.BrandScore{
		Score: total,
		Details: scoring.BrandDetails{
			ImageSimilarity:    round2(imageScore),
			TextCompatibility:  round2(textScore),
			MatchBonus:         bonus,
			Penalty:            penalty,
			BrandCategory:      project.BrandCategories,
			AnalysisMethod:     "image-hash + keyword-cosine",
			ThumbnailsAnalyzed: len(req.Thumbnails),
			TitlesAnalyzed:     len(titles),
			HasBrandImage:      project.BrandImagePath != "",
		},
	}, nil
}

func (a *BrandAnalyzer) imageScore(ctx context.Context, req svc.BrandRequest) float64 {
	if req.BrandImage == nil || len(req.Thumbnails) == 0 || a.image == nil {
		return 50.0
	}

	sim, err := a.image.Get()
	if err != nil {
		return 50.0
	}

	v, err := sim.Similarity(ctx, req.BrandImage, req.Thumbnails)
	if err != nil {
		log.Warn().Err(err).Str("channel_id", req.Candidate.ChannelID).Msg("Image similarity failed")
		return 50.0
	}
	return SimilarityToScore(v)
}

func (a *BrandAnalyzer) textScore(ctx context.Context, brandText, channelText string) float64 {
	if a.text == nil {
		return 50.0
	}

	sim, err := a.text.Get()
	if err != nil {
		return 50.0
	}

	v, err := sim.Similarity(ctx, brandText, channelText)
	if err != nil {
		log.Warn().Err(err).Msg("Text similarity failed")
		return 50.0
	}
	return SimilarityToScore(v)
}

// BrandText 캠페인 목표 + 톤 + 카테고리
func BrandText(p *scoring.Project) string {
	return p.CampaignGoal + " " + string(p.BrandTone) + " " + p.BrandCategories
}

// ChannelText 채널 설명 + 최근 영상 제목 10개
func ChannelText(description string, titles []string) string {
	if len(titles) > maxTitlesForText {
		titles = titles[:maxTitlesForText]
	}
	return description + " " + strings.Join(titles, " ")
}

func anyContains(titles []string, needle string) bool {
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
