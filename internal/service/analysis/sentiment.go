package analysis

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
)

// Sentiment labels
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Classifier 외부 감성 분류기 (댓글별 라벨)
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]string, error)
}

var (
	positiveWords = []string{
		"좋다", "최고", "대박", "완전", "진짜", "정말", "너무", "예쁘다", "멋지다", "훌륭하다",
		"감사", "고마워", "사랑", "행복", "기쁘다", "웃음", "재미", "유용", "도움", "추천",
	}
	negativeWords = []string{
		"싫다", "별로", "안좋다", "나쁘다", "최악", "짜증", "화나다", "실망", "후회", "문제",
		"어렵다", "힘들다", "복잡", "불편", "아쉽다", "부족", "비싸다", "느리다", "답답",
	}

	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

// DictionaryClassifier 사전 기반 분류기
type DictionaryClassifier struct{}

// Classify 긍정/부정 단어 수 비교
func (DictionaryClassifier) Classify(_ context.Context, texts []string) ([]string, error) {
	labels := make([]string, len(texts))
	for i, text := range texts {
		clean := punctuation.ReplaceAllString(strings.ToLower(text), "")

		pos, neg := 0, 0
		for _, w := range positiveWords {
			if strings.Contains(clean, w) {
				pos++
			}
		}
		for _, w := range negativeWords {
			if strings.Contains(clean, w) {
				neg++
			}
		}

		switch {
		case pos > neg:
			labels[i] = LabelPositive
		case neg > pos:
			labels[i] = LabelNegative
		default:
			labels[i] = LabelNeutral
		}
	}
	return labels, nil
}

// 좋아요/조회수 비율로 생성하는 샘플 댓글
var (
	positiveSamples = []string{"정말 유용한 영상이네요!", "감사합니다", "도움이 많이 됐어요", "최고예요", "구독했어요"}
	negativeSamples = []string{"별로네요", "아쉬워요", "기대했는데", "다음엔 더 좋게"}
	neutralSamples  = []string{"잘 봤어요", "괜찮네요", "그냥 그래요", "보통이에요"}
)

// ProxyComments 실제 댓글이 없을 때 영상별 좋아요 비율로 대체 댓글 생성.
// 비율 > 0.05 긍정, < 0.01 부정, 나머지 중립
func ProxyComments(videos []*scoring.Video) []string {
	var comments []string
	for _, v := range videos {
		views := v.ViewCount
		if views <= 0 {
			views = 1000
		}
		likes := v.LikeCount
		if likes <= 0 {
			likes = 10
		}

		ratio := float64(likes) / float64(views)
		switch {
		case ratio > 0.05:
			comments = append(comments, positiveSamples...)
		case ratio < 0.01:
			comments = append(comments, negativeSamples...)
		default:
			comments = append(comments, neutralSamples...)
		}
	}
	return comments
}

// SentimentAnalyzer 댓글(또는 대체 신호) 감성 점수
type SentimentAnalyzer struct {
	classifier *Handle[Classifier]
	fallback   Classifier
}

// NewSentimentAnalyzer classifier 가 nil 이거나 실패하면 사전 기반으로 대체
func NewSentimentAnalyzer(classifier *Handle[Classifier]) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		classifier: classifier,
		fallback:   DictionaryClassifier{},
	}
}

// Sentiment 영상 기반 대체 댓글로 감성 점수 계산
func (a *SentimentAnalyzer) Sentiment(ctx context.Context, _ *scoring.Influencer, videos []*scoring.Video) (*scoring.SentimentScore, error) {
	return a.Analyze(ctx, ProxyComments(videos))
}

// Analyze 댓글 리스트 점수화
func (a *SentimentAnalyzer) Analyze(ctx context.Context, comments []string) (*scoring.SentimentScore, error) {
	if len(comments) == 0 {
		// 분류기 기본값(50, 중립 분포)에도 보너스/페널티는 똑같이 적용
		return &scoring.SentimentScore{
			Score:         math.Round(adjustSentiment(emptyBaseScore, 0.33, 0.33, 0)*100) / 100,
			PositiveRatio: 0.33,
			NegativeRatio: 0.33,
			NeutralRatio:  0.34,
		}, nil
	}

	labels, err := a.classify(ctx, comments)
	if err != nil {
		return nil, err
	}

	var pos, neg, neu int
	for _, l := range labels {
		switch l {
		case LabelPositive:
			pos++
		case LabelNegative:
			neg++
		default:
			neu++
		}
	}

	total := float64(len(labels))
	posRatio := float64(pos) / total
	negRatio := float64(neg) / total
	neuRatio := float64(neu) / total

	return &scoring.SentimentScore{
		Score:         math.Round(AdjustedSentimentScore(posRatio, negRatio, neuRatio, len(labels))*100) / 100,
		PositiveRatio: posRatio,
		NegativeRatio: negRatio,
		NeutralRatio:  neuRatio,
		TotalComments: len(labels),
	}, nil
}

func (a *SentimentAnalyzer) classify(ctx context.Context, comments []string) ([]string, error) {
	if a.classifier != nil {
		classifier, err := a.classifier.Get()
		if err == nil {
			labels, err := classifier.Classify(ctx, comments)
			if err == nil && len(labels) == len(comments) {
				return labels, nil
			}
			log.Warn().Err(err).Msg("Sentiment classifier failed, using dictionary")
		}
	}
	return a.fallback.Classify(ctx, comments)
}

// AdjustedSentimentScore 기본 점수 (pos*100 + neu*50)*0.8 + 20 에
// 긍정 보너스(30), 부정 페널티(40), 댓글 수 보너스(최대 10)를 적용해 [0,100]으로 자름
func AdjustedSentimentScore(posRatio, negRatio, neuRatio float64, comments int) float64 {
	base := (posRatio*100+neuRatio*50)*0.8 + 20
	base = math.Max(0, math.Min(100, base))

	return adjustSentiment(base, posRatio, negRatio, comments)
}

// emptyBaseScore 댓글이 없을 때 분류 단계 점수
const emptyBaseScore = 50.0

func adjustSentiment(base, posRatio, negRatio float64, comments int) float64 {
	commentBonus := math.Min(10, float64(comments)/10)
	adjusted := base + posRatio*30 - negRatio*40 + commentBonus

	return math.Max(0, math.Min(100, adjusted))
}
