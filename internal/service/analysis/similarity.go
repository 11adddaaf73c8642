package analysis

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// TextSimilarity 두 텍스트의 코사인 유사도 [-1, 1]
type TextSimilarity interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

var keywordPattern = regexp.MustCompile(`[가-힣a-zA-Z0-9]+`)

// Keywords 한글/영문/숫자 토큰 중 2글자 이상 (소문자)
func Keywords(text string) []string {
	var out []string
	for _, w := range keywordPattern.FindAllString(text, -1) {
		if len([]rune(w)) < 2 {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out
}

// KeywordSimilarity 키워드 빈도 벡터 코사인 유사도.
// 임베딩 모델이 없을 때 쓰는 기본 구현
type KeywordSimilarity struct{}

// Similarity 공통 키워드가 없으면 0
func (KeywordSimilarity) Similarity(_ context.Context, a, b string) (float64, error) {
	va := termFrequency(Keywords(a))
	vb := termFrequency(Keywords(b))
	if len(va) == 0 || len(vb) == 0 {
		return 0, nil
	}

	var dot, na, nb float64
	for term, x := range va {
		na += x * x
		if y, ok := vb[term]; ok {
			dot += x * y
		}
	}
	for _, y := range vb {
		nb += y * y
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

func termFrequency(words []string) map[string]float64 {
	tf := make(map[string]float64, len(words))
	for _, w := range words {
		tf[w]++
	}
	return tf
}

// SimilarityToScore 코사인 유사도 [-1,1] → [0,100]
func SimilarityToScore(sim float64) float64 {
	return math.Max(0, math.Min(100, (sim+1)*50))
}
