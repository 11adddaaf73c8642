package analysis

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // decoder registration
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"math/bits"

	"github.com/wonny/influroi/internal/domain/scoring"
)

// ImageSimilarity 브랜드 이미지와 썸네일들의 평균 코사인 유사도 [-1, 1]
type ImageSimilarity interface {
	Similarity(ctx context.Context, brand *scoring.Image, thumbnails []*scoring.Image) (float64, error)
}

const hashSide = 8

// maxImagePixels 디코딩 허용 최대 픽셀 수 (4096x4096).
// 헤더만 큰 이미지가 디코더 메모리를 잡아먹지 않도록 먼저 확인한다
const maxImagePixels = 4096 * 4096

// AverageHashSimilarity 8x8 평균 해시 기반 유사도.
// 해밍 거리 0 → 1, 64 → -1
type AverageHashSimilarity struct{}

// Similarity 썸네일별 유사도 평균. 디코딩 실패한 썸네일은 건너뜀
func (AverageHashSimilarity) Similarity(_ context.Context, brand *scoring.Image, thumbnails []*scoring.Image) (float64, error) {
	if brand == nil || len(thumbnails) == 0 {
		return 0, fmt.Errorf("brand image and thumbnails required")
	}

	brandHash, err := AverageHash(brand.Data)
	if err != nil {
		return 0, fmt.Errorf("brand image: %w", err)
	}

	var sum float64
	var n int
	for _, thumb := range thumbnails {
		if thumb == nil {
			continue
		}
		h, err := AverageHash(thumb.Data)
		if err != nil {
			continue
		}
		sum += HashSimilarity(brandHash, h)
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("no decodable thumbnails")
	}
	return sum / float64(n), nil
}

// AverageHash 이미지를 8x8 회색조로 줄여 평균보다 밝은 칸을 1로 표시
func AverageHash(data []byte) (uint64, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return 0, fmt.Errorf("image dimensions %dx%d out of range", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, fmt.Errorf("empty image")
	}

	var cells [hashSide * hashSide]float64
	var counts [hashSide * hashSide]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		cy := (y - b.Min.Y) * hashSide / b.Dy()
		for x := b.Min.X; x < b.Max.X; x++ {
			cx := (x - b.Min.X) * hashSide / b.Dx()
			r, g, bl, _ := img.At(x, y).RGBA()
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
			cells[cy*hashSide+cx] += lum
			counts[cy*hashSide+cx]++
		}
	}

	var mean float64
	var filled int
	for i := range cells {
		if counts[i] > 0 {
			cells[i] /= float64(counts[i])
			mean += cells[i]
			filled++
		}
	}
	mean /= float64(filled)

	var hash uint64
	for i := range cells {
		if counts[i] > 0 && cells[i] > mean {
			hash |= 1 << uint(i)
		}
	}
	return hash, nil
}

// HashSimilarity 1 - 2*hamming/64
func HashSimilarity(a, b uint64) float64 {
	distance := bits.OnesCount64(a ^ b)
	return 1 - 2*float64(distance)/float64(hashSide*hashSide)
}
