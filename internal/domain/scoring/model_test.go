package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
		assert.Equal(t, 0.4, DefaultWeights().ROIWeight)
		assert.Equal(t, 0.4, CompareWeights().BrandWeight)
	})

	t.Run("clamp keeps sum unnormalized", func(t *testing.T) {
		w := WeightConfig{BrandWeight: 1.5, SentimentWeight: -0.2, ROIWeight: 0.7}.Clamp()

		assert.Equal(t, WeightConfig{BrandWeight: 1, SentimentWeight: 0, ROIWeight: 0.7}, w)
		assert.InDelta(t, 1.7, w.Sum(), 1e-9)
	})

	t.Run("clamp maps non-finite values into range", func(t *testing.T) {
		w := WeightConfig{BrandWeight: math.NaN(), SentimentWeight: math.Inf(1), ROIWeight: math.Inf(-1)}.Clamp()

		assert.Equal(t, WeightConfig{BrandWeight: 0, SentimentWeight: 1, ROIWeight: 0}, w)
	})
}
