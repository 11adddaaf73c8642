package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/influroi/internal/domain/scoring"
)

func TestHomeEndpoints(t *testing.T) {
	f := seededService()
	f.channels["c1"].SubscriberCount = 50_000
	engine := newTestEngine(f, t.TempDir())

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("cards in random order", func(t *testing.T) {
		w := get("/api/home/youtubers?limit=10")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, scoring.OrderRandom, f.gotOrder)
		assert.Equal(t, 10, f.gotLimit)

		var cards []scoring.ChannelCard
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &cards))
		require.Len(t, cards, 2)
		for _, card := range cards {
			assert.Equal(t, scoring.UncategorizedLabel, card.Category)
			assert.NotEmpty(t, card.EstimatedPrice)
		}
	})

	t.Run("sorted defaults to followers", func(t *testing.T) {
		require.Equal(t, http.StatusOK, get("/api/home/youtubers/sorted").Code)
		assert.Equal(t, scoring.OrderFollowers, f.gotOrder)

		require.Equal(t, http.StatusOK, get("/api/home/youtubers/sorted?sort_by=price").Code)
		assert.Equal(t, scoring.OrderPrice, f.gotOrder)

		w := get("/api/home/youtubers/sorted?sort_by=views")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_PARAMETER", decode(t, w).Error.Code)
	})

	t.Run("popular", func(t *testing.T) {
		w := get("/api/home/popular?top_n=5")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, f.gotLimit)
		assert.Contains(t, w.Body.String(), `"data":[]`)

		assert.Equal(t, http.StatusBadRequest, get("/api/home/popular?top_n=x").Code)
	})
}
