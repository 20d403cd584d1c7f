// internal/handlers/stats_handler_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akira100e4/Flashcards/internal/model"
)

func TestGetCategories(t *testing.T) {
	r := newTestRouter(t)

	t.Run("empty collection", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet, "/api/v1/categories", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("sorted distinct names", func(t *testing.T) {
		importText(t, r, seedText)

		rec := doRequest(t, r, http.MethodGet, "/api/v1/categories", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["Nouns", "Verbs"]`, rec.Body.String())
	})
}

func TestGetStatistics(t *testing.T) {
	t.Run("empty collection reports zeros", func(t *testing.T) {
		r := newTestRouter(t)

		rec := doRequest(t, r, http.MethodGet, "/api/v1/statistics", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decodeBody[model.GeneralStatistics](t, rec)
		assert.Zero(t, stats.TotalCards)
		assert.Zero(t, stats.MeanSuccessRate)
	})

	t.Run("aggregates over the collection", func(t *testing.T) {
		r := newTestRouter(t)
		importText(t, r, seedText)

		rec := doRequest(t, r, http.MethodGet, "/api/v1/statistics", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decodeBody[model.GeneralStatistics](t, rec)
		assert.Equal(t, 3, stats.TotalCards)
		assert.Equal(t, 1, stats.WithPriorityCount)
		assert.Equal(t, 2, stats.CategoryCount)
		assert.Zero(t, stats.TotalAttemptsSum)
	})
}

func TestGetCategoryStatistics(t *testing.T) {
	r := newTestRouter(t)
	importText(t, r, seedText)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/statistics/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody[[]model.CategoryStatistics](t, rec)
	require.Len(t, stats, 2)
	assert.Equal(t, "Nouns", stats[0].Category)
	assert.Equal(t, 2, stats[0].TotalCards)
	assert.Equal(t, 2, stats[0].UnstudiedCount)
	assert.Equal(t, "Verbs", stats[1].Category)
	assert.Equal(t, 1, stats[1].TotalCards)
}
