// internal/handlers/router_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/akira100e4/Flashcards/internal/handlers"
	"github.com/akira100e4/Flashcards/internal/service"
	"github.com/akira100e4/Flashcards/internal/storage"
)

// newTestRouter wires the API routes over a real file store in a temp
// directory, so handler tests exercise the whole stack below the HTTP
// layer.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "flashcards.json"), logger)
	cardService := service.NewCardService(store, "")
	studyService := service.NewStudyService(store, 0, rand.New(rand.NewSource(1)))

	cardHandler := handlers.NewCardHandler(cardService, logger)
	statsHandler := handlers.NewStatsHandler(cardService, logger)
	studyHandler := handlers.NewStudyHandler(studyService, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.GetCards)
			r.Post("/import", cardHandler.ImportCards)
			r.Get("/search", cardHandler.SearchCards)
			r.Get("/export", cardHandler.ExportCards)
			r.Delete("/{index}", cardHandler.DeleteCard)
			r.Post("/{index}/priority", cardHandler.TogglePriority)
		})
		r.Get("/categories", statsHandler.GetCategories)
		r.Route("/statistics", func(r chi.Router) {
			r.Get("/", statsHandler.GetStatistics)
			r.Get("/categories", statsHandler.GetCategoryStatistics)
		})
		r.Route("/study/sessions", func(r chi.Router) {
			r.Post("/", studyHandler.StartSession)
			r.Get("/{session_id}", studyHandler.GetCurrentCard)
			r.Post("/{session_id}/answer", studyHandler.SubmitAnswer)
		})
	})
	return r
}

func doRequest(t *testing.T, r chi.Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// importText seeds the store through the import endpoint.
func importText(t *testing.T, r chi.Router, text string) {
	t.Helper()

	rec := doRequest(t, r, http.MethodPost, "/api/v1/cards/import", map[string]string{"text": text})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
