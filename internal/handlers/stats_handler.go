// internal/handlers/stats_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/akira100e4/Flashcards/internal/service"
	"github.com/akira100e4/Flashcards/internal/webutil"
)

type StatsHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewStatsHandler(s service.CardService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{service: s, logger: logger}
}

// GetStatistics returns the collection-wide aggregates.
func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStatistics"))

	stats, err := h.service.GetStatistics(r.Context())
	if err != nil {
		logger.Error("Error getting statistics in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// GetCategoryStatistics returns per-category aggregates, ordered by name.
func (h *StatsHandler) GetCategoryStatistics(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategoryStatistics"))

	stats, err := h.service.GetCategoryStatistics(r.Context())
	if err != nil {
		logger.Error("Error getting category statistics in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// GetCategories returns the sorted distinct category names.
func (h *StatsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategories"))

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		logger.Error("Error listing categories in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, categories, logger)
}
