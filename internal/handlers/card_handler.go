// internal/handlers/card_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akira100e4/Flashcards/internal/model"
	"github.com/akira100e4/Flashcards/internal/service"
	"github.com/akira100e4/Flashcards/internal/webutil"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{service: s, logger: logger}
}

// GetCards lists cards with their derived statistics. The optional
// category, level and priority query parameters narrow the listing;
// positions in the response always refer to the full collection.
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

	q := r.URL.Query()
	filter := model.CardListFilter{
		Category: q.Get("category"),
		Level:    q.Get("level"),
		Priority: q.Get("priority") == "true",
	}

	cards, err := h.service.ListCards(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.CardResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// ImportCards parses the posted text and appends the resulting cards.
func (h *CardHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportCards"))

	var req model.ImportCardsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "The request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	count, diagnostics, err := h.service.ImportText(r.Context(), req.Text, req.DefaultCategory)
	if err != nil {
		logger.Warn("Error importing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Cards imported", slog.Int("count", count), slog.Int("skipped", len(diagnostics)))
	webutil.RespondWithJSON(w, http.StatusCreated, model.ImportCardsResponse{
		Count:       count,
		Diagnostics: diagnostics,
	}, logger)
}

// DeleteCard removes the card at the position given in the URL.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	index, err := indexParam(r)
	if err != nil {
		logger.Warn("Invalid index in URL", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.RemoveCard(r.Context(), index); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found", slog.Int("index", index))
		} else {
			logger.Error("Error removing card in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted", slog.Int("index", index))
	w.WriteHeader(http.StatusNoContent)
}

// TogglePriority flips the priority flag of the card at the given position.
func (h *CardHandler) TogglePriority(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "TogglePriority"))

	index, err := indexParam(r)
	if err != nil {
		logger.Warn("Invalid index in URL", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.TogglePriority(r.Context(), index)
	if err != nil {
		logger.Warn("Error toggling priority in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// SearchCards returns the cards matching the q query parameter.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SearchCards"))

	cards, err := h.service.SearchCards(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		logger.Warn("Error searching cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.CardResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// ExportCards renders the collection in the import text format.
func (h *CardHandler) ExportCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ExportCards"))

	text, err := h.service.ExportText(r.Context())
	if err != nil {
		logger.Error("Error exporting cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// indexParam parses the {index} URL parameter as a card position.
func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, model.NewAppError("INVALID_URL_PARAM", "index must be a non-negative integer.", "index", model.ErrInvalidInput)
	}
	return index, nil
}
