// internal/handlers/study_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akira100e4/Flashcards/internal/model"
	"github.com/akira100e4/Flashcards/internal/service"
	"github.com/akira100e4/Flashcards/internal/webutil"
)

type StudyHandler struct {
	service service.StudyService
	logger  *slog.Logger
}

func NewStudyHandler(s service.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{service: s, logger: logger}
}

// StartSession creates a shuffled study session. An empty body starts a
// full-collection session in source-to-target mode.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	var req model.StartSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
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
	}

	resp, err := h.service.StartSession(r.Context(), &req)
	if err != nil {
		logger.Warn("Error starting study session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Study session started", slog.String("session_id", resp.SessionID.String()), slog.Int("total", resp.Total))
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// GetCurrentCard returns the session's current question, or the completion
// summary once the deck is exhausted.
func (h *StudyHandler) GetCurrentCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurrentCard"))

	sessionID, err := sessionIDParam(r)
	if err != nil {
		logger.Warn("Invalid session ID in URL", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.CurrentCard(r.Context(), sessionID)
	if err != nil {
		logger.Warn("Error getting current card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// SubmitAnswer registers the self-graded result for the current card and
// advances the session.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAnswer"))

	sessionID, err := sessionIDParam(r)
	if err != nil {
		logger.Warn("Invalid session ID in URL", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SubmitAnswerRequest
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

	resp, err := h.service.SubmitAnswer(r.Context(), sessionID, *req.Correct)
	if err != nil {
		logger.Warn("Error submitting answer in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// sessionIDParam parses the {session_id} URL parameter.
func sessionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "session_id")
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", "session_id is not a valid UUID.", "session_id", model.ErrInvalidInput)
	}
	return sessionID, nil
}
