// internal/service/study_service.go
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akira100e4/Flashcards/internal/middleware"
	"github.com/akira100e4/Flashcards/internal/model"
	"github.com/akira100e4/Flashcards/internal/storage"
)

// sessionCard snapshots the identity of a card in a session deck. Answers
// are applied to the stored collection by term-pair lookup, so a card
// removed mid-session simply stops receiving updates instead of corrupting
// positions.
type sessionCard struct {
	SourceTerm string
	TargetTerm string
	Priority   bool
}

type studySession struct {
	ID        uuid.UUID
	Mode      string
	Deck      []sessionCard
	Index     int
	Correct   int
	StartedAt time.Time
}

// StudyService runs quiz sessions: a shuffled deck drawn from the
// collection, one card at a time, with self-graded answers written back to
// the per-card statistics.
type StudyService interface {
	StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.StartSessionResponse, error)
	CurrentCard(ctx context.Context, sessionID uuid.UUID) (*model.StudyCardResponse, error)
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, correct bool) (*model.SubmitAnswerResponse, error)
}

type studyService struct {
	mu        sync.Mutex
	store     storage.Store
	sessions  map[uuid.UUID]*studySession
	threshold float64
	rng       *rand.Rand
}

// NewStudyService wires a study service over the given store. The
// threshold is the success-rate cutoff for difficult-only sessions; zero
// or negative falls back to the default. The rand source is explicit so
// tests can pass a seeded one; pass nil for a time-seeded default.
func NewStudyService(store storage.Store, threshold float64, rng *rand.Rand) StudyService {
	if threshold <= 0 {
		threshold = model.DefaultDifficultyThreshold
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &studyService{
		store:     store,
		sessions:  make(map[uuid.UUID]*studySession),
		threshold: threshold,
		rng:       rng,
	}
}

func (s *studyService) StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.StartSessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	mode := req.Mode
	if mode == "" {
		mode = model.ModeSourceToTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load collection for study session", "error", err)
		return nil, model.ErrInternalServer
	}

	pool := collection
	if req.DifficultOnly {
		pool = model.NewCollectionFromCards(collection.FilterByDifficulty(s.threshold))
	}
	cards := pool.RandomSample(req.Count, req.Categories, s.rng)
	if len(cards) == 0 {
		return nil, model.NewAppError("NO_CARDS", "There are no cards to study.", "", model.ErrNotFound)
	}

	session := &studySession{
		ID:        uuid.New(),
		Mode:      mode,
		Deck:      make([]sessionCard, 0, len(cards)),
		StartedAt: time.Now(),
	}
	for _, card := range cards {
		session.Deck = append(session.Deck, sessionCard{
			SourceTerm: card.SourceTerm,
			TargetTerm: card.TargetTerm,
			Priority:   card.Priority,
		})
	}
	s.sessions[session.ID] = session

	logger.Info("Study session started",
		"session_id", session.ID,
		"mode", mode,
		"total", len(session.Deck))
	return &model.StartSessionResponse{
		SessionID: session.ID,
		Mode:      mode,
		Total:     len(session.Deck),
	}, nil
}

func (s *studyService) CurrentCard(ctx context.Context, sessionID uuid.UUID) (*model.StudyCardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "Unknown study session.", "session_id", model.ErrNotFound)
	}

	if session.Index >= len(session.Deck) {
		return &model.StudyCardResponse{
			Completed: true,
			Index:     session.Index,
			Total:     len(session.Deck),
			Correct:   session.Correct,
		}, nil
	}

	card := session.Deck[session.Index]
	question, answer := card.SourceTerm, card.TargetTerm
	if session.Mode == model.ModeTargetToSource {
		question, answer = card.TargetTerm, card.SourceTerm
	}
	return &model.StudyCardResponse{
		Question: question,
		Answer:   answer,
		Priority: card.Priority,
		Index:    session.Index,
		Total:    len(session.Deck),
		Correct:  session.Correct,
	}, nil
}

func (s *studyService) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, correct bool) (*model.SubmitAnswerResponse, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "Unknown study session.", "session_id", model.ErrNotFound)
	}
	if session.Index >= len(session.Deck) {
		return nil, model.NewAppError("SESSION_COMPLETED", "The study session is already completed.", "", model.ErrConflict)
	}

	current := session.Deck[session.Index]
	if err := s.registerAnswer(ctx, current, correct); err != nil {
		logger.Error("Failed to register answer", "error", err, "session_id", sessionID)
		return nil, model.ErrInternalServer
	}

	if correct {
		session.Correct++
	}
	session.Index++

	resp := &model.SubmitAnswerResponse{
		Completed: session.Index >= len(session.Deck),
		Index:     session.Index,
		Total:     len(session.Deck),
		Correct:   session.Correct,
	}
	// The session stays registered after completion so the final summary
	// remains fetchable via CurrentCard.
	if resp.Completed {
		logger.Info("Study session completed",
			"session_id", sessionID,
			"correct", session.Correct,
			"total", len(session.Deck))
	}
	return resp, nil
}

// registerAnswer updates the statistics of the collection card matching the
// session card's term pair and persists the collection. A card that was
// removed mid-session is silently skipped.
func (s *studyService) registerAnswer(ctx context.Context, sc sessionCard, correct bool) error {
	collection, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	for _, card := range collection.Cards() {
		if card.SourceTerm == sc.SourceTerm && card.TargetTerm == sc.TargetTerm {
			card.RegisterAnswer(correct)
			return s.store.Save(ctx, collection)
		}
	}
	return nil
}
