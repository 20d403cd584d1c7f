// internal/service/card_service.go
package service

import (
	"context"
	"strings"
	"sync"

	"github.com/akira100e4/Flashcards/internal/middleware"
	"github.com/akira100e4/Flashcards/internal/model"
	"github.com/akira100e4/Flashcards/internal/parser"
	"github.com/akira100e4/Flashcards/internal/storage"
)

// CardService owns the collection lifecycle: bulk import, listing, removal,
// priority toggling, search, and aggregates. Every call loads the
// collection from the injected store and, when it mutates, saves it back;
// the mutex serializes those read-modify-write cycles because the core
// collection assumes exclusive access per call.
type CardService interface {
	ImportText(ctx context.Context, text, defaultCategory string) (int, []model.ParseDiagnostic, error)
	ListCards(ctx context.Context, filter model.CardListFilter) ([]*model.CardResponse, error)
	RemoveCard(ctx context.Context, index int) error
	TogglePriority(ctx context.Context, index int) (*model.TogglePriorityResponse, error)
	SearchCards(ctx context.Context, term string) ([]*model.CardResponse, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetStatistics(ctx context.Context) (*model.GeneralStatistics, error)
	GetCategoryStatistics(ctx context.Context) ([]*model.CategoryStatistics, error)
	ExportText(ctx context.Context) (string, error)
}

type cardService struct {
	mu              sync.Mutex
	store           storage.Store
	defaultCategory string
}

func NewCardService(store storage.Store, defaultCategory string) CardService {
	if strings.TrimSpace(defaultCategory) == "" {
		defaultCategory = model.DefaultCategory
	}
	return &cardService{
		store:           store,
		defaultCategory: defaultCategory,
	}
}

func (s *cardService) ImportText(ctx context.Context, text, defaultCategory string) (int, []model.ParseDiagnostic, error) {
	logger := middleware.GetLogger(ctx)

	if strings.TrimSpace(text) == "" {
		return 0, nil, model.NewAppError("EMPTY_TEXT", "No text to import.", "text", model.ErrInvalidInput)
	}
	if strings.TrimSpace(defaultCategory) == "" {
		defaultCategory = s.defaultCategory
	}

	cards, diagnostics := parser.ParseText(text, defaultCategory)
	if len(cards) == 0 {
		return 0, diagnostics, model.NewAppError("NO_VALID_CARDS", "No valid card lines found in the text.", "text", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load collection for import", "error", err)
		return 0, nil, model.ErrInternalServer
	}
	for _, card := range cards {
		collection.Add(card)
	}
	if err := s.store.Save(ctx, collection); err != nil {
		logger.Error("Failed to save collection after import", "error", err)
		return 0, nil, model.ErrInternalServer
	}

	logger.Info("Cards imported", "count", len(cards), "skipped", len(diagnostics))
	return len(cards), diagnostics, nil
}

func (s *cardService) ListCards(ctx context.Context, filter model.CardListFilter) ([]*model.CardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load collection", "error", err)
		return nil, model.ErrInternalServer
	}
	if filter.IsZero() {
		return cardResponses(collection.Cards()), nil
	}

	filtered := collection.Cards()
	if filter.Category != "" {
		filtered = collection.FilterByCategory(filter.Category)
	}
	if filter.Priority {
		filtered = model.NewCollectionFromCards(filtered).FilterByPriority()
	}
	if filter.Level != "" {
		filtered = model.NewCollectionFromCards(filtered).FilterByLevel(filter.Level)
	}
	return indexedResponses(collection, filtered), nil
}

func (s *cardService) RemoveCard(ctx context.Context, index int) error {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load collection for removal", "error", err)
		return model.ErrInternalServer
	}

	// Collection.Remove treats out-of-range as a no-op; the API contract
	// wants a 404, so pre-check here.
	if _, ok := collection.Get(index); !ok {
		return model.NewAppError("CARD_NOT_FOUND", "No card at the given index.", "index", model.ErrNotFound)
	}
	collection.Remove(index)

	if err := s.store.Save(ctx, collection); err != nil {
		logger.Error("Failed to save collection after removal", "error", err)
		return model.ErrInternalServer
	}
	logger.Info("Card removed", "index", index)
	return nil
}

func (s *cardService) TogglePriority(ctx context.Context, index int) (*model.TogglePriorityResponse, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load collection for priority toggle", "error", err)
		return nil, model.ErrInternalServer
	}

	card, ok := collection.Get(index)
	if !ok {
		return nil, model.NewAppError("CARD_NOT_FOUND", "No card at the given index.", "index", model.ErrNotFound)
	}
	card.Priority = !card.Priority

	if err := s.store.Save(ctx, collection); err != nil {
		logger.Error("Failed to save collection after priority toggle", "error", err)
		return nil, model.ErrInternalServer
	}
	return &model.TogglePriorityResponse{Index: index, Priority: card.Priority}, nil
}

func (s *cardService) SearchCards(ctx context.Context, term string) ([]*model.CardResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, model.NewAppError("EMPTY_QUERY", "Search term must not be empty.", "q", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load collection for search", "error", err)
		return nil, model.ErrInternalServer
	}

	return indexedResponses(collection, collection.Search(term)), nil
}

func (s *cardService) ListCategories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load collection for categories", "error", err)
		return nil, model.ErrInternalServer
	}
	return collection.Categories(), nil
}

func (s *cardService) GetStatistics(ctx context.Context) (*model.GeneralStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load collection for statistics", "error", err)
		return nil, model.ErrInternalServer
	}
	return collection.GeneralStatistics(), nil
}

func (s *cardService) GetCategoryStatistics(ctx context.Context) ([]*model.CategoryStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load collection for category statistics", "error", err)
		return nil, model.ErrInternalServer
	}
	return collection.StatisticsByCategory(), nil
}

func (s *cardService) ExportText(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load collection for export", "error", err)
		return "", model.ErrInternalServer
	}
	return parser.CollectionToText(collection.Cards(), s.defaultCategory), nil
}

func cardResponses(cards []*model.Card) []*model.CardResponse {
	responses := make([]*model.CardResponse, 0, len(cards))
	for i, card := range cards {
		responses = append(responses, model.NewCardResponse(i, card))
	}
	return responses
}

// indexedResponses builds responses for a filtered subset. Each response
// carries the card's position in the full collection, not in the subset,
// so removal and toggling keep working on filtered results.
func indexedResponses(collection *model.Collection, cards []*model.Card) []*model.CardResponse {
	indexOf := make(map[*model.Card]int, collection.Len())
	for i, card := range collection.Cards() {
		indexOf[card] = i
	}
	responses := make([]*model.CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, model.NewCardResponse(indexOf[card], card))
	}
	return responses
}
