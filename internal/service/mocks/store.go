// internal/service/mocks/store.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/akira100e4/Flashcards/internal/model"
)

// Store is a testify mock of storage.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Load(ctx context.Context) (*model.Collection, error) {
	args := m.Called(ctx)
	var collection *model.Collection
	if args.Get(0) != nil {
		collection = args.Get(0).(*model.Collection)
	}
	return collection, args.Error(1)
}

func (m *Store) Save(ctx context.Context, collection *model.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}
