// internal/storage/json_store.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akira100e4/Flashcards/internal/model"
)

// Store is the persistence handle the services operate on. Implementations
// round-trip the collection record losslessly; the core never depends on
// the encoding.
type Store interface {
	Load(ctx context.Context) (*model.Collection, error)
	Save(ctx context.Context, collection *model.Collection) error
}

// collectionRecord is the persisted document: an ordered list of card
// records.
type collectionRecord struct {
	Cards []*model.Card `json:"cards"`
}

// FileStore persists the collection as a single JSON document on disk.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection from disk. A missing file is not an error: it
// yields an empty collection, matching first-run behavior.
func (s *FileStore) Load(ctx context.Context) (*model.Collection, error) {
	collection, err := readCollection(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(ctx, "storage file not found, starting empty", slog.String("path", s.path))
			return model.NewCollection(), nil
		}
		return nil, err
	}
	return collection, nil
}

// Save writes the collection atomically: the document is written to a temp
// file in the same directory and renamed over the target.
func (s *FileStore) Save(ctx context.Context, collection *model.Collection) error {
	if err := writeCollection(s.path, collection); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "collection saved",
		slog.String("path", s.path),
		slog.Int("cards", collection.Len()))
	return nil
}

// ExportBackup writes a copy of the collection to an arbitrary path.
func (s *FileStore) ExportBackup(ctx context.Context, collection *model.Collection, backupPath string) error {
	if err := writeCollection(backupPath, collection); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "backup exported", slog.String("path", backupPath))
	return nil
}

// ImportBackup reads a collection from an arbitrary path. Unlike Load, a
// missing backup file is an error.
func (s *FileStore) ImportBackup(ctx context.Context, backupPath string) (*model.Collection, error) {
	collection, err := readCollection(backupPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("backup %s: %w", backupPath, model.ErrNotFound)
		}
		return nil, err
	}
	return collection, nil
}

func readCollection(path string) (*model.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record collectionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	collection := model.NewCollection()
	for i, card := range record.Cards {
		if card == nil {
			return nil, fmt.Errorf("decoding %s: null card record at index %d", path, i)
		}
		if err := card.Normalize(); err != nil {
			return nil, fmt.Errorf("decoding %s: card record at index %d: %w", path, i, err)
		}
		collection.Add(card)
	}
	return collection, nil
}

func writeCollection(path string, collection *model.Collection) error {
	record := collectionRecord{Cards: collection.Cards()}
	if record.Cards == nil {
		record.Cards = []*model.Card{}
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating storage directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".flashcards-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
