// Package filestore persists the cart ledger as a JSON list in a single
// local file, the durable slot the storefront restores from on startup.
package filestore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/clothstore/storefront/internal/cart/domain"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted ledger. A missing file, unreadable JSON, or a
// payload that is not a list all mean "no saved cart": an empty ledger, not
// an error.
func (s *Store) Load() ([]domain.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Item{}, nil
		}
		return []domain.Item{}, err
	}

	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return []domain.Item{}, nil
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// Save rewrites the whole ledger. Carts are tens of items at most, so a full
// replace beats incremental bookkeeping.
func (s *Store) Save(items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(s.path, data, 0o644)
}
