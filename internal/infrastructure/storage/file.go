package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/volantino/backend/internal/domain"
)

// FileCartStore persists the cart as a plain JSON array in a single file,
// mirroring the single-key local storage the workflow expects: every save
// replaces the whole file, there is no expiry, and corrupt or missing state
// loads as an empty cart.
type FileCartStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileCartStore creates a file-backed cart store at the given path,
// creating parent directories as needed.
func NewFileCartStore(path string) (*FileCartStore, error) {
	if path == "" {
		return nil, errors.New("cart store path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart store directory: %w", err)
	}

	return &FileCartStore{path: path}, nil
}

// Load reads the persisted cart. Missing or undecodable state yields an
// empty cart, never an error the caller has to handle.
func (s *FileCartStore) Load(ctx context.Context) (domain.Cart, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[STORAGE] cart file unreadable, starting empty: %v", err)
		}
		return domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("[STORAGE] cart file corrupt, starting empty: %v", err)
		return domain.Cart{}, nil
	}

	return cart, nil
}

// Save overwrites the persisted cart with the given one. A nil cart is
// stored as an empty array so the file always holds valid JSON.
func (s *FileCartStore) Save(ctx context.Context, cart domain.Cart) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if cart == nil {
		cart = domain.Cart{}
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts the cart
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cart file: %w", err)
	}

	return nil
}
