package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/volantino/backend/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteCartStore persists the cart in a local sqlite database. Save
// replaces the whole cart in one transaction, keeping the same full-replace
// semantics as the file store.
type SQLiteCartStore struct {
	db *sql.DB
}

// NewSQLiteCartStore opens (or creates) the cart database at the given path.
func NewSQLiteCartStore(path string) (*SQLiteCartStore, error) {
	if path == "" {
		return nil, errors.New("cart store path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteCartStore{db: db}, nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS cart_items (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	nome TEXT NOT NULL,
	marca TEXT NOT NULL DEFAULT '',
	prezzo TEXT NOT NULL DEFAULT '',
	supermercato TEXT NOT NULL DEFAULT '',
	immagine TEXT NOT NULL DEFAULT '',
	qty INTEGER NOT NULL CHECK (qty >= 1)
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cart schema: %w", err)
	}
	return nil
}

// Load reads the persisted cart in insertion order. An unreadable store
// yields an empty cart; the shopping list is rebuildable state, not worth
// failing the request for.
func (s *SQLiteCartStore) Load(ctx context.Context) (domain.Cart, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, marca, prezzo, supermercato, immagine, qty FROM cart_items ORDER BY position`)
	if err != nil {
		log.Printf("[STORAGE] cart query failed, starting empty: %v", err)
		return domain.Cart{}, nil
	}
	defer rows.Close()

	cart := domain.Cart{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.Nome, &item.Marca, &item.Prezzo,
			&item.Supermercato, &item.Immagine, &item.Qty); err != nil {
			log.Printf("[STORAGE] cart row corrupt, starting empty: %v", err)
			return domain.Cart{}, nil
		}
		cart = append(cart, item)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[STORAGE] cart scan failed, starting empty: %v", err)
		return domain.Cart{}, nil
	}

	return cart, nil
}

// Save replaces the stored cart wholesale in a single transaction.
func (s *SQLiteCartStore) Save(ctx context.Context, cart domain.Cart) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cart transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	for pos, item := range cart {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items (position, id, nome, marca, prezzo, supermercato, immagine, qty)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			pos, item.ID, item.Nome, item.Marca, item.Prezzo, item.Supermercato, item.Immagine, item.Qty)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save cart item %q: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// Close releases the underlying database handle
func (s *SQLiteCartStore) Close() error {
	return s.db.Close()
}
