// internal/adapters/out/postgres/cart_blob_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// CartBlobStorePG implements cart.BlobStore on PostgreSQL.
// One row per cart key; the blob column stays opaque.
type CartBlobStorePG struct {
	DB *sql.DB
}

func NewCartBlobStorePG(db *sql.DB) *CartBlobStorePG {
	return &CartBlobStorePG{DB: db}
}

// EnsureSchema creates the carts table when missing. Called once at boot.
func (s *CartBlobStorePG) EnsureSchema(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("cart_blob_pg: db is nil")
	}

	const q = `
CREATE TABLE IF NOT EXISTS storefront_carts (
  cart_key   TEXT PRIMARY KEY,
  data       BYTEA NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`
	_, err := s.DB.ExecContext(ctx, q)
	return err
}

// Get returns (nil, nil) when the row is absent (not-found policy).
func (s *CartBlobStorePG) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("cart_blob_pg: db is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("cart_blob_pg: key is empty")
	}

	const q = `SELECT data FROM storefront_carts WHERE cart_key = $1`

	var data []byte
	if err := s.DB.QueryRowContext(ctx, q, k).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *CartBlobStorePG) Set(ctx context.Context, key string, blob []byte) error {
	if s == nil || s.DB == nil {
		return errors.New("cart_blob_pg: db is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_blob_pg: key is empty")
	}

	const q = `
INSERT INTO storefront_carts (cart_key, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (cart_key)
DO UPDATE SET data = EXCLUDED.data, updated_at = now()
`
	_, err := s.DB.ExecContext(ctx, q, k, blob)
	return err
}

func (s *CartBlobStorePG) Delete(ctx context.Context, key string) error {
	if s == nil || s.DB == nil {
		return errors.New("cart_blob_pg: db is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_blob_pg: key is empty")
	}

	const q = `DELETE FROM storefront_carts WHERE cart_key = $1`
	_, err := s.DB.ExecContext(ctx, q, k)
	return err
}
