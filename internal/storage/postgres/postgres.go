// Package postgres stores collection blobs in a single PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
	key        TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Store struct {
	db *pgxpool.Pool
}

// Connect opens a pool for databaseURL and creates the kv_blobs table if needed.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s, err := NewStore(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func NewStore(ctx context.Context, db *pgxpool.Pool) (*Store, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create kv_blobs table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO kv_blobs (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, key, data)
	if err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	slog.DebugContext(ctx, "Blob saved to Postgres", "key", key, "size_bytes", len(data))
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, "SELECT data FROM kv_blobs WHERE key = $1", key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %q: %w", key, err)
	}
	return data, nil
}
