package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"fintrack/internal/storage"
)

// Runs only when TEST_DATABASE_URL points at a disposable database.
func TestStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	s, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	if _, err := s.db.Exec(ctx, "DELETE FROM kv_blobs WHERE key = 'test_blob'"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := s.Load(ctx, "test_blob"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for _, payload := range []string{`[]`, `[{"id":"a"}]`} {
		if err := s.Save(ctx, "test_blob", []byte(payload)); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, "test_blob")
		if err != nil || string(got) != payload {
			t.Fatalf("load = %q, %v; want %q", got, err, payload)
		}
	}
}
