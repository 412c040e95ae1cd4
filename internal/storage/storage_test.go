package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBlobStores(t *testing.T) {
	ctx := context.Background()

	newFile := func(t *testing.T) BlobStore {
		s, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
		if err != nil {
			t.Fatalf("file store: %v", err)
		}
		return s
	}
	newSQLite := func(t *testing.T) BlobStore {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "fintrack.db"))
		if err != nil {
			t.Fatalf("sqlite store: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	}

	tests := []struct {
		name string
		open func(t *testing.T) BlobStore
	}{
		{"file", newFile},
		{"sqlite", newSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.open(t)

			if _, err := s.Load(ctx, "expenses"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := s.Save(ctx, "expenses", []byte(`[]`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save(ctx, "expenses", []byte(`[{"id":"e1"}]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := s.Load(ctx, "expenses")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(got) != `[{"id":"e1"}]` {
				t.Fatalf("load = %q", got)
			}
		})
	}
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape", "Upper", "a/b"} {
		if err := s.Save(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("Save(%q) should fail", key)
		}
		if _, err := s.Load(context.Background(), key); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q) should fail with a key error, got %v", key, err)
		}
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), "budgets", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "budgets.json" {
		t.Fatalf("unexpected dir contents: %v", entries)
	}
}

func TestSQLiteKeysAndMigrationVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	for _, k := range []string{"reminders", "budgets"} {
		if err := s.Save(ctx, k, []byte(`[]`)); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "budgets" || keys[1] != "reminders" {
		t.Fatalf("keys = %v", keys)
	}

	v, err := MigrationVersion(path)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("version = %d, want 1", v)
	}
}
