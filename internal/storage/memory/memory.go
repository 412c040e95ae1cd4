package memory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fintrack/internal/storage"
)

// Store keeps blobs in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailSaves makes every Save fail with the given error; used to exercise
	// write-failure paths.
	FailSaves error
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// NewFromFiles seeds the store with every <key>.json file found in base.
// A missing or unreadable directory yields an empty store.
func NewFromFiles(base string) *Store {
	s := New()
	entries, err := os.ReadDir(base)
	if err != nil {
		return s
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(base, name))
		if err != nil {
			continue
		}
		s.blobs[strings.TrimSuffix(name, ".json")] = data
	}
	return s
}

func (s *Store) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores raw bytes without going through Save, bypassing FailSaves.
func (s *Store) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
}

// Keys returns the stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	return keys
}
