// Package storage persists named collections as opaque blobs.
//
// A BlobStore knows nothing about the collections it holds: callers encode a whole
// collection, hand it over under a key, and get the same bytes back on Load.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing was ever saved under a key.
var ErrNotFound = errors.New("storage: key not found")

// BlobStore is the save/load contract every backend implements.
type BlobStore interface {
	// Save replaces the blob stored under key. A failed Save leaves the previous blob intact.
	Save(ctx context.Context, key string, data []byte) error
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
}

// Closer is implemented by backends that hold connections.
type Closer interface {
	Close() error
}
