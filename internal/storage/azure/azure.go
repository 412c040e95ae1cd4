// Package azure stores collection blobs in an Azure Blob Storage container.
package azure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"fintrack/internal/storage"
)

type Config struct {
	// ConnectionString takes precedence over ServiceURL when both are set.
	ConnectionString string
	ServiceURL       string
	Container        string
}

type Store struct {
	client    *azblob.Client
	container string
}

// New builds a client from a connection string, or from the service URL with the
// default Azure credential chain, and makes sure the container exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Container == "" {
		return nil, errors.New("azure: container name is required")
	}

	var (
		client *azblob.Client
		err    error
	)
	switch {
	case cfg.ConnectionString != "":
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("create blob client from connection string: %w", err)
		}
	case cfg.ServiceURL != "":
		cred, cerr := azidentity.NewDefaultAzureCredential(nil)
		if cerr != nil {
			return nil, fmt.Errorf("create default azure credential: %w", cerr)
		}
		client, err = azblob.NewClient(cfg.ServiceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("create blob client: %w", err)
		}
	default:
		return nil, errors.New("azure: connection string or service URL is required")
	}

	if _, err := client.CreateContainer(ctx, cfg.Container, nil); err != nil &&
		!bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("create container %q: %w", cfg.Container, err)
	}

	return &Store{client: client, container: cfg.Container}, nil
}

func blobName(key string) string {
	return key + ".json"
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.client.UploadBuffer(ctx, s.container, blobName(key), data, nil); err != nil {
		return fmt.Errorf("upload blob %q: %w", key, err)
	}
	slog.DebugContext(ctx, "Blob uploaded", "container", s.container, "key", key, "size_bytes", len(data))
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, blobName(key), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("download blob %q: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, nil
}
