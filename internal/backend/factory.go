package backend

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/notify"
	"fintrack/internal/storage"
	"fintrack/internal/storage/azure"
	"fintrack/internal/storage/memory"
	"fintrack/internal/storage/postgres"
)

type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	return &Factory{logger: logger.WithComponent(log.ComponentBackend)}
}

// CreateStore opens the configured BlobStore. The cleanup func is never nil.
func (f *Factory) CreateStore(ctx context.Context, cfg Config) (storage.BlobStore, CleanupFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		store storage.BlobStore
		err   error
	)
	switch cfg.Type {
	case MemoryBackend:
		// seeded from DATA_DIRECTORY when present; nothing is written back
		store = memory.NewFromFiles(cfg.DataDirectory)
	case FileBackend:
		store, err = storage.NewFileStore(cfg.DataDirectory)
	case SQLiteBackend:
		store, err = storage.NewSQLiteStore(cfg.SQLiteDBPath)
	case AzureBackend:
		store, err = azure.New(ctx, azure.Config{
			ConnectionString: cfg.AzureConnectionString,
			ServiceURL:       cfg.AzureServiceURL,
			Container:        cfg.AzureContainer,
		})
	case PostgresBackend:
		store, err = postgres.Connect(ctx, cfg.DatabaseURL)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initialize %s backend: %w", cfg.Type, err)
	}

	f.logger.InfoContext(ctx, "Initialized storage backend", log.FieldBackend, cfg.Type.String())

	cleanup := func() error { return nil }
	if c, ok := store.(storage.Closer); ok {
		cleanup = c.Close
	}
	return store, cleanup, nil
}

// CreateNotifier publishes to AMQP when a URL is configured and falls back to a
// logging notifier otherwise, or when the broker cannot be reached.
func (f *Factory) CreateNotifier(ctx context.Context, cfg Config) (notify.Notifier, CleanupFunc) {
	noop := func() error { return nil }
	if cfg.AMQPURL == "" {
		f.logger.InfoContext(ctx, "AMQP not configured, notifications will only be logged")
		return notify.NewLogNotifier(f.logger), noop
	}

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, notifications will only be logged", log.FieldError, err)
		return notify.NewLogNotifier(f.logger), noop
	}
	f.logger.InfoContext(ctx, "Initialized AMQP notifier", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return notify.NewAMQPNotifier(client), client.Close
}
