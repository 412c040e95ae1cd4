// Package backend turns configuration into a concrete BlobStore and Notifier.
package backend

import (
	"fmt"

	"fintrack/internal/config"
)

type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	FileBackend     BackendType = "file"
	SQLiteBackend   BackendType = "sqlite"
	AzureBackend    BackendType = "azure"
	PostgresBackend BackendType = "postgres"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend, AzureBackend, PostgresBackend:
		return true
	}
	return false
}

// CleanupFunc releases whatever a backend holds open.
type CleanupFunc func() error

// Config is the subset of the application config a backend needs.
type Config struct {
	Type BackendType

	DataDirectory string
	SQLiteDBPath  string

	AzureConnectionString string
	AzureServiceURL       string
	AzureContainer        string

	DatabaseURL string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	bt := BackendType(appConfig.DataBackend)
	if !bt.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:                  bt,
		DataDirectory:         appConfig.DataDirectory,
		SQLiteDBPath:          appConfig.SQLiteDBPath,
		AzureConnectionString: appConfig.AzureConnectionString,
		AzureServiceURL:       appConfig.AzureServiceURL,
		AzureContainer:        appConfig.AzureContainer,
		DatabaseURL:           appConfig.DatabaseURL,
		AMQPURL:               appConfig.AMQPURL,
		AMQPExchange:          appConfig.AMQPExchange,
		AMQPQueue:             appConfig.AMQPQueue,
	}, nil
}

func (c Config) Validate() error {
	switch c.Type {
	case MemoryBackend:
	case FileBackend:
		if c.DataDirectory == "" {
			return fmt.Errorf("data directory is required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case AzureBackend:
		if c.AzureConnectionString == "" && c.AzureServiceURL == "" {
			return fmt.Errorf("connection string or service URL is required for azure backend")
		}
		if c.AzureContainer == "" {
			return fmt.Errorf("container is required for azure backend")
		}
	case PostgresBackend:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for postgres backend")
		}
	default:
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	return nil
}
