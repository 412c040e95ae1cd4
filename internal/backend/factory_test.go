package backend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/notify"
	"fintrack/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("nil config should fail")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("unknown backend should fail")
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", AMQPQueue: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.AMQPQueue != "q" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file without dir", Config{Type: FileBackend}, true},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"azure without endpoint", Config{Type: AzureBackend, AzureContainer: "c"}, true},
		{"azure without container", Config{Type: AzureBackend, AzureServiceURL: "https://a.blob.core.windows.net"}, true},
		{"postgres without url", Config{Type: PostgresBackend}, true},
		{"unknown", Config{Type: "sheets"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateStore(t *testing.T) {
	f := NewFactory(log.Discard())
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"memory", Config{Type: MemoryBackend, DataDirectory: dir}},
		{"file", Config{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "fintrack.db")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup, err := f.CreateStore(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("CreateStore() = %v", err)
			}
			defer cleanup()

			if _, err := store.Load(ctx, "budgets"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("fresh store should be empty, got %v", err)
			}
			if err := store.Save(ctx, "budgets", []byte("[]")); err != nil {
				t.Errorf("save: %v", err)
			}
		})
	}

	if _, _, err := f.CreateStore(ctx, Config{Type: FileBackend}); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestCreateNotifierWithoutAMQP(t *testing.T) {
	n, cleanup := NewFactory(log.Discard()).CreateNotifier(context.Background(), Config{})
	if _, ok := n.(*notify.LogNotifier); !ok {
		t.Errorf("expected log notifier, got %T", n)
	}
	if err := cleanup(); err != nil {
		t.Error(err)
	}
}
