package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/log"
)

func TestSetupLoggerUnknownLevel(t *testing.T) {
	logger := SetupLogger("loud", log.ComponentCLI)
	if logger == nil {
		t.Fatalf("expected a logger")
	}
	if logger.Component() != log.ComponentCLI {
		t.Fatalf("component=%q", logger.Component())
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FINTRACK_CLI_TEST=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("FINTRACK_CLI_TEST", "")
	os.Unsetenv("FINTRACK_CLI_TEST")

	LoadEnvFile()
	if got := os.Getenv("FINTRACK_CLI_TEST"); got != "from-dotenv" {
		t.Fatalf("env not loaded, got %q", got)
	}
}

func TestShutdownContextCancel(t *testing.T) {
	ctx, cancel := ShutdownContext(log.Discard())
	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("context not cancelled")
	}
}
