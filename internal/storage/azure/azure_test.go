package azure

import (
	"context"
	"testing"
)

func TestNewRequiresContainer(t *testing.T) {
	if _, err := New(context.Background(), Config{ConnectionString: "UseDevelopmentStorage=true"}); err == nil {
		t.Fatalf("expected error for missing container")
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New(context.Background(), Config{Container: "fintrack"}); err == nil {
		t.Fatalf("expected error when neither connection string nor service URL is set")
	}
}

func TestBlobName(t *testing.T) {
	if got := blobName("total_amount"); got != "total_amount.json" {
		t.Fatalf("blobName = %q", got)
	}
}
