package memory

import (
	"context"
	"errors"
	"testing"

	"budgetbook/internal/persist"
)

func TestWriteAndRead(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Write(ctx, "transactions.csv", "id,date\n1,2024-01-05\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Read(ctx, "transactions.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "id,date\n1,2024-01-05\n" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestReadMissing(t *testing.T) {
	store := New()
	_, err := store.Read(context.Background(), "nope.csv")
	if !errors.Is(err, persist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFilesSnapshot(t *testing.T) {
	store := New()
	ctx := context.Background()
	if err := store.Write(ctx, "a.csv", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files := store.Files()
	files["a.csv"] = "mutated"

	got, err := store.Read(ctx, "a.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x" {
		t.Errorf("snapshot mutation leaked into store: %q", got)
	}
}
