package dirstore

import (
	"context"
	"errors"
	"testing"

	"budgetbook/internal/persist"
)

func TestWriteAndRead(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	content := "id,name,amount_due\n1,Rent,1500\n"
	if err := store.Write(ctx, "bills.csv", content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Read(ctx, "bills.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if err := store.Write(ctx, "income.csv", "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Write(ctx, "income.csv", "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Read(ctx, "income.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "new" {
		t.Errorf("expected new, got %q", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = store.Read(context.Background(), "missing.csv")
	if !errors.Is(err, persist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
