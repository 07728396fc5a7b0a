package prefs

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmpty(t *testing.T) {
	repo := newTestRepository(t)

	prefs, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.ActiveTab != "" || prefs.CurrentMonth != "" {
		t.Errorf("expected zero preferences, got %+v", prefs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Save(ctx, Preferences{ActiveTab: "bills", CurrentMonth: "2024-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.ActiveTab != "bills" {
		t.Errorf("expected bills, got %s", prefs.ActiveTab)
	}
	if prefs.CurrentMonth != "2024-01" {
		t.Errorf("expected 2024-01, got %s", prefs.CurrentMonth)
	}
}

func TestPartialSaveKeepsOtherKey(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, Preferences{ActiveTab: "income", CurrentMonth: "2024-03"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Save(ctx, Preferences{ActiveTab: "budgets"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.ActiveTab != "budgets" {
		t.Errorf("expected budgets, got %s", prefs.ActiveTab)
	}
	if prefs.CurrentMonth != "2024-03" {
		t.Errorf("expected 2024-03, got %s", prefs.CurrentMonth)
	}
}
