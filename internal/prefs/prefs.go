// Package prefs stores lightweight UI preferences, the active tab and the
// currently viewed month, in a local SQLite database so they survive
// restarts.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	keyActiveTab    = "activeTab"
	keyCurrentMonth = "currentMonth"
)

// Preferences is the persisted UI state. Zero values mean "not set"; the
// caller falls back to its own defaults.
type Preferences struct {
	ActiveTab    string `json:"activeTab"`
	CurrentMonth string `json:"currentMonth"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns the stored preferences. Missing keys are left at their zero
// value rather than reported as errors.
func (r *Repository) Load(ctx context.Context) (Preferences, error) {
	var prefs Preferences

	tab, err := r.get(ctx, keyActiveTab)
	if err != nil {
		return prefs, err
	}
	month, err := r.get(ctx, keyCurrentMonth)
	if err != nil {
		return prefs, err
	}

	prefs.ActiveTab = tab
	prefs.CurrentMonth = month
	return prefs, nil
}

// Save upserts both preference keys. Empty fields are skipped so partial
// updates do not erase the other key.
func (r *Repository) Save(ctx context.Context, prefs Preferences) error {
	if tab := strings.TrimSpace(prefs.ActiveTab); tab != "" {
		if err := r.set(ctx, keyActiveTab, tab); err != nil {
			return err
		}
	}
	if month := strings.TrimSpace(prefs.CurrentMonth); month != "" {
		if err := r.set(ctx, keyCurrentMonth, month); err != nil {
			return err
		}
	}

	slog.DebugContext(ctx, "Preferences saved",
		"active_tab", prefs.ActiveTab,
		"current_month", prefs.CurrentMonth)
	return nil
}

func (r *Repository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, nil
}

func (r *Repository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
