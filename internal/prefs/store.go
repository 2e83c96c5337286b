// Package prefs stores per-visitor site preferences such as the colour
// scheme.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ctt011/folio/internal/db"
	"github.com/ctt011/folio/internal/render"
)

// KeyTheme is the preference key of the colour scheme.
const KeyTheme = "theme"

// ErrInvalidTheme is returned when storing an unknown colour scheme.
var ErrInvalidTheme = errors.New("invalid theme")

// Store provides key/value preferences per visitor.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns a preference value and whether it was set.
func (s *Store) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE visitor_id = ? AND key = ?`,
		visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a preference value.
func (s *Store) Set(ctx context.Context, visitorID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = datetime('now')`,
		visitorID, key, value,
	)
	if err != nil {
		return fmt.Errorf("upserting preference %s: %w", key, err)
	}
	return nil
}

// Theme returns the visitor's colour scheme, automatic when unset.
func (s *Store) Theme(ctx context.Context, visitorID string) (string, error) {
	v, ok, err := s.Get(ctx, visitorID, KeyTheme)
	if err != nil {
		return "", err
	}
	if !ok || !render.ValidTheme(v) {
		return render.ThemeAuto, nil
	}
	return v, nil
}

// SetTheme stores the visitor's colour scheme.
func (s *Store) SetTheme(ctx context.Context, visitorID, theme string) error {
	if !render.ValidTheme(theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.Set(ctx, visitorID, KeyTheme, theme)
}
