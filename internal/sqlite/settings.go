package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/faridfgx/projectorganizer/internal/repository"
)

// SettingsStore implements repository.Settings on the settings table.
// Keys are namespaced by feature section ("backup", "notifications").
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a settings store over db.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) get(ctx context.Context, section, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE section = ? AND key = ?`, section, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s/%s: %w", section, key, err)
	}
	return value, nil
}

func (s *SettingsStore) set(ctx context.Context, section, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (section, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(section, key) DO UPDATE SET value = excluded.value`,
		section, key, value,
	)
	if err != nil {
		return fmt.Errorf("write setting %s/%s: %w", section, key, err)
	}
	return nil
}

// GetString returns the stored value or def when the key is absent.
func (s *SettingsStore) GetString(ctx context.Context, section, key, def string) (string, error) {
	value, err := s.get(ctx, section, key)
	if errors.Is(err, repository.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return value, nil
}

// GetInt returns the stored value or def when absent or not numeric.
func (s *SettingsStore) GetInt(ctx context.Context, section, key string, def int) (int, error) {
	value, err := s.get(ctx, section, key)
	if errors.Is(err, repository.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// GetBool returns the stored value or def when absent or unparseable.
func (s *SettingsStore) GetBool(ctx context.Context, section, key string, def bool) (bool, error) {
	value, err := s.get(ctx, section, key)
	if errors.Is(err, repository.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def, nil
	}
	return b, nil
}

// SetString stores a string value.
func (s *SettingsStore) SetString(ctx context.Context, section, key, value string) error {
	return s.set(ctx, section, key, value)
}

// SetInt stores an integer value.
func (s *SettingsStore) SetInt(ctx context.Context, section, key string, value int) error {
	return s.set(ctx, section, key, strconv.Itoa(value))
}

// SetBool stores a boolean value.
func (s *SettingsStore) SetBool(ctx context.Context, section, key string, value bool) error {
	return s.set(ctx, section, key, strconv.FormatBool(value))
}
