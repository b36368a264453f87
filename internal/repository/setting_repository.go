package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// SettingRepository is the injectable key/value store for presentation-level
// settings (currency, notification thresholds, shop profile). Values are
// JSON-compatible strings keyed by name; Get falls back to the supplied
// default when the key is absent.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the stored value for key, or defaultValue when unset.
func (r *SettingRepository) Get(key, defaultValue string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE "key" = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return defaultValue, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", key, err)
	}
	return value, nil
}

// Set writes the value for key, creating or replacing it.
func (r *SettingRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO setting ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
