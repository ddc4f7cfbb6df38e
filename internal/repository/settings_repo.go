package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"foodiefriends/internal/database"
)

// Setting keys stored in the settings table.
const (
	SettingParentPINHash = "parent_pin_hash"
	SettingBackupEmail   = "backup_email"
)

// SettingsRepository handles key/value app settings persistence
type SettingsRepository struct {
	db database.DBTX
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db database.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a key, or ok=false if the key is unset
func (r *SettingsRepository) Get(key string) (value string, ok bool, err error) {
	err = r.db.QueryRow(`SELECT value FROM settings WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value for a key
func (r *SettingsRepository) Set(key, value string) error {
	query := r.db.GetDialect().UpsertSettingQuery()
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
