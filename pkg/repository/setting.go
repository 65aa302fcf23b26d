package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/truckscope/pkg/db"
)

// SettingMinConfidence keeps the acceptance threshold changed at runtime
const SettingMinConfidence = "min_confidence"

// SettingRepository handles runtime settings surviving restarts
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(conn *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: conn}
}

// GetSetting retrieves a setting value, found is false for unknown keys
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (value string, found bool, err error) {
	err = r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	return db.WithLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("set setting %s: %w", key, err)
		}
		return nil
	})
}
