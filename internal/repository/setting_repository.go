package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-vote-api/internal/models"
)

// SettingRepository reads keyed rows of system_settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository constructs the repository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get fetches a single setting by key. It returns sql.ErrNoRows when the key is absent.
func (r *SettingRepository) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	const query = `SELECT key, value FROM system_settings WHERE key = $1`
	var setting models.SystemSetting
	if err := r.db.GetContext(ctx, &setting, query, key); err != nil {
		return nil, err
	}
	return &setting, nil
}
