package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-vote-api/internal/models"
)

// ElectionConfigRepository reads and writes the singleton config row.
type ElectionConfigRepository struct {
	db *sqlx.DB
}

// NewElectionConfigRepository constructs the repository.
func NewElectionConfigRepository(db *sqlx.DB) *ElectionConfigRepository {
	return &ElectionConfigRepository{db: db}
}

// Get loads the config row. It returns sql.ErrNoRows when the row is missing.
func (r *ElectionConfigRepository) Get(ctx context.Context) (*models.ElectionConfig, error) {
	const query = `SELECT election_status, admin_code, school_name, school_logo_url FROM config WHERE id = $1`
	var cfg models.ElectionConfig
	if err := r.db.GetContext(ctx, &cfg, query, models.ConfigRowID); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Branding loads the public branding fields.
func (r *ElectionConfigRepository) Branding(ctx context.Context) (*models.Branding, error) {
	const query = `SELECT school_logo_url, school_name FROM config WHERE id = $1`
	var branding models.Branding
	if err := r.db.GetContext(ctx, &branding, query, models.ConfigRowID); err != nil {
		return nil, err
	}
	return &branding, nil
}

// UpdateBranding writes the branding fields; a nil logo is stored as NULL.
func (r *ElectionConfigRepository) UpdateBranding(ctx context.Context, logoURL *string, schoolName string) error {
	const query = `UPDATE config SET school_logo_url = $2, school_name = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, models.ConfigRowID, logoURL, schoolName); err != nil {
		return fmt.Errorf("update branding: %w", err)
	}
	return nil
}

// SetStatus opens or closes the election.
func (r *ElectionConfigRepository) SetStatus(ctx context.Context, status models.ElectionStatus) error {
	const query = `UPDATE config SET election_status = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, models.ConfigRowID, string(status)); err != nil {
		return fmt.Errorf("set election status: %w", err)
	}
	return nil
}
