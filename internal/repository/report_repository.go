package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-vote-api/internal/models"
)

// ReportRepository reads the aggregate views maintained by the database.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ParticipationByGrade returns the participation_by_grade view.
func (r *ReportRepository) ParticipationByGrade(ctx context.Context) ([]models.ViewRow, error) {
	return r.selectView(ctx, "participation_by_grade")
}

// ElectionResults returns the election_results view.
func (r *ReportRepository) ElectionResults(ctx context.Context) ([]models.ViewRow, error) {
	return r.selectView(ctx, "election_results")
}

func (r *ReportRepository) selectView(ctx context.Context, view string) ([]models.ViewRow, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT * FROM "+view)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", view, err)
	}
	defer rows.Close()

	result := []models.ViewRow{}
	for rows.Next() {
		raw := make(map[string]interface{})
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", view, err)
		}
		result = append(result, models.NormalizeViewRow(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", view, err)
	}
	return result, nil
}
