package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-vote-api/internal/models"
)

// CandidateRepository manages persistence for candidates.
type CandidateRepository struct {
	db *sqlx.DB
}

// NewCandidateRepository constructs a CandidateRepository.
func NewCandidateRepository(db *sqlx.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// ListPublic returns the ballot ordered by name.
func (r *CandidateRepository) ListPublic(ctx context.Context) ([]models.PublicCandidate, error) {
	const query = `SELECT id, name, COALESCE(party, '') AS party, COALESCE(photo_url, '') AS photo_url
FROM candidates ORDER BY name`
	candidates := []models.PublicCandidate{}
	if err := r.db.SelectContext(ctx, &candidates, query); err != nil {
		return nil, fmt.Errorf("list public candidates: %w", err)
	}
	return candidates, nil
}

// List returns every candidate including vote counters, ordered by name.
func (r *CandidateRepository) List(ctx context.Context) ([]models.Candidate, error) {
	const query = `SELECT id, name, COALESCE(party, '') AS party, COALESCE(photo_url, '') AS photo_url, COALESCE(votes, 0) AS votes
FROM candidates ORDER BY name`
	candidates := []models.Candidate{}
	if err := r.db.SelectContext(ctx, &candidates, query); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// SumVotes adds up every candidate's vote counter.
func (r *CandidateRepository) SumVotes(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(votes), 0) FROM candidates`); err != nil {
		return 0, fmt.Errorf("sum candidate votes: %w", err)
	}
	return total, nil
}

// Create inserts a candidate and returns the stored row.
func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error) {
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	const query = `INSERT INTO candidates (id, name, party, photo_url)
VALUES ($1, $2, $3, $4)
RETURNING id, name, COALESCE(party, '') AS party, COALESCE(photo_url, '') AS photo_url, COALESCE(votes, 0) AS votes`
	var created models.Candidate
	if err := r.db.GetContext(ctx, &created, query, candidate.ID, candidate.Name, candidate.Party, candidate.PhotoURL); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return &created, nil
}

// UpdatePhoto replaces the photo URL of one candidate.
func (r *CandidateRepository) UpdatePhoto(ctx context.Context, id string, photoURL *string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE candidates SET photo_url = $2 WHERE id = $1`, id, photoURL); err != nil {
		return fmt.Errorf("update candidate photo: %w", err)
	}
	return nil
}

// ResetVotes zeroes every vote counter.
func (r *CandidateRepository) ResetVotes(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE candidates SET votes = 0`); err != nil {
		return fmt.Errorf("reset candidate votes: %w", err)
	}
	return nil
}

// Delete removes one candidate.
func (r *CandidateRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	return nil
}

// DeleteAll removes every candidate.
func (r *CandidateRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM candidates`); err != nil {
		return fmt.Errorf("delete candidates: %w", err)
	}
	return nil
}
