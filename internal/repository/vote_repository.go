package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-vote-api/internal/models"
)

// VoteRepository fronts the votes table and the cast_vote procedure.
type VoteRepository struct {
	db *sqlx.DB
}

// NewVoteRepository constructs a VoteRepository.
func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Cast invokes cast_vote, which records the vote, bumps the counter and flags the
// student in one transaction on the database side.
func (r *VoteRepository) Cast(ctx context.Context, accessCode, candidateID string) (*models.CastVoteResult, error) {
	var raw []byte
	if err := r.db.GetContext(ctx, &raw, `SELECT cast_vote($1, $2)`, accessCode, candidateID); err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}
	var result models.CastVoteResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cast_vote result: %w", err)
	}
	return &result, nil
}

// DeleteByCandidate removes the vote history of one candidate.
func (r *VoteRepository) DeleteByCandidate(ctx context.Context, candidateID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("delete candidate votes: %w", err)
	}
	return nil
}

// DeleteAll removes the whole vote history.
func (r *VoteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM votes`); err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}
	return nil
}
