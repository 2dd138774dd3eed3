package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

type rosterStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Delete(ctx context.Context, id string) error
}

type rosterCandidateRepository interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Create(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error)
	UpdatePhoto(ctx context.Context, id string, photoURL *string) error
	Delete(ctx context.Context, id string) error
}

type rosterVoteRepository interface {
	DeleteByCandidate(ctx context.Context, candidateID string) error
}

// RosterService manages students and candidates from the admin panel.
type RosterService struct {
	students   rosterStudentRepository
	candidates rosterCandidateRepository
	votes      rosterVoteRepository
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRosterService constructs RosterService.
func NewRosterService(students rosterStudentRepository, candidates rosterCandidateRepository, votes rosterVoteRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{students: students, candidates: candidates, votes: votes, cache: cache, validator: validate, logger: logger}
}

// ListStudents returns the roster ordered by grade, course and list number.
func (s *RosterService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	return students, nil
}

// DeleteStudent removes one student.
func (s *RosterService) DeleteStudent(ctx context.Context, req dto.IDRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "id required")
	}
	if err := s.students.Delete(ctx, req.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ListCandidates returns every candidate including vote counters.
func (s *RosterService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load candidates")
	}
	return candidates, nil
}

// CreateCandidate inserts a candidate; party and photo default to empty strings.
func (s *RosterService) CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (*models.Candidate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name required")
	}
	created, err := s.candidates.Create(ctx, &models.Candidate{Name: req.Name, Party: req.Party, PhotoURL: req.PhotoURL})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create candidate")
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

// UpdateCandidatePhoto replaces the photo URL only.
func (s *RosterService) UpdateCandidatePhoto(ctx context.Context, req dto.UpdateCandidatePhotoRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "id required")
	}
	if err := s.candidates.UpdatePhoto(ctx, req.ID, req.PhotoURL); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update candidate")
	}
	s.cache.Invalidate(ctx)
	return nil
}

// DeleteCandidate removes a candidate after deleting the votes that reference it. A failed
// vote cleanup is logged and the candidate delete still runs.
func (s *RosterService) DeleteCandidate(ctx context.Context, req dto.IDRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "id required")
	}
	if err := s.votes.DeleteByCandidate(ctx, req.ID); err != nil {
		s.logger.Warn("delete candidate votes failed", zap.String("candidate_id", req.ID), zap.Error(err))
	}
	if err := s.candidates.Delete(ctx, req.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete candidate")
	}
	s.cache.Invalidate(ctx)
	return nil
}
