package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

// ClearDataConfirmation must be sent verbatim to wipe the election.
const ClearDataConfirmation = "ELIMINAR TODO"

// DefaultSchoolName is stored when branding is saved without a name.
const DefaultSchoolName = "Colegio"

type electionConfigRepository interface {
	Branding(ctx context.Context) (*models.Branding, error)
	UpdateBranding(ctx context.Context, logoURL *string, schoolName string) error
	SetStatus(ctx context.Context, status models.ElectionStatus) error
}

type electionStudentRepository interface {
	ListCodeInputs(ctx context.Context) ([]models.Student, error)
	UpdateAccessCode(ctx context.Context, id, code string) error
	ResetVoted(ctx context.Context) error
	DeleteAll(ctx context.Context) error
}

type electionCandidateRepository interface {
	ResetVotes(ctx context.Context) error
	DeleteAll(ctx context.Context) error
}

type electionVoteRepository interface {
	DeleteAll(ctx context.Context) error
}

// ElectionService runs the election lifecycle: branding, open/close and the reset operations.
type ElectionService struct {
	config        electionConfigRepository
	students      electionStudentRepository
	candidates    electionCandidateRepository
	votes         electionVoteRepository
	cache         *CacheService
	defaultSchool string
	validator     *validator.Validate
	logger        *zap.Logger
}

// ElectionServiceOption customises ElectionService.
type ElectionServiceOption func(*ElectionService)

// WithDefaultSchoolName overrides the name stored when branding omits one.
func WithDefaultSchoolName(name string) ElectionServiceOption {
	return func(s *ElectionService) {
		if strings.TrimSpace(name) != "" {
			s.defaultSchool = name
		}
	}
}

// NewElectionService constructs ElectionService.
func NewElectionService(config electionConfigRepository, students electionStudentRepository, candidates electionCandidateRepository, votes electionVoteRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, opts ...ElectionServiceOption) *ElectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ElectionService{
		config:        config,
		students:      students,
		candidates:    candidates,
		votes:         votes,
		cache:         cache,
		defaultSchool: DefaultSchoolName,
		validator:     validate,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Branding returns the public branding fields.
func (s *ElectionService) Branding(ctx context.Context) (*models.Branding, error) {
	branding, err := s.config.Branding(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load config")
	}
	return branding, nil
}

// UpdateBranding stores the logo (empty clears it) and the school name (empty falls back to the default).
func (s *ElectionService) UpdateBranding(ctx context.Context, req dto.BrandingRequest) error {
	var logo *string
	if req.SchoolLogoURL != "" {
		logo = &req.SchoolLogoURL
	}
	name := req.SchoolName
	if name == "" {
		name = s.defaultSchool
	}
	if err := s.config.UpdateBranding(ctx, logo, name); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update config")
	}
	return nil
}

// SetStatus opens or closes the election.
func (s *ElectionService) SetStatus(ctx context.Context, req dto.ElectionActionRequest) (models.ElectionStatus, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "invalid action: use open or close")
	}
	status := models.ElectionClosed
	if req.Action == "open" {
		status = models.ElectionOpen
	}
	if err := s.config.SetStatus(ctx, status); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update election status")
	}
	s.logger.Info("election status changed", zap.String("status", string(status)))
	return status, nil
}

// ResetCodes rewrites every access code from grade, course and list number. Rows that fail
// to update are skipped; the number of updated rows is returned.
func (s *ElectionService) ResetCodes(ctx context.Context) (int, error) {
	students, err := s.students.ListCodeInputs(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	updated := 0
	for _, student := range students {
		code := models.AccessCode(student.Grade, student.Course, student.ListNumber)
		if err := s.students.UpdateAccessCode(ctx, student.ID, code); err != nil {
			s.logger.Debug("skip access code update", zap.String("student_id", student.ID), zap.Error(err))
			continue
		}
		updated++
	}
	return updated, nil
}

// ResetVotes lets every student vote again. Vote history removal is best effort.
func (s *ElectionService) ResetVotes(ctx context.Context) error {
	if err := s.students.ResetVoted(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset students")
	}
	if err := s.candidates.ResetVotes(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset candidates")
	}
	if err := s.votes.DeleteAll(ctx); err != nil {
		s.logger.Warn("could not delete vote history", zap.Error(err))
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ClearData wipes votes, students and candidates and closes the election.
func (s *ElectionService) ClearData(ctx context.Context, req dto.ClearDataRequest) error {
	if req.Confirm != ClearDataConfirmation {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("confirmation required: send confirm=%q", ClearDataConfirmation))
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"delete votes", s.votes.DeleteAll},
		{"delete students", s.students.DeleteAll},
		{"delete candidates", s.candidates.DeleteAll},
		{"close election", func(ctx context.Context) error { return s.config.SetStatus(ctx, models.ElectionClosed) }},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			s.logger.Warn("clear data step failed", zap.String("step", step.name), zap.Error(err))
		}
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ClearStudents removes the roster only.
func (s *ElectionService) ClearStudents(ctx context.Context) error {
	if err := s.students.DeleteAll(ctx); err != nil {
		s.logger.Warn("clear students failed", zap.Error(err))
	}
	s.cache.Invalidate(ctx)
	return nil
}
