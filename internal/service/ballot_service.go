package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

var accessCodePattern = regexp.MustCompile(`^\d{5}$`)

type ballotStudentRepository interface {
	FindByAccessCode(ctx context.Context, code string) (*models.Student, error)
}

type ballotVoteRepository interface {
	Cast(ctx context.Context, accessCode, candidateID string) (*models.CastVoteResult, error)
}

type ballotCandidateRepository interface {
	ListPublic(ctx context.Context) ([]models.PublicCandidate, error)
}

// BallotService serves the voting terminal.
type BallotService struct {
	config     electionConfigReader
	students   ballotStudentRepository
	votes      ballotVoteRepository
	candidates ballotCandidateRepository
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewBallotService constructs BallotService.
func NewBallotService(config electionConfigReader, students ballotStudentRepository, votes ballotVoteRepository, candidates ballotCandidateRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BallotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BallotService{config: config, students: students, votes: votes, candidates: candidates, metrics: metrics, validator: validate, logger: logger}
}

// Status reports whether the election is open together with branding.
func (s *BallotService) Status(ctx context.Context) (*dto.StatusResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read election status")
	}
	return &dto.StatusResponse{
		Open:       cfg.IsOpen(),
		Status:     string(cfg.ElectionStatus),
		SchoolLogo: nullableString(cfg.SchoolLogoURL),
		SchoolName: nullableString(cfg.SchoolName),
	}, nil
}

// VerifyCode checks that a code exists and has not voted yet.
func (s *BallotService) VerifyCode(ctx context.Context, req dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error) {
	if !accessCodePattern.MatchString(req.AccessCode) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid code: must be 5 digits")
	}

	student, err := s.students.FindByAccessCode(ctx, req.AccessCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "code not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify code")
	}
	if student.HasVoted {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "this code has already been used to vote")
	}

	return &dto.VerifyCodeResponse{
		Valid: true,
		Student: dto.VoterProfile{
			Name:   student.FullName,
			Grade:  student.Grade,
			Course: student.Course,
		},
	}, nil
}

// CastVote forwards a ballot to the cast_vote procedure, which owns every voting rule.
func (s *BallotService) CastVote(ctx context.Context, req dto.CastVoteRequest) (*dto.CastVoteResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "access_code and candidate_id are required")
	}

	result, err := s.votes.Cast(ctx, req.AccessCode, req.CandidateID)
	if err != nil {
		s.metrics.ObserveVote(VoteOutcomeError)
		s.logger.Error("cast vote failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to process vote")
	}
	if !result.Success {
		s.metrics.ObserveVote(VoteOutcomeRejected)
		message := result.Error
		if message == "" {
			message = "vote rejected"
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, message)
	}

	s.metrics.ObserveVote(VoteOutcomeAccepted)
	return &dto.CastVoteResponse{Success: true, Message: "vote recorded successfully", Student: result.Student}, nil
}

// Candidates lists the ballot ordered by name.
func (s *BallotService) Candidates(ctx context.Context) ([]models.PublicCandidate, error) {
	candidates, err := s.candidates.ListPublic(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load candidates")
	}
	return candidates, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
