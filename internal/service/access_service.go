package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

type electionConfigReader interface {
	Get(ctx context.Context) (*models.ElectionConfig, error)
}

type settingReader interface {
	Get(ctx context.Context, key string) (*models.SystemSetting, error)
}

var errUnauthorized = appErrors.Clone(appErrors.ErrUnauthorized, "unauthorized")

// AdminCodeMatches reports whether provided equals the stored admin code. An empty code never matches.
func AdminCodeMatches(provided, stored string) bool {
	return provided != "" && provided == stored
}

// VotePasswordMatches reports whether provided satisfies the voter gate. An empty
// required value disables the gate.
func VotePasswordMatches(provided, required string) bool {
	return required == "" || provided == required
}

// AccessService checks the shared secrets guarding admin and voter endpoints.
// Stored secrets are read on every call.
type AccessService struct {
	config   electionConfigReader
	settings settingReader
	logger   *zap.Logger
}

// NewAccessService constructs AccessService.
func NewAccessService(config electionConfigReader, settings settingReader, logger *zap.Logger) *AccessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessService{config: config, settings: settings, logger: logger}
}

// AuthorizeAdmin validates an admin code against the config row.
func (s *AccessService) AuthorizeAdmin(ctx context.Context, provided string) error {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		s.logger.Warn("admin gate could not read config", zap.Error(err))
		return errUnauthorized
	}
	if !AdminCodeMatches(provided, cfg.AdminCode) {
		return errUnauthorized
	}
	return nil
}

// AuthorizeVoter validates the optional terminal password.
func (s *AccessService) AuthorizeVoter(ctx context.Context, provided string) error {
	required, err := s.votePassword(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read vote password")
	}
	if !VotePasswordMatches(provided, required) {
		return errUnauthorized
	}
	return nil
}

func (s *AccessService) votePassword(ctx context.Context) (string, error) {
	setting, err := s.settings.Get(ctx, models.VotePasswordKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	if setting == nil || !setting.Value.Valid {
		return "", nil
	}
	return setting.Value.String, nil
}
