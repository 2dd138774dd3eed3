package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

type electionFixture struct {
	config     *stubConfigRepo
	students   *stubStudentRepo
	candidates *stubCandidateRepo
	votes      *stubVoteRepo
	cache      *stubCacheRepo
	svc        *ElectionService
}

func newElectionFixture(opts ...ElectionServiceOption) *electionFixture {
	f := &electionFixture{
		config:     &stubConfigRepo{branding: &models.Branding{}},
		students:   &stubStudentRepo{},
		candidates: &stubCandidateRepo{},
		votes:      &stubVoteRepo{},
		cache:      newStubCacheRepo(),
	}
	cache := NewCacheService(f.cache, nil, 0, nil, true)
	f.svc = NewElectionService(f.config, f.students, f.candidates, f.votes, cache, nil, nil, opts...)
	return f
}

func TestElectionServiceUpdateBranding(t *testing.T) {
	f := newElectionFixture()

	require.NoError(t, f.svc.UpdateBranding(context.Background(), dto.BrandingRequest{SchoolLogoURL: "https://cdn/logo.png", SchoolName: "Liceo Norte"}))
	require.NotNil(t, f.config.logo)
	assert.Equal(t, "https://cdn/logo.png", *f.config.logo)
	assert.Equal(t, "Liceo Norte", f.config.name)

	require.NoError(t, f.svc.UpdateBranding(context.Background(), dto.BrandingRequest{}))
	assert.Nil(t, f.config.logo)
	assert.Equal(t, "Colegio", f.config.name)
}

func TestElectionServiceDefaultSchoolOption(t *testing.T) {
	f := newElectionFixture(WithDefaultSchoolName("Escuela"), WithDefaultSchoolName("  "))
	require.NoError(t, f.svc.UpdateBranding(context.Background(), dto.BrandingRequest{}))
	assert.Equal(t, "Escuela", f.config.name)
}

func TestElectionServiceSetStatus(t *testing.T) {
	f := newElectionFixture()

	status, err := f.svc.SetStatus(context.Background(), dto.ElectionActionRequest{Action: "open"})
	require.NoError(t, err)
	assert.Equal(t, models.ElectionOpen, status)

	status, err = f.svc.SetStatus(context.Background(), dto.ElectionActionRequest{Action: "close"})
	require.NoError(t, err)
	assert.Equal(t, models.ElectionClosed, status)
	assert.Equal(t, []models.ElectionStatus{models.ElectionOpen, models.ElectionClosed}, f.config.statuses)

	_, err = f.svc.SetStatus(context.Background(), dto.ElectionActionRequest{Action: "pause"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Len(t, f.config.statuses, 2)
}

func TestElectionServiceResetCodes(t *testing.T) {
	f := newElectionFixture()
	f.students.students = []models.Student{
		{ID: "a", Grade: 1, Course: 1, ListNumber: 1},
		{ID: "b", Grade: 12, Course: 3, ListNumber: 45},
		{ID: "c", Grade: 2, Course: 1, ListNumber: 7},
	}
	f.students.updateErrs = map[string]error{"c": errStore}

	updated, err := f.svc.ResetCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, map[string]string{"a": "01101", "b": "12345"}, f.students.updated)
}

func TestElectionServiceResetVotes(t *testing.T) {
	f := newElectionFixture()
	f.votes.deleteAllErr = errStore

	require.NoError(t, f.svc.ResetVotes(context.Background()))
	assert.Equal(t, 1, f.students.resets)
	assert.Equal(t, 1, f.candidates.resets)
	assert.Equal(t, 1, f.votes.clears)
	assert.Equal(t, 1, f.cache.deleteCalls)
}

func TestElectionServiceResetVotesFatalSteps(t *testing.T) {
	f := newElectionFixture()
	f.students.resetErr = errStore
	err := f.svc.ResetVotes(context.Background())
	require.Error(t, err)
	assert.Equal(t, "failed to reset students", appErrors.FromError(err).Message)
	assert.Equal(t, 0, f.candidates.resets)

	f = newElectionFixture()
	f.candidates.resetErr = errStore
	err = f.svc.ResetVotes(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
	assert.Equal(t, 0, f.votes.clears)
}

func TestElectionServiceClearData(t *testing.T) {
	f := newElectionFixture()

	err := f.svc.ClearData(context.Background(), dto.ClearDataRequest{Confirm: "eliminar todo"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Equal(t, 0, f.students.clears)

	f.students.deleteAllErr = errors.New("permission denied")
	require.NoError(t, f.svc.ClearData(context.Background(), dto.ClearDataRequest{Confirm: ClearDataConfirmation}))
	assert.Equal(t, 1, f.votes.clears)
	assert.Equal(t, 1, f.students.clears)
	assert.Equal(t, 1, f.candidates.clears)
	assert.Equal(t, []models.ElectionStatus{models.ElectionClosed}, f.config.statuses)
	assert.Equal(t, 1, f.cache.deleteCalls)
}

func TestElectionServiceClearStudents(t *testing.T) {
	f := newElectionFixture()
	require.NoError(t, f.svc.ClearStudents(context.Background()))
	assert.Equal(t, 1, f.students.clears)
	assert.Equal(t, 0, f.candidates.clears)
	assert.Equal(t, 0, f.votes.clears)
}

func TestElectionServiceBranding(t *testing.T) {
	f := newElectionFixture()
	name := "Liceo Norte"
	f.config.branding = &models.Branding{SchoolName: &name}

	branding, err := f.svc.Branding(context.Background())
	require.NoError(t, err)
	require.NotNil(t, branding.SchoolName)
	assert.Equal(t, "Liceo Norte", *branding.SchoolName)
	assert.Nil(t, branding.SchoolLogoURL)

	f.config.err = errors.New("connection refused")
	_, err = f.svc.Branding(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}
