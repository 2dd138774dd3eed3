package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

type stubConfigRepo struct {
	cfg        *models.ElectionConfig
	err        error
	branding   *models.Branding
	logo       *string
	name       string
	statuses   []models.ElectionStatus
	updateErr  error
	statusErr  error
	brandCalls int
}

func (s *stubConfigRepo) Get(ctx context.Context) (*models.ElectionConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

func (s *stubConfigRepo) Branding(ctx context.Context) (*models.Branding, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.branding, nil
}

func (s *stubConfigRepo) UpdateBranding(ctx context.Context, logoURL *string, schoolName string) error {
	s.brandCalls++
	s.logo = logoURL
	s.name = schoolName
	return s.updateErr
}

func (s *stubConfigRepo) SetStatus(ctx context.Context, status models.ElectionStatus) error {
	s.statuses = append(s.statuses, status)
	return s.statusErr
}

type stubSettingRepo struct {
	setting *models.SystemSetting
	err     error
}

func (s *stubSettingRepo) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.setting == nil {
		return nil, sql.ErrNoRows
	}
	return s.setting, nil
}

type stubStudentRepo struct {
	students      []models.Student
	participation []models.ParticipationRow
	listErr       error
	findErr       error
	countErr      error
	deleteErr     error
	resetErr      error
	deleteAllErr  error

	// createErrs is consumed one entry per Create call; nil entries succeed.
	createErrs []error
	created    []models.Student
	attempts   []string

	updateErrs map[string]error
	updated    map[string]string
	deleted    []string
	resets     int
	clears     int
}

func (s *stubStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	return s.students, s.listErr
}

func (s *stubStudentRepo) ListForImport(ctx context.Context) ([]models.Student, error) {
	return s.students, s.listErr
}

func (s *stubStudentRepo) ListCodeInputs(ctx context.Context) ([]models.Student, error) {
	return s.students, s.listErr
}

func (s *stubStudentRepo) ListParticipation(ctx context.Context) ([]models.ParticipationRow, error) {
	return s.participation, s.listErr
}

func (s *stubStudentRepo) FindByAccessCode(ctx context.Context, code string) (*models.Student, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, st := range s.students {
		if st.AccessCode == code {
			found := st
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubStudentRepo) Count(ctx context.Context, votedOnly bool) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	n := 0
	for _, st := range s.students {
		if !votedOnly || st.HasVoted {
			n++
		}
	}
	return n, nil
}

func (s *stubStudentRepo) Create(ctx context.Context, student *models.Student) error {
	s.attempts = append(s.attempts, student.AccessCode)
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	s.created = append(s.created, *student)
	return nil
}

func (s *stubStudentRepo) UpdateAccessCode(ctx context.Context, id, code string) error {
	if err := s.updateErrs[id]; err != nil {
		return err
	}
	if s.updated == nil {
		s.updated = make(map[string]string)
	}
	s.updated[id] = code
	return nil
}

func (s *stubStudentRepo) ResetVoted(ctx context.Context) error {
	s.resets++
	return s.resetErr
}

func (s *stubStudentRepo) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

func (s *stubStudentRepo) DeleteAll(ctx context.Context) error {
	s.clears++
	return s.deleteAllErr
}

type stubCandidateRepo struct {
	candidates   []models.Candidate
	public       []models.PublicCandidate
	sum          int
	err          error
	resetErr     error
	deleteAllErr error
	created      *models.Candidate
	photos       map[string]*string
	deleted      []string
	resets       int
	clears       int
	calls        *[]string
}

func (s *stubCandidateRepo) ListPublic(ctx context.Context) ([]models.PublicCandidate, error) {
	return s.public, s.err
}

func (s *stubCandidateRepo) List(ctx context.Context) ([]models.Candidate, error) {
	return s.candidates, s.err
}

func (s *stubCandidateRepo) SumVotes(ctx context.Context) (int, error) {
	return s.sum, s.err
}

func (s *stubCandidateRepo) Create(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	created := *candidate
	created.ID = "cand-1"
	s.created = &created
	return &created, nil
}

func (s *stubCandidateRepo) UpdatePhoto(ctx context.Context, id string, photoURL *string) error {
	if s.photos == nil {
		s.photos = make(map[string]*string)
	}
	s.photos[id] = photoURL
	return s.err
}

func (s *stubCandidateRepo) ResetVotes(ctx context.Context) error {
	s.resets++
	return s.resetErr
}

func (s *stubCandidateRepo) Delete(ctx context.Context, id string) error {
	if s.calls != nil {
		*s.calls = append(*s.calls, "candidate:"+id)
	}
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubCandidateRepo) DeleteAll(ctx context.Context) error {
	s.clears++
	return s.deleteAllErr
}

type stubVoteRepo struct {
	result       *models.CastVoteResult
	err          error
	deleteErr    error
	deleteAllErr error
	clears       int
	calls        *[]string
}

func (s *stubVoteRepo) Cast(ctx context.Context, accessCode, candidateID string) (*models.CastVoteResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubVoteRepo) DeleteByCandidate(ctx context.Context, candidateID string) error {
	if s.calls != nil {
		*s.calls = append(*s.calls, "votes:"+candidateID)
	}
	return s.deleteErr
}

func (s *stubVoteRepo) DeleteAll(ctx context.Context) error {
	s.clears++
	return s.deleteAllErr
}

type stubViewRepo struct {
	byGrade []models.ViewRow
	results []models.ViewRow
	err     error
}

func (s *stubViewRepo) ParticipationByGrade(ctx context.Context) ([]models.ViewRow, error) {
	return s.byGrade, s.err
}

func (s *stubViewRepo) ElectionResults(ctx context.Context) ([]models.ViewRow, error) {
	return s.results, s.err
}

type stubCacheRepo struct {
	store       map[string][]byte
	patterns    []string
	getErr      error
	setCalls    int
	deleteCalls int
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{store: make(map[string][]byte)}
}

func (s *stubCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.setCalls++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	s.deleteCalls++
	s.patterns = append(s.patterns, pattern)
	s.store = make(map[string][]byte)
	return nil
}

var errStore = errors.New("connection refused")
