package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/internal/service"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

const testAdminCode = "admin-123"

type stubAccess struct {
	votePassword string
}

func (s *stubAccess) AuthorizeAdmin(ctx context.Context, provided string) error {
	if !service.AdminCodeMatches(provided, testAdminCode) {
		return appErrors.Clone(appErrors.ErrUnauthorized, "unauthorized")
	}
	return nil
}

func (s *stubAccess) AuthorizeVoter(ctx context.Context, provided string) error {
	if !service.VotePasswordMatches(provided, s.votePassword) {
		return appErrors.Clone(appErrors.ErrUnauthorized, "unauthorized")
	}
	return nil
}

type stubBallot struct {
	verified dto.VerifyCodeRequest
	cast     dto.CastVoteRequest
	castErr  error
	panicMsg string
}

func (s *stubBallot) Status(ctx context.Context) (*dto.StatusResponse, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	name := "Colegio"
	return &dto.StatusResponse{Open: true, Status: "open", SchoolName: &name}, nil
}

func (s *stubBallot) VerifyCode(ctx context.Context, req dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error) {
	s.verified = req
	if req.AccessCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid code: must be 5 digits")
	}
	return &dto.VerifyCodeResponse{Valid: true, Student: dto.VoterProfile{Name: "Ana Ruiz", Grade: 1, Course: 1}}, nil
}

func (s *stubBallot) CastVote(ctx context.Context, req dto.CastVoteRequest) (*dto.CastVoteResponse, error) {
	s.cast = req
	if s.castErr != nil {
		return nil, s.castErr
	}
	return &dto.CastVoteResponse{Success: true, Message: "vote recorded successfully", Student: json.RawMessage(`{"name":"Ana Ruiz"}`)}, nil
}

func (s *stubBallot) Candidates(ctx context.Context) ([]models.PublicCandidate, error) {
	return []models.PublicCandidate{{ID: "c1", Name: "Lista Azul"}}, nil
}

type stubBranding struct {
	updated *dto.BrandingRequest
}

func (s *stubBranding) Branding(ctx context.Context) (*models.Branding, error) {
	name := "Colegio"
	return &models.Branding{SchoolName: &name}, nil
}

func (s *stubBranding) UpdateBranding(ctx context.Context, req dto.BrandingRequest) error {
	s.updated = &req
	return nil
}

type stubRoster struct {
	deletedStudent   string
	deletedCandidate string
	created          dto.CreateCandidateRequest
	photo            dto.UpdateCandidatePhotoRequest
}

func (s *stubRoster) ListStudents(ctx context.Context) ([]models.Student, error) {
	return []models.Student{{ID: "s1", FullName: "Ana Ruiz", Grade: 1, Course: 1, ListNumber: 1, AccessCode: "01101"}}, nil
}

func (s *stubRoster) DeleteStudent(ctx context.Context, req dto.IDRequest) error {
	if req.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id required")
	}
	s.deletedStudent = req.ID
	return nil
}

func (s *stubRoster) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return []models.Candidate{{ID: "c1", Name: "Lista Azul", Votes: 3}}, nil
}

func (s *stubRoster) CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (*models.Candidate, error) {
	s.created = req
	return &models.Candidate{ID: "c2", Name: req.Name, Party: req.Party}, nil
}

func (s *stubRoster) UpdateCandidatePhoto(ctx context.Context, req dto.UpdateCandidatePhotoRequest) error {
	s.photo = req
	return nil
}

func (s *stubRoster) DeleteCandidate(ctx context.Context, req dto.IDRequest) error {
	s.deletedCandidate = req.ID
	return nil
}

type stubElection struct {
	confirm string
	resets  int
}

func (s *stubElection) SetStatus(ctx context.Context, req dto.ElectionActionRequest) (models.ElectionStatus, error) {
	switch req.Action {
	case "open":
		return models.ElectionOpen, nil
	case "close":
		return models.ElectionClosed, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, "invalid action: use open or close")
}

func (s *stubElection) ResetCodes(ctx context.Context) (int, error) { return 4, nil }

func (s *stubElection) ResetVotes(ctx context.Context) error {
	s.resets++
	return nil
}

func (s *stubElection) ClearData(ctx context.Context, req dto.ClearDataRequest) error {
	s.confirm = req.Confirm
	if req.Confirm != "ELIMINAR TODO" {
		return appErrors.Clone(appErrors.ErrValidation, "confirmation required")
	}
	return nil
}

func (s *stubElection) ClearStudents(ctx context.Context) error { return nil }

type stubImporter struct {
	received dto.ImportStudentsRequest
}

func (s *stubImporter) Import(ctx context.Context, req dto.ImportStudentsRequest) (*dto.ImportSummary, error) {
	s.received = req
	return &dto.ImportSummary{Success: true, Imported: len(req.Students), Total: len(req.Students), Valid: len(req.Students), Groups: 1, Errors: []string{}}, nil
}

type stubExporter struct {
	kind, format string
}

func (s *stubExporter) Export(ctx context.Context, kind, format string) (*service.ExportFile, error) {
	s.kind, s.format = kind, format
	return &service.ExportFile{Filename: "codes.csv", ContentType: "text/csv", Data: []byte("Grade,Course\n")}, nil
}

type stubReports struct{}

func (stubReports) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{General: dto.GeneralStats{TotalStudents: 3, TotalVoted: 2, Participation: 67}, ByGrade: []models.ViewRow{}, Results: []models.ViewRow{}}, nil
}

func (stubReports) Monitor(ctx context.Context) (*dto.MonitorResponse, error) {
	return &dto.MonitorResponse{Courses: []dto.CourseParticipation{}, Grades: []dto.GradeParticipation{}, LastUpdate: "10:00:00"}, nil
}

func (stubReports) Results(ctx context.Context) (*dto.ResultsResponse, error) {
	return &dto.ResultsResponse{Message: "no votes registered yet", Results: []models.ViewRow{}}, nil
}
