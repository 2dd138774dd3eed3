package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/internal/service"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
	"github.com/noah-isme/sma-vote-api/pkg/response"
	"github.com/noah-isme/sma-vote-api/pkg/spreadsheet"
)

type rosterService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	DeleteStudent(ctx context.Context, req dto.IDRequest) error
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (*models.Candidate, error)
	UpdateCandidatePhoto(ctx context.Context, req dto.UpdateCandidatePhotoRequest) error
	DeleteCandidate(ctx context.Context, req dto.IDRequest) error
}

type electionService interface {
	SetStatus(ctx context.Context, req dto.ElectionActionRequest) (models.ElectionStatus, error)
	ResetCodes(ctx context.Context) (int, error)
	ResetVotes(ctx context.Context) error
	ClearData(ctx context.Context, req dto.ClearDataRequest) error
	ClearStudents(ctx context.Context) error
}

type importService interface {
	Import(ctx context.Context, req dto.ImportStudentsRequest) (*dto.ImportSummary, error)
}

type exportService interface {
	Export(ctx context.Context, kind, format string) (*service.ExportFile, error)
}

// AdminHandler serves the admin panel sub-endpoints.
type AdminHandler struct {
	roster   rosterService
	election electionService
	importer importService
	exporter exportService
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(roster rosterService, election electionService, importer importService, exporter exportService) *AdminHandler {
	return &AdminHandler{roster: roster, election: election, importer: importer, exporter: exporter}
}

// Login godoc
// @Summary Connectivity probe for the admin panel
// @Description Always succeeds; the admin code is checked by every other admin call.
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	response.Success(c)
}

// Students godoc
// @Summary List or delete students
// @Tags Admin
// @Accept json
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Param payload body dto.IDRequest false "Student to delete"
// @Success 200 {object} map[string][]models.Student
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Router /admin/students [get]
// @Router /admin/students [delete]
func (h *AdminHandler) Students(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Request.Method {
	case http.MethodGet:
		students, err := h.roster.ListStudents(ctx)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"students": students})
	case http.MethodDelete:
		var req dto.IDRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		if err := h.roster.DeleteStudent(ctx, req); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c)
	default:
		allowMethods(c, http.MethodGet, http.MethodDelete)
	}
}

// Candidates godoc
// @Summary Manage candidates
// @Tags Admin
// @Accept json
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Param payload body dto.CreateCandidateRequest false "Candidate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Router /admin/candidates [get]
// @Router /admin/candidates [post]
// @Router /admin/candidates [put]
// @Router /admin/candidates [delete]
func (h *AdminHandler) Candidates(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Request.Method {
	case http.MethodGet:
		candidates, err := h.roster.ListCandidates(ctx)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"candidates": candidates})
	case http.MethodPost:
		var req dto.CreateCandidateRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		candidate, err := h.roster.CreateCandidate(ctx, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"candidate": candidate})
	case http.MethodPut:
		var req dto.UpdateCandidatePhotoRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		if err := h.roster.UpdateCandidatePhoto(ctx, req); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c)
	case http.MethodDelete:
		var req dto.IDRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		if err := h.roster.DeleteCandidate(ctx, req); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c)
	default:
		allowMethods(c, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)
	}
}

// Election godoc
// @Summary Open or close the election
// @Tags Admin
// @Accept json
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Param payload body dto.ElectionActionRequest true "Action"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Error
// @Router /admin/election [post]
func (h *AdminHandler) Election(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	var req dto.ElectionActionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	status, err := h.election.SetStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"status": status})
}

// Import godoc
// @Summary Bulk import students
// @Description Accepts {"students":[...]} or a multipart xlsx upload in field "file" with columns full_name, grade, course.
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Param payload body dto.ImportStudentsRequest false "Students"
// @Param file formData file false "xlsx roster"
// @Success 200 {object} dto.ImportSummary
// @Failure 400 {object} errors.Error
// @Router /admin/import [post]
func (h *AdminHandler) Import(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}

	var req dto.ImportStudentsRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		students, err := readRosterUpload(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Students = students
	} else if err := bindJSON(c, &req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.FromError(err), "invalid format: expected an array of students"))
		return
	}

	summary, err := h.importer.Import(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

func readRosterUpload(c *gin.Context) ([]dto.RawStudent, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file required")
	}
	defer file.Close()

	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid spreadsheet")
	}
	students := make([]dto.RawStudent, 0, len(rows))
	for _, row := range rows {
		students = append(students, dto.RawStudent{
			FullName: row["full_name"],
			Grade:    row["grade"],
			Course:   row["course"],
		})
	}
	return students, nil
}

// ResetCodes godoc
// @Summary Regenerate every access code from grade, course and list number
// @Tags Admin
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Success 200 {object} map[string]interface{}
// @Router /admin/reset-codes [post]
func (h *AdminHandler) ResetCodes(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	updated, err := h.election.ResetCodes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": fmt.Sprintf("%d codes regenerated", updated), "updated": updated})
}

// ResetVotes godoc
// @Summary Reset all votes so students can vote again
// @Tags Admin
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.Error
// @Router /admin/reset-votes [post]
func (h *AdminHandler) ResetVotes(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	if err := h.election.ResetVotes(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "voting reset; students may vote again"})
}

// ClearData godoc
// @Summary Delete votes, students and candidates and close the election
// @Tags Admin
// @Accept json
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Param payload body dto.ClearDataRequest true "Confirmation phrase"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Error
// @Router /admin/clear-data [post]
func (h *AdminHandler) ClearData(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	var req dto.ClearDataRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.election.ClearData(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "data deleted"})
}

// ClearStudents godoc
// @Summary Delete every student
// @Tags Admin
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Success 200 {object} map[string]interface{}
// @Router /admin/clear-students [post]
func (h *AdminHandler) ClearStudents(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	if err := h.election.ClearStudents(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "students deleted"})
}

// Export godoc
// @Summary Download access codes or results
// @Tags Admin
// @Produce text/csv,application/pdf
// @Param x-admin-code header string true "Admin code"
// @Param type query string true "codes or results"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} errors.Error
// @Router /admin/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	if !allowMethods(c, http.MethodGet) {
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), c.Query("type"), strings.ToLower(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
