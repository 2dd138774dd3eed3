package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/internal/repository"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

var errDuplicate = fmt.Errorf("create student: %w: %v", repository.ErrDuplicateAccessCode, "pq: duplicate key value violates unique constraint")

func raw(name interface{}, grade, course interface{}) dto.RawStudent {
	return dto.RawStudent{FullName: name, Grade: grade, Course: course}
}

func codes(students []models.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.AccessCode)
	}
	return out
}

func fullGroup(grade, course int) []models.Student {
	students := make([]models.Student, 0, models.MaxListNumber)
	for list := 1; list <= models.MaxListNumber; list++ {
		students = append(students, models.Student{
			FullName:   fmt.Sprintf("Student %d", list),
			Grade:      grade,
			Course:     course,
			ListNumber: list,
			AccessCode: models.AccessCode(grade, course, list),
		})
	}
	return students
}

func TestImportServiceDuplicateWithinBatch(t *testing.T) {
	repo := &stubStudentRepo{}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Ana Ruiz", float64(1), float64(1)),
		raw("Ana Ruiz", float64(1), float64(1)),
	}})
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Valid)
	assert.Equal(t, 1, summary.Groups)
	assert.False(t, summary.HasErrors)
	assert.Empty(t, summary.Errors)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "01101", repo.created[0].AccessCode)
	assert.Equal(t, 1, repo.created[0].ListNumber)
}

func TestImportServiceSkipsExistingStudents(t *testing.T) {
	repo := &stubStudentRepo{students: []models.Student{
		{FullName: "Ana Ruiz ", Grade: 1, Course: 1, ListNumber: 4, AccessCode: "01104"},
	}}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("  ANA RUIZ", "1", "1"),
		raw("Beto Soto", "1", "1"),
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, []string{"01105"}, codes(repo.created))
}

func TestImportServiceAllRegistered(t *testing.T) {
	repo := &stubStudentRepo{students: []models.Student{
		{FullName: "Ana Ruiz", Grade: 1, Course: 1, ListNumber: 1, AccessCode: "01101"},
	}}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("ana ruiz", float64(1), float64(1)),
	}})
	require.NoError(t, err)
	assert.True(t, summary.Success)
	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Valid)
	assert.Equal(t, 0, summary.Groups)
	assert.Equal(t, "all students were already registered", summary.Message)
	assert.NotNil(t, summary.Errors)
	assert.Empty(t, repo.attempts)
}

func TestImportServiceGroupsInFirstSeenOrder(t *testing.T) {
	repo := &stubStudentRepo{}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Ana", float64(2), float64(1)),
		raw("Beto", float64(1), float64(1)),
		raw("Carla", float64(2), float64(1)),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Groups)
	assert.Equal(t, []string{"02101", "02102", "01101"}, codes(repo.created))
}

func TestImportServiceSkipsCodesInUse(t *testing.T) {
	// A legacy row holds 01103 under a different list number.
	repo := &stubStudentRepo{students: []models.Student{
		{FullName: "Ana", Grade: 1, Course: 1, ListNumber: 2, AccessCode: "01102"},
		{FullName: "Legacy", Grade: 9, Course: 9, ListNumber: 1, AccessCode: "01103"},
	}}
	svc := NewImportService(repo, nil, nil, nil)

	_, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Beto", float64(1), float64(1)),
		raw("Carla", float64(1), float64(1)),
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"01104", "01105"}, codes(repo.created))
}

func TestImportServiceExhaustedGroupDropsStudents(t *testing.T) {
	repo := &stubStudentRepo{students: fullGroup(1, 1)}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Overflow", float64(1), float64(1)),
		raw("Other Course", float64(1), float64(2)),
	}})
	require.NoError(t, err)
	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Valid)
	assert.Equal(t, 2, summary.Groups)
	assert.Equal(t, []string{"01201"}, codes(repo.created))
}

func TestImportServiceNoAssignableCodes(t *testing.T) {
	repo := &stubStudentRepo{students: fullGroup(1, 1)}
	svc := NewImportService(repo, nil, nil, nil)

	_, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Overflow", float64(1), float64(1)),
	}})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "no available codes could be assigned", appErr.Message)
}

func TestImportServiceRetriesAfterConcurrentInsert(t *testing.T) {
	repo := &stubStudentRepo{createErrs: []error{errDuplicate, nil}}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Ana", float64(1), float64(1)),
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.False(t, summary.HasErrors)
	assert.Equal(t, []string{"01101", "01102"}, repo.attempts)
	require.Len(t, repo.created, 1)
	assert.Equal(t, 2, repo.created[0].ListNumber)
}

func TestImportServiceRetryAvoidsReservedCodes(t *testing.T) {
	// Ana collides on 01101; 01102 is reserved for Beto in the same batch.
	repo := &stubStudentRepo{createErrs: []error{errDuplicate, nil, nil}}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Ana", float64(1), float64(1)),
		raw("Beto", float64(1), float64(1)),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, []string{"01101", "01103", "01102"}, repo.attempts)
}

func TestImportServiceRetryExhausted(t *testing.T) {
	existing := fullGroup(1, 1)[:98]
	repo := &stubStudentRepo{students: existing, createErrs: []error{errDuplicate}}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{
		raw("Late", float64(1), float64(1)),
	}})
	require.NoError(t, err)
	assert.False(t, summary.Success)
	assert.Equal(t, 0, summary.Imported)
	assert.True(t, summary.HasErrors)
	assert.Equal(t, []string{"Late: no code available"}, summary.Errors)
	assert.Equal(t, []string{"01199"}, repo.attempts)
}

func TestImportServiceReportsInsertErrors(t *testing.T) {
	failures := make([]error, 12)
	students := make([]dto.RawStudent, 12)
	for i := range failures {
		failures[i] = errors.New("create student: pq: value too long")
		students[i] = raw(fmt.Sprintf("Student %02d", i), float64(3), float64(1))
	}
	repo := &stubStudentRepo{createErrs: failures}
	svc := NewImportService(repo, nil, nil, nil)

	summary, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: students})
	require.NoError(t, err)
	assert.False(t, summary.Success)
	assert.True(t, summary.HasErrors)
	assert.Len(t, summary.Errors, 10)
	assert.Equal(t, "Student 00: create student: pq: value too long", summary.Errors[0])
	assert.Equal(t, 12, summary.Valid)
}

func TestImportServiceRejectsInvalidPayloads(t *testing.T) {
	svc := NewImportService(&stubStudentRepo{}, nil, nil, nil)

	cases := map[string]dto.ImportStudentsRequest{
		"invalid format: expected an array of students": {},
		"no students to import":                         {Students: []dto.RawStudent{}},
		"no valid students to import": {Students: []dto.RawStudent{
			raw("", float64(1), float64(1)),
			raw("   ", float64(1), float64(1)),
			raw(nil, float64(1), float64(1)),
			raw("Neg", float64(-1), float64(1)),
			raw("Text", "abc", float64(1)),
			raw("Course", float64(1), float64(10)),
			raw("Negative course", float64(1), "-2"),
		}},
	}
	for message, req := range cases {
		_, err := svc.Import(context.Background(), req)
		require.Error(t, err, message)
		appErr := appErrors.FromError(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status, message)
		assert.Equal(t, message, appErr.Message)
	}
}

func TestImportServiceRosterLoadFailure(t *testing.T) {
	svc := NewImportService(&stubStudentRepo{listErr: errStore}, nil, nil, nil)
	_, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{raw("Ana", float64(1), float64(1))}})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "connection refused", appErr.Details)
}

func TestImportServiceInvalidatesCache(t *testing.T) {
	cacheRepo := newStubCacheRepo()
	cache := NewCacheService(cacheRepo, nil, 0, nil, true)
	svc := NewImportService(&stubStudentRepo{}, NewMetricsService(), cache, nil)

	_, err := svc.Import(context.Background(), dto.ImportStudentsRequest{Students: []dto.RawStudent{raw("Ana", float64(1), float64(1))}})
	require.NoError(t, err)
	assert.Equal(t, []string{"vote:*"}, cacheRepo.patterns)
}

func TestNormalizeRoster(t *testing.T) {
	entries := normalizeRoster([]dto.RawStudent{
		raw(" Ana ", "3", "2B"),
		raw("Beto", float64(4.9), ""),
		raw("Carla", json.Number("5"), float64(0)),
		raw("Dani", "07", nil),
		raw(float64(2024), float64(1), float64(9)),
		raw(true, float64(1), float64(1)),
	})
	assert.Equal(t, []rosterEntry{
		{FullName: "Ana", Grade: 3, Course: 2},
		{FullName: "Beto", Grade: 4, Course: 1},
		{FullName: "Carla", Grade: 5, Course: 1},
		{FullName: "Dani", Grade: 7, Course: 1},
		{FullName: "2024", Grade: 1, Course: 9},
	}, entries)
}

func TestLeadingInt(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{"12", 12, true},
		{" 12abc", 12, true},
		{"-3", -3, true},
		{"+4", 4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{float64(2.7), 2, true},
		{json.Number("8"), 8, true},
		{7, 7, true},
		{nil, 0, false},
		{false, 0, false},
	}
	for _, tc := range cases {
		got, ok := leadingInt(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}
