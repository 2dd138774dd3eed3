package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/internal/repository"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

// maxReportedImportErrors caps the per-student error samples in an import summary.
const maxReportedImportErrors = 10

type importStudentRepository interface {
	ListForImport(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

// ImportService bulk loads students, assigning list numbers and access codes per group.
type ImportService struct {
	students importStudentRepository
	metrics  *MetricsService
	cache    *CacheService
	logger   *zap.Logger
}

// NewImportService constructs ImportService.
func NewImportService(students importStudentRepository, metrics *MetricsService, cache *CacheService, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{students: students, metrics: metrics, cache: cache, logger: logger}
}

type rosterEntry struct {
	FullName string
	Grade    int
	Course   int
}

func (e rosterEntry) key() string {
	return fmt.Sprintf("%s|%d|%d", strings.ToLower(strings.TrimSpace(e.FullName)), e.Grade, e.Course)
}

type importGroup struct {
	key      models.GroupKey
	students []rosterEntry
}

// Import registers the submitted students. Students already on the roster (same name
// ignoring case, grade and course) are skipped. Per-student insert failures are reported in
// the summary instead of failing the call.
func (s *ImportService) Import(ctx context.Context, req dto.ImportStudentsRequest) (*dto.ImportSummary, error) {
	if req.Students == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid format: expected an array of students")
	}
	if len(req.Students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no students to import")
	}

	valid := normalizeRoster(req.Students)
	if len(valid) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no valid students to import")
	}

	existing, err := s.students.ListForImport(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing students")
	}

	usedCodes := make(map[string]struct{}, len(existing)+len(valid))
	maxList := make(map[models.GroupKey]int)
	known := make(map[string]struct{}, len(existing)+len(valid))
	for _, student := range existing {
		if student.AccessCode != "" {
			usedCodes[student.AccessCode] = struct{}{}
		}
		group := models.GroupKey{Grade: student.Grade, Course: student.Course}
		if student.ListNumber > maxList[group] {
			maxList[group] = student.ListNumber
		}
		known[rosterEntry{FullName: student.FullName, Grade: student.Grade, Course: student.Course}.key()] = struct{}{}
	}

	skipped := 0
	fresh := make([]rosterEntry, 0, len(valid))
	for _, entry := range valid {
		k := entry.key()
		if _, dup := known[k]; dup {
			skipped++
			continue
		}
		known[k] = struct{}{}
		fresh = append(fresh, entry)
	}
	s.metrics.ObserveImport(ImportResultSkipped, skipped)

	if len(fresh) == 0 {
		return &dto.ImportSummary{
			Success: true,
			Skipped: skipped,
			Total:   len(req.Students),
			Message: "all students were already registered",
			Errors:  []string{},
		}, nil
	}

	groups := groupRoster(fresh)
	pending := assignCodes(groups, maxList, usedCodes)
	if len(pending) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no available codes could be assigned")
	}

	inserted := 0
	var failures []string
	for i := range pending {
		if err := s.insert(ctx, &pending[i], usedCodes); err != nil {
			failures = append(failures, err.Error())
			continue
		}
		inserted++
	}
	s.metrics.ObserveImport(ImportResultInserted, inserted)
	s.metrics.ObserveImport(ImportResultFailed, len(failures))
	if inserted > 0 {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("students imported",
		zap.Int("imported", inserted),
		zap.Int("skipped", skipped),
		zap.Int("failed", len(failures)),
		zap.Int("groups", len(groups)),
	)

	summary := &dto.ImportSummary{
		Success:   inserted > 0 || skipped > 0,
		Imported:  inserted,
		Skipped:   skipped,
		Total:     len(req.Students),
		Valid:     len(pending),
		Groups:    len(groups),
		Errors:    []string{},
		HasErrors: len(failures) > 0,
	}
	if len(failures) > maxReportedImportErrors {
		failures = failures[:maxReportedImportErrors]
	}
	summary.Errors = append(summary.Errors, failures...)
	return summary, nil
}

// insert stores student. When another writer took its code first, later list numbers of the
// same group are tried until one is accepted.
func (s *ImportService) insert(ctx context.Context, student *models.Student, usedCodes map[string]struct{}) error {
	err := s.students.Create(ctx, student)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrDuplicateAccessCode) {
		return fmt.Errorf("%s: %s", student.FullName, err.Error())
	}

	for list := student.ListNumber + 1; list <= models.MaxListNumber; list++ {
		code := models.AccessCode(student.Grade, student.Course, list)
		if _, taken := usedCodes[code]; taken {
			continue
		}
		usedCodes[code] = struct{}{}
		student.ListNumber = list
		student.AccessCode = code
		err := s.students.Create(ctx, student)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateAccessCode) {
			return fmt.Errorf("%s: %s", student.FullName, err.Error())
		}
		s.logger.Debug("access code taken concurrently", zap.String("access_code", code))
	}
	return fmt.Errorf("%s: no code available", student.FullName)
}

// groupRoster buckets entries by (grade, course) keeping first-seen group order.
func groupRoster(entries []rosterEntry) []*importGroup {
	index := make(map[models.GroupKey]*importGroup)
	var groups []*importGroup
	for _, entry := range entries {
		k := models.GroupKey{Grade: entry.Grade, Course: entry.Course}
		group, ok := index[k]
		if !ok {
			group = &importGroup{key: k}
			index[k] = group
			groups = append(groups, group)
		}
		group.students = append(group.students, entry)
	}
	return groups
}

// assignCodes hands out list numbers after the current group maximum, skipping codes in
// use. Students of a group with no free list number left are dropped.
func assignCodes(groups []*importGroup, maxList map[models.GroupKey]int, usedCodes map[string]struct{}) []models.Student {
	var pending []models.Student
	for _, group := range groups {
		next := maxList[group.key] + 1
		for _, entry := range group.students {
			for next <= models.MaxListNumber {
				if _, taken := usedCodes[models.AccessCode(group.key.Grade, group.key.Course, next)]; !taken {
					break
				}
				next++
			}
			if next > models.MaxListNumber {
				continue
			}
			code := models.AccessCode(group.key.Grade, group.key.Course, next)
			usedCodes[code] = struct{}{}
			pending = append(pending, models.Student{
				FullName:   entry.FullName,
				Grade:      group.key.Grade,
				Course:     group.key.Course,
				ListNumber: next,
				AccessCode: code,
			})
			next++
		}
	}
	return pending
}

// normalizeRoster trims names and parses grade and course, dropping unusable lines.
// A course that is missing, unparsable or zero becomes 1.
func normalizeRoster(raw []dto.RawStudent) []rosterEntry {
	entries := make([]rosterEntry, 0, len(raw))
	for _, line := range raw {
		name, ok := rosterName(line.FullName)
		if !ok {
			continue
		}
		grade, ok := leadingInt(line.Grade)
		if !ok || grade < 0 {
			continue
		}
		course, ok := leadingInt(line.Course)
		if !ok || course == 0 {
			course = 1
		}
		if course < 1 || course > 9 {
			continue
		}
		entries = append(entries, rosterEntry{FullName: name, Grade: grade, Course: course})
	}
	return entries
}

func rosterName(v interface{}) (string, bool) {
	switch name := v.(type) {
	case string:
		trimmed := strings.TrimSpace(name)
		return trimmed, trimmed != ""
	case float64:
		if name == 0 || math.IsNaN(name) {
			return "", false
		}
		return strconv.FormatFloat(name, 'f', -1, 64), true
	case json.Number:
		return name.String(), name.String() != "0"
	}
	return "", false
}

// leadingInt reads the integer prefix of v the way loosely typed spreadsheet exports expect:
// "7B" is 7, 2.9 is 2, "" and "abc" are not numbers.
func leadingInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(math.Trunc(n)), true
	case json.Number:
		return leadingInt(n.String())
	case string:
		s := strings.TrimSpace(n)
		end := 0
		if end < len(s) && (s[end] == '-' || s[end] == '+') {
			end++
		}
		digits := end
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == digits {
			return 0, false
		}
		parsed, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
