package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
)

// monitorClockLayout renders the monitor snapshot time on the server clock.
const monitorClockLayout = "15:04:05"

type reportStudentRepository interface {
	Count(ctx context.Context, votedOnly bool) (int, error)
	ListParticipation(ctx context.Context) ([]models.ParticipationRow, error)
}

type reportCandidateRepository interface {
	SumVotes(ctx context.Context) (int, error)
}

type reportViewRepository interface {
	ParticipationByGrade(ctx context.Context) ([]models.ViewRow, error)
	ElectionResults(ctx context.Context) ([]models.ViewRow, error)
}

// ReportService builds the dashboard, monitor and results payloads.
type ReportService struct {
	students   reportStudentRepository
	candidates reportCandidateRepository
	views      reportViewRepository
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs ReportService.
func NewReportService(students reportStudentRepository, candidates reportCandidateRepository, views reportViewRepository, cache *CacheService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{students: students, candidates: candidates, views: views, cache: cache, logger: logger, now: time.Now}
}

// Stats returns turnout counters plus the participation and results views.
func (s *ReportService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var cached dto.StatsResponse
	if s.cache.Get(ctx, CacheKeyStats, &cached) {
		return &cached, nil
	}

	total, voted, err := s.turnout(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stats")
	}
	votes, err := s.candidates.SumVotes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stats")
	}
	byGrade, err := s.views.ParticipationByGrade(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stats")
	}
	results, err := s.views.ElectionResults(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stats")
	}

	stats := &dto.StatsResponse{
		General: dto.GeneralStats{
			TotalStudents: total,
			TotalVoted:    voted,
			TotalVotes:    votes,
			Participation: percentage(voted, total),
		},
		ByGrade: byGrade,
		Results: results,
	}
	s.cache.Set(ctx, CacheKeyStats, stats)
	return stats, nil
}

// Monitor groups live participation per course and per grade.
func (s *ReportService) Monitor(ctx context.Context) (*dto.MonitorResponse, error) {
	rows, err := s.students.ListParticipation(ctx)
	if err != nil {
		s.logger.Error("load monitor data", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load monitor data")
	}

	courses := make(map[models.GroupKey]*dto.CourseParticipation)
	for _, row := range rows {
		key := models.GroupKey{Grade: row.Grade, Course: row.Course}
		course, ok := courses[key]
		if !ok {
			course = &dto.CourseParticipation{Grade: row.Grade, Course: row.Course}
			courses[key] = course
		}
		course.Total++
		if row.HasVoted {
			course.Voted++
		}
	}

	resp := &dto.MonitorResponse{
		Courses: make([]dto.CourseParticipation, 0, len(courses)),
		Grades:  []dto.GradeParticipation{},
	}
	grades := make(map[int]*dto.GradeParticipation)
	var summary dto.Turnout
	for _, course := range courses {
		course.Turnout = finishTurnout(course.Total, course.Voted)
		resp.Courses = append(resp.Courses, *course)

		grade, ok := grades[course.Grade]
		if !ok {
			grade = &dto.GradeParticipation{Grade: course.Grade}
			grades[course.Grade] = grade
		}
		grade.Total += course.Total
		grade.Voted += course.Voted
		summary.Total += course.Total
		summary.Voted += course.Voted
	}
	for _, grade := range grades {
		grade.Turnout = finishTurnout(grade.Total, grade.Voted)
		resp.Grades = append(resp.Grades, *grade)
	}

	sort.Slice(resp.Courses, func(i, j int) bool {
		if resp.Courses[i].Grade != resp.Courses[j].Grade {
			return resp.Courses[i].Grade < resp.Courses[j].Grade
		}
		return resp.Courses[i].Course < resp.Courses[j].Course
	})
	sort.Slice(resp.Grades, func(i, j int) bool { return resp.Grades[i].Grade < resp.Grades[j].Grade })

	resp.Summary = finishTurnout(summary.Total, summary.Voted)
	resp.LastUpdate = s.now().Local().Format(monitorClockLayout)
	return resp, nil
}

// Results returns the election outcome. With no votes counted the winner fields are omitted.
func (s *ReportService) Results(ctx context.Context) (*dto.ResultsResponse, error) {
	var cached dto.ResultsResponse
	if s.cache.Get(ctx, CacheKeyResults, &cached) {
		return &cached, nil
	}

	votes, err := s.candidates.SumVotes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	if votes == 0 {
		resp := &dto.ResultsResponse{Message: "no votes registered yet", Results: []models.ViewRow{}}
		s.cache.Set(ctx, CacheKeyResults, resp)
		return resp, nil
	}

	results, err := s.views.ElectionResults(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	total, voted, err := s.turnout(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}

	winners := Winners(results)
	resp := &dto.ResultsResponse{
		Results:       results,
		TotalVotes:    votes,
		TotalStudents: total,
		Participation: percentage(voted, total),
		ResultsOutcome: &dto.ResultsOutcome{
			TotalVoted:     voted,
			Winners:        winners,
			IsTie:          len(winners) > 1,
			ElectionClosed: true,
		},
	}
	s.cache.Set(ctx, CacheKeyResults, resp)
	return resp, nil
}

// Winners returns every row whose votes equal the maximum, provided the maximum is positive.
func Winners(results []models.ViewRow) []models.ViewRow {
	winners := []models.ViewRow{}
	top := 0
	for _, row := range results {
		if v := row.Int("votes"); v > top {
			top = v
		}
	}
	if top == 0 {
		return winners
	}
	for _, row := range results {
		if row.Int("votes") == top {
			winners = append(winners, row)
		}
	}
	return winners
}

func (s *ReportService) turnout(ctx context.Context) (int, int, error) {
	total, err := s.students.Count(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	voted, err := s.students.Count(ctx, true)
	if err != nil {
		return 0, 0, err
	}
	return total, voted, nil
}

func finishTurnout(total, voted int) dto.Turnout {
	return dto.Turnout{Total: total, Voted: voted, Pending: total - voted, Participation: percentage(voted, total)}
}

// percentage rounds part/total to the nearest whole percent; 0 when total is 0.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
