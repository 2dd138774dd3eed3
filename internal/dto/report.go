package dto

import "github.com/noah-isme/sma-vote-api/internal/models"

// GeneralStats summarises turnout.
type GeneralStats struct {
	TotalStudents int `json:"totalStudents"`
	TotalVoted    int `json:"totalVoted"`
	TotalVotes    int `json:"totalVotes"`
	Participation int `json:"participation"`
}

// StatsResponse is the admin dashboard payload.
type StatsResponse struct {
	General GeneralStats     `json:"general"`
	ByGrade []models.ViewRow `json:"byGrade"`
	Results []models.ViewRow `json:"results"`
}

// Turnout counts voters within a scope.
type Turnout struct {
	Total         int `json:"total"`
	Voted         int `json:"voted"`
	Pending       int `json:"pending"`
	Participation int `json:"participation"`
}

// CourseParticipation is participation for one (grade, course) group.
type CourseParticipation struct {
	Grade  int `json:"grade"`
	Course int `json:"course"`
	Turnout
}

// GradeParticipation rolls courses up per grade.
type GradeParticipation struct {
	Grade int `json:"grade"`
	Turnout
}

// MonitorResponse is the live participation snapshot.
type MonitorResponse struct {
	Courses    []CourseParticipation `json:"courses"`
	Grades     []GradeParticipation  `json:"grades"`
	Summary    Turnout               `json:"summary"`
	LastUpdate string                `json:"lastUpdate"`
}

// ResultsResponse is the public results payload. Outcome is nil until votes exist.
type ResultsResponse struct {
	Message       string           `json:"message,omitempty"`
	Results       []models.ViewRow `json:"results"`
	TotalVotes    int              `json:"totalVotes"`
	TotalStudents int              `json:"totalStudents"`
	Participation int              `json:"participation"`
	*ResultsOutcome
}

// ResultsOutcome carries turnout and winners once at least one vote was counted.
type ResultsOutcome struct {
	TotalVoted     int              `json:"totalVoted"`
	Winners        []models.ViewRow `json:"winners"`
	IsTie          bool             `json:"isTie"`
	ElectionClosed bool             `json:"electionClosed"`
}
