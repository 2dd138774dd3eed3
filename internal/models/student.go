package models

import "fmt"

// MaxListNumber caps list numbers at two digits so access codes stay five characters wide.
const MaxListNumber = 99

// Student is a voter registered in one (grade, course) group.
type Student struct {
	ID         string `db:"id" json:"id"`
	FullName   string `db:"full_name" json:"full_name"`
	Grade      int    `db:"grade" json:"grade"`
	Course     int    `db:"course" json:"course"`
	ListNumber int    `db:"list_number" json:"list_number"`
	AccessCode string `db:"access_code" json:"access_code"`
	HasVoted   bool   `db:"has_voted" json:"has_voted"`
}

// ParticipationRow is the minimal projection used by the live monitor.
type ParticipationRow struct {
	Grade    int  `db:"grade"`
	Course   int  `db:"course"`
	HasVoted bool `db:"has_voted"`
}

// GroupKey identifies a (grade, course) group.
type GroupKey struct {
	Grade  int
	Course int
}

// String renders the key as "grade-course".
func (k GroupKey) String() string {
	return fmt.Sprintf("%d-%d", k.Grade, k.Course)
}

// AccessCode derives the GGCLL credential: two-digit grade, course digit, two-digit list number.
func AccessCode(grade, course, listNumber int) string {
	return fmt.Sprintf("%02d%d%02d", grade, course, listNumber)
}
