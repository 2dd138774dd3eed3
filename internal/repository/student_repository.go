package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/pkg/database"
)

// ErrDuplicateAccessCode is returned when an insert collides with an existing access code.
var ErrDuplicateAccessCode = errors.New("access code already in use")

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns the full roster ordered by grade, course and list number.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, full_name, grade, course, list_number, access_code, has_voted
FROM students ORDER BY grade, course, list_number`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListForImport returns the columns needed to detect duplicates and reserve codes.
func (r *StudentRepository) ListForImport(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT full_name, grade, course, COALESCE(list_number, 0) AS list_number, COALESCE(access_code, '') AS access_code
FROM students`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students for import: %w", err)
	}
	return students, nil
}

// ListCodeInputs returns the fields access codes are derived from.
func (r *StudentRepository) ListCodeInputs(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, grade, course, list_number FROM students`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list student code inputs: %w", err)
	}
	return students, nil
}

// ListParticipation returns (grade, course, has_voted) for every student.
func (r *StudentRepository) ListParticipation(ctx context.Context) ([]models.ParticipationRow, error) {
	const query = `SELECT grade, course, has_voted FROM students ORDER BY grade, course`
	rows := []models.ParticipationRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list participation: %w", err)
	}
	return rows, nil
}

// FindByAccessCode fetches the student owning code. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByAccessCode(ctx context.Context, code string) (*models.Student, error) {
	const query = `SELECT id, full_name, grade, course, has_voted FROM students WHERE access_code = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by code: %w", err)
	}
	return &student, nil
}

// Count returns the number of students, optionally only those who already voted.
func (r *StudentRepository) Count(ctx context.Context, votedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM students`
	if votedOnly {
		query += ` WHERE has_voted = true`
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// Create inserts a student. A unique violation is reported as ErrDuplicateAccessCode.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	const query = `INSERT INTO students (id, full_name, grade, course, list_number, access_code)
VALUES (:id, :full_name, :grade, :course, :list_number, :access_code)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("create student: %w: %v", ErrDuplicateAccessCode, err)
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateAccessCode overwrites the code of one student.
func (r *StudentRepository) UpdateAccessCode(ctx context.Context, id, code string) error {
	const query = `UPDATE students SET access_code = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, code); err != nil {
		return fmt.Errorf("update access code: %w", err)
	}
	return nil
}

// ResetVoted clears has_voted for every student.
func (r *StudentRepository) ResetVoted(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE students SET has_voted = false`); err != nil {
		return fmt.Errorf("reset voted flags: %w", err)
	}
	return nil
}

// Delete removes one student.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

// DeleteAll removes every student.
func (r *StudentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return fmt.Errorf("delete students: %w", err)
	}
	return nil
}
