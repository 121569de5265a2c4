package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

const studentColumns = `id, student_code, full_name,
	to_char(date_of_birth, 'YYYY-MM-DD'), address, parent_name, parent_phone,
	class_id, is_active, created_at, updated_at`

// StudentRepository handles student data access.
type StudentRepository struct {
	db Querier
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.StudentCode, &s.FullName, &s.DateOfBirth, &s.Address,
		&s.ParentName, &s.ParentPhone, &s.ClassID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves students, optionally filtered by class and active state.
func (r *StudentRepository) List(ctx context.Context, classID *int, activeOnly bool) ([]model.Student, error) {
	var conds []string
	var args []any

	if activeOnly {
		conds = append(conds, "is_active")
	}
	if classID != nil {
		args = append(args, *classID)
		conds = append(conds, fmt.Sprintf("class_id = $%d", len(args)))
	}

	query := `SELECT ` + studentColumns + ` FROM students`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY full_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.StudentCode, &s.FullName, &s.DateOfBirth,
			&s.Address, &s.ParentName, &s.ParentPhone, &s.ClassID, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// ActiveIDsByClass returns the IDs of active students belonging to a class.
// This is the roster resolution behind class-level auto-enrollment.
func (r *StudentRepository) ActiveIDsByClass(ctx context.Context, classID int) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM students WHERE class_id = $1 AND is_active ORDER BY id`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new active student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	s.IsActive = true
	return r.db.QueryRow(ctx,
		`INSERT INTO students
		 (student_code, full_name, date_of_birth, address, parent_name, parent_phone, class_id)
		 VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		s.StudentCode, s.FullName, s.DateOfBirth, s.Address, s.ParentName,
		s.ParentPhone, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students
		 SET student_code = $1, full_name = $2, date_of_birth = $3::date,
		     address = $4, parent_name = $5, parent_phone = $6, class_id = $7,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		s.StudentCode, s.FullName, s.DateOfBirth, s.Address, s.ParentName,
		s.ParentPhone, s.ClassID, s.ID,
	)
	return err
}

// Deactivate soft-deletes a student.
func (r *StudentRepository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`, id)
	return err
}
