package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

// EnrollmentRepository handles student↔schedule membership data access.
// The at-most-one-active-row invariant per (student, schedule) pair is
// enforced by a partial unique index; Insert upserts against it.
type EnrollmentRepository struct {
	db Querier
}

// NewEnrollmentRepository creates a new EnrollmentRepository bound to the pool.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *EnrollmentRepository) WithTx(tx pgx.Tx) *EnrollmentRepository {
	return &EnrollmentRepository{db: tx}
}

// GetActivePair retrieves the active enrollment for a (student, schedule)
// pair, or (nil, nil) when none exists.
func (r *EnrollmentRepository) GetActivePair(ctx context.Context, studentID, scheduleID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.db.QueryRow(ctx,
		`SELECT id, student_id, schedule_id, is_active, enrolled_at
		 FROM enrollments
		 WHERE student_id = $1 AND schedule_id = $2 AND is_active`,
		studentID, scheduleID,
	).Scan(&e.ID, &e.StudentID, &e.ScheduleID, &e.IsActive, &e.EnrolledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Insert creates an active enrollment for the pair. Returns created=false
// without error when an active enrollment already exists (the partial unique
// index absorbs the race between concurrent enrolls).
func (r *EnrollmentRepository) Insert(ctx context.Context, studentID, scheduleID int) (*model.Enrollment, bool, error) {
	e := &model.Enrollment{StudentID: studentID, ScheduleID: scheduleID, IsActive: true}
	err := r.db.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, schedule_id)
		 VALUES ($1, $2)
		 ON CONFLICT (student_id, schedule_id) WHERE is_active DO NOTHING
		 RETURNING id, enrolled_at`,
		studentID, scheduleID,
	).Scan(&e.ID, &e.EnrolledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict with the existing active row: fetch and return it.
		existing, gerr := r.GetActivePair(ctx, studentID, scheduleID)
		if gerr != nil {
			return nil, false, gerr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// DeactivatePair soft-deletes the active enrollment for the pair. Returns
// (nil, nil) as a no-op when nothing was active.
func (r *EnrollmentRepository) DeactivatePair(ctx context.Context, studentID, scheduleID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.db.QueryRow(ctx,
		`UPDATE enrollments SET is_active = FALSE
		 WHERE student_id = $1 AND schedule_id = $2 AND is_active
		 RETURNING id, student_id, schedule_id, is_active, enrolled_at`,
		studentID, scheduleID,
	).Scan(&e.ID, &e.StudentID, &e.ScheduleID, &e.IsActive, &e.EnrolledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeactivateBySchedule soft-deletes all active enrollments of a schedule and
// returns how many were affected. Used by the schedule deactivation cascade.
func (r *EnrollmentRepository) DeactivateBySchedule(ctx context.Context, scheduleID int) (int, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET is_active = FALSE
		 WHERE schedule_id = $1 AND is_active`, scheduleID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ListActiveBySchedule retrieves a schedule's active enrollments joined with
// student display attributes, ordered by student name.
func (r *EnrollmentRepository) ListActiveBySchedule(ctx context.Context, scheduleID int) ([]model.EnrolledStudent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.student_id, e.schedule_id, e.is_active, e.enrolled_at,
		        s.student_code, s.full_name
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 WHERE e.schedule_id = $1 AND e.is_active
		 ORDER BY s.full_name`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrolled []model.EnrolledStudent
	for rows.Next() {
		var es model.EnrolledStudent
		if err := rows.Scan(&es.ID, &es.StudentID, &es.ScheduleID, &es.IsActive,
			&es.EnrolledAt, &es.StudentCode, &es.FullName); err != nil {
			return nil, err
		}
		enrolled = append(enrolled, es)
	}
	return enrolled, rows.Err()
}

// ActiveStudentIDs returns the IDs of currently-active students with an
// active enrollment in the schedule. Students deactivated after enrolling
// are excluded, which is the policy week copies rely on.
func (r *EnrollmentRepository) ActiveStudentIDs(ctx context.Context, scheduleID int) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.student_id
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id AND s.is_active
		 WHERE e.schedule_id = $1 AND e.is_active
		 ORDER BY e.student_id`, scheduleID)
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
