package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

const attendanceColumns = `id, schedule_id, student_id,
	to_char(date, 'YYYY-MM-DD'), status, reason, lesson_content, notes,
	created_at, updated_at`

// AttendanceRepository handles attendance record data access.
type AttendanceRepository struct {
	db Querier
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *AttendanceRepository) WithTx(tx pgx.Tx) *AttendanceRepository {
	return &AttendanceRepository{db: tx}
}

// Upsert records attendance for (schedule, student, date), updating the
// existing row when the student is re-marked for the same held session.
func (r *AttendanceRepository) Upsert(ctx context.Context, a *model.Attendance) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO attendances
		 (schedule_id, student_id, date, status, reason, lesson_content, notes)
		 VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		 ON CONFLICT (schedule_id, student_id, date) DO UPDATE
		 SET status = EXCLUDED.status, reason = EXCLUDED.reason,
		     lesson_content = EXCLUDED.lesson_content, notes = EXCLUDED.notes,
		     updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		a.ScheduleID, a.StudentID, a.Date, a.Status, a.Reason, a.LessonContent, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// ListBySchedule retrieves attendance records of a schedule, optionally for
// one date only.
func (r *AttendanceRepository) ListBySchedule(ctx context.Context, scheduleID int, date *string) ([]model.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE schedule_id = $1`
	args := []any{scheduleID}
	if date != nil {
		query += ` AND date = $2::date`
		args = append(args, *date)
	}
	query += ` ORDER BY date, student_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.StudentID, &a.Date, &a.Status,
			&a.Reason, &a.LessonContent, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// CountBySchedule returns how many attendance records reference a schedule.
// Reported in the deletion summary when a schedule is deactivated.
func (r *AttendanceRepository) CountBySchedule(ctx context.Context, scheduleID int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE schedule_id = $1`, scheduleID).Scan(&n)
	return n, err
}
