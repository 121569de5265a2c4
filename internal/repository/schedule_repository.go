package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

// scheduleColumns is the SELECT list shared by all schedule queries. Times
// are stored as TIME and surfaced as zero-padded HH:MM strings.
const scheduleColumns = `id, class_id, teacher_id, day_of_week, session,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	subject, room, week_key, week_created, is_active, created_at, updated_at`

// ScheduleFilter narrows ListActive. Nil fields are not applied; set fields
// combine with AND semantics.
type ScheduleFilter struct {
	ClassID   *int
	TeacherID *int
	DayOfWeek *int
	WeekKey   *string
	// OrderByDayTime orders results by day of week then start time.
	// Otherwise order is unspecified.
	OrderByDayTime bool
}

// ScheduleRepository handles schedule data access.
type ScheduleRepository struct {
	db Querier
}

// NewScheduleRepository creates a new ScheduleRepository bound to the pool.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ScheduleRepository) WithTx(tx pgx.Tx) *ScheduleRepository {
	return &ScheduleRepository{db: tx}
}

func scanSchedule(row pgx.Row, s *model.Schedule) error {
	return row.Scan(&s.ID, &s.ClassID, &s.TeacherID, &s.DayOfWeek, &s.Session,
		&s.StartTime, &s.EndTime, &s.Subject, &s.Room, &s.WeekKey, &s.WeekCreated,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a schedule by its ID, active or not.
func (r *ScheduleRepository) GetByID(ctx context.Context, id int) (*model.Schedule, error) {
	s := &model.Schedule{}
	err := scanSchedule(r.db.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new active schedule.
func (r *ScheduleRepository) Create(ctx context.Context, s *model.Schedule) error {
	s.IsActive = true
	return r.db.QueryRow(ctx,
		`INSERT INTO schedules
		 (class_id, teacher_id, day_of_week, session, start_time, end_time,
		  subject, room, week_key, week_created)
		 VALUES ($1, $2, $3, $4, $5::time, $6::time, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		s.ClassID, s.TeacherID, s.DayOfWeek, s.Session, s.StartTime, s.EndTime,
		s.Subject, s.Room, s.WeekKey, s.WeekCreated,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update replaces the mutable fields of an existing schedule in place.
func (r *ScheduleRepository) Update(ctx context.Context, s *model.Schedule) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE schedules
		 SET class_id = $1, teacher_id = $2, day_of_week = $3, session = $4,
		     start_time = $5::time, end_time = $6::time, subject = $7, room = $8,
		     week_key = $9, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $10`,
		s.ClassID, s.TeacherID, s.DayOfWeek, s.Session, s.StartTime, s.EndTime,
		s.Subject, s.Room, s.WeekKey, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes a schedule. Returns pgx.ErrNoRows if the schedule
// does not exist or is already inactive.
func (r *ScheduleRepository) Deactivate(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE schedules SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND is_active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListActive retrieves active schedules matching the filter.
func (r *ScheduleRepository) ListActive(ctx context.Context, f ScheduleFilter) ([]model.Schedule, error) {
	var conds []string
	var args []any

	conds = append(conds, "is_active")
	if f.ClassID != nil {
		args = append(args, *f.ClassID)
		conds = append(conds, fmt.Sprintf("class_id = $%d", len(args)))
	}
	if f.TeacherID != nil {
		args = append(args, *f.TeacherID)
		conds = append(conds, fmt.Sprintf("teacher_id = $%d", len(args)))
	}
	if f.DayOfWeek != nil {
		args = append(args, *f.DayOfWeek)
		conds = append(conds, fmt.Sprintf("day_of_week = $%d", len(args)))
	}
	if f.WeekKey != nil {
		args = append(args, *f.WeekKey)
		conds = append(conds, fmt.Sprintf("week_key = $%d", len(args)))
	}

	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE ` + strings.Join(conds, " AND ")
	if f.OrderByDayTime {
		query += ` ORDER BY day_of_week, start_time`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := scanSchedule(rows, &s); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// FindConflict returns an active schedule in the candidate's week whose time
// range overlaps the candidate's on the same day along the given scope
// (same teacher or same class). Overlap is strict open-interval: schedules
// that only touch at an endpoint do not conflict. excludeID removes the row
// being edited from consideration; pass 0 on create. Returns (nil, nil) when
// the slot is free.
func (r *ScheduleRepository) FindConflict(ctx context.Context, scope model.ConflictScope, cand *model.Schedule, excludeID int) (*model.Schedule, error) {
	scopeCol := "teacher_id"
	if scope == model.ConflictScopeClass {
		scopeCol = "class_id"
	}

	s := &model.Schedule{}
	err := scanSchedule(r.db.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM schedules
		 WHERE week_key = $1 AND day_of_week = $2 AND `+scopeCol+` = $3
		   AND is_active AND id <> $4
		   AND start_time < $5::time AND end_time > $6::time
		 LIMIT 1`,
		cand.WeekKey, cand.DayOfWeek, cand.ScopeKey(scope), excludeID,
		cand.EndTime, cand.StartTime), s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
