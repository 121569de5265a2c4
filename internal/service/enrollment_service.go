package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/rs/zerolog"
)

// EnrollmentService manages the student↔schedule link table. Enrolling is
// idempotent, unenrolling a student who was never enrolled is a no-op, and
// re-enrolling after an unenroll creates a fresh row.
type EnrollmentService struct {
	pool        *pgxpool.Pool
	enrollments *repository.EnrollmentRepository
	schedules   *repository.ScheduleRepository
	students    *repository.StudentRepository
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	pool *pgxpool.Pool,
	enrollments *repository.EnrollmentRepository,
	schedules *repository.ScheduleRepository,
	students *repository.StudentRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		pool:        pool,
		enrollments: enrollments,
		schedules:   schedules,
		students:    students,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll links a student to a schedule. If an active enrollment already
// exists it is returned unchanged and created is false.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, scheduleID int) (*model.Enrollment, bool, error) {
	if err := s.checkPair(ctx, studentID, scheduleID); err != nil {
		return nil, false, err
	}
	return s.enrollments.Insert(ctx, studentID, scheduleID)
}

// Unenroll deactivates a student's enrollment in a schedule. Returns the
// deactivated enrollment, or nil when no active enrollment existed.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, scheduleID int) (*model.Enrollment, error) {
	return s.enrollments.DeactivatePair(ctx, studentID, scheduleID)
}

// BulkEnroll links many students to one schedule in a single transaction.
// Returns how many enrollments were actually created; already-enrolled
// students are silently skipped.
func (s *EnrollmentService) BulkEnroll(ctx context.Context, scheduleID int, studentIDs []int) (int, error) {
	if err := s.checkSchedule(ctx, scheduleID); err != nil {
		return 0, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	studentTx := s.students.WithTx(tx)
	enrTx := s.enrollments.WithTx(tx)
	created := 0
	for _, studentID := range studentIDs {
		student, err := studentTx.GetByID(ctx, studentID)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrStudentNotFound
		}
		if err != nil {
			return 0, err
		}
		if !student.IsActive {
			return 0, ErrStudentInactive
		}
		_, ok, err := enrTx.Insert(ctx, studentID, scheduleID)
		if err != nil {
			return 0, fmt.Errorf("enroll student %d: %w", studentID, err)
		}
		if ok {
			created++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	s.log.Info().Int("schedule_id", scheduleID).Int("created", created).
		Int("requested", len(studentIDs)).Msg("Bulk enrollment applied")
	return created, nil
}

// EnrollClassRoster enrolls every active student of the schedule's class.
// Used to re-sync a schedule after roster changes.
func (s *EnrollmentService) EnrollClassRoster(ctx context.Context, scheduleID int) (int, error) {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrScheduleNotFound
	}
	if err != nil {
		return 0, err
	}
	if !sched.IsActive {
		return 0, ErrScheduleInactive
	}

	ids, err := s.students.ActiveIDsByClass(ctx, sched.ClassID)
	if err != nil {
		return 0, fmt.Errorf("resolve roster: %w", err)
	}
	return s.BulkEnroll(ctx, scheduleID, ids)
}

// ListBySchedule returns the active roster of a schedule.
func (s *EnrollmentService) ListBySchedule(ctx context.Context, scheduleID int) ([]model.EnrolledStudent, error) {
	if err := s.checkSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}
	return s.enrollments.ListActiveBySchedule(ctx, scheduleID)
}

func (s *EnrollmentService) checkSchedule(ctx context.Context, scheduleID int) error {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrScheduleNotFound
	}
	if err != nil {
		return err
	}
	if !sched.IsActive {
		return ErrScheduleInactive
	}
	return nil
}

func (s *EnrollmentService) checkPair(ctx context.Context, studentID, scheduleID int) error {
	if err := s.checkSchedule(ctx, scheduleID); err != nil {
		return err
	}
	student, err := s.students.GetByID(ctx, studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrStudentNotFound
	}
	if err != nil {
		return err
	}
	if !student.IsActive {
		return ErrStudentInactive
	}
	return nil
}
