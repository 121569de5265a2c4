package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/config"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/lophocvn/lophoc-backend/internal/weekkey"
	"github.com/lophocvn/lophoc-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PermissionPredicate answers whether the current actor may manage a class.
// It is supplied by the caller so the schedule core stays agnostic of the
// role vocabulary.
type PermissionPredicate func(ctx context.Context, classID int) (bool, error)

// DeletionSummary reports what a schedule deactivation cascaded into.
type DeletionSummary struct {
	EnrollmentsRemoved int `json:"enrollments_removed"`
	AttendanceRecords  int `json:"attendance_records"`
}

// CopyResult summarizes a week copy. Per-record failures never abort the
// batch; they are accumulated here for the caller to judge.
type CopyResult struct {
	SourceSchedules   int `json:"source_schedules"`
	Copied            int `json:"copied"`
	SkippedPermission int `json:"skipped_permission"`
	SkippedConflict   int `json:"skipped_conflict"`
	Enrollments       int `json:"enrollments"`
}

// Timetable is the week view: active schedules grouped by day.
type Timetable struct {
	Week string         `json:"week"`
	Days []TimetableDay `json:"days"`
}

// TimetableDay holds one day's schedules ordered by start time.
type TimetableDay struct {
	DayOfWeek int              `json:"day_of_week"`
	Schedules []model.Schedule `json:"schedules"`
}

// ScheduleService owns the weekly schedule core: conflict-checked create and
// edit, soft-delete with enrollment cascade, the week timetable view, and
// bulk copy of one week's schedules (with enrollments) to another.
type ScheduleService struct {
	pool        *pgxpool.Pool
	schedules   *repository.ScheduleRepository
	enrollments *repository.EnrollmentRepository
	attendances *repository.AttendanceRepository
	students    *repository.StudentRepository
	classes     *repository.ClassRepository
	users       *repository.UserRepository
	rdb         *redis.Client
	cfg         *config.Config
	log         zerolog.Logger

	// nowWeek supplies "the current week" so business logic never reads the
	// wall clock directly.
	nowWeek func() string
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	pool *pgxpool.Pool,
	schedules *repository.ScheduleRepository,
	enrollments *repository.EnrollmentRepository,
	attendances *repository.AttendanceRepository,
	students *repository.StudentRepository,
	classes *repository.ClassRepository,
	users *repository.UserRepository,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		pool:        pool,
		schedules:   schedules,
		enrollments: enrollments,
		attendances: attendances,
		students:    students,
		classes:     classes,
		users:       users,
		rdb:         rdb,
		cfg:         cfg,
		log:         log.With().Str("component", "schedule_service").Logger(),
		nowWeek:     weekkey.Current,
	}
}

// GetByID retrieves a schedule by its ID.
func (s *ScheduleService) GetByID(ctx context.Context, id int) (*model.Schedule, error) {
	sched, err := s.schedules.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	return sched, err
}

// List retrieves active schedules matching the filter.
func (s *ScheduleService) List(ctx context.Context, f repository.ScheduleFilter) ([]model.Schedule, error) {
	return s.schedules.ListActive(ctx, f)
}

// Create validates and persists a new schedule, then auto-enrolls the
// class's active roster into it. Returns the schedule and how many students
// were enrolled. Both conflict scopes (teacher and class) must be clear.
func (s *ScheduleService) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, int, error) {
	if req.StartTime >= req.EndTime {
		return nil, 0, ErrInvalidTimeRange
	}
	if err := s.checkClassAndTeacher(ctx, req.ClassID, req.TeacherID); err != nil {
		return nil, 0, err
	}

	sched := &model.Schedule{
		ClassID:     req.ClassID,
		TeacherID:   req.TeacherID,
		DayOfWeek:   req.DayOfWeek,
		Session:     req.Session,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Subject:     req.Subject,
		Room:        req.Room,
		WeekKey:     req.WeekKey,
		WeekCreated: s.nowWeek(),
	}

	var enrolled int
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if err := s.checkConflicts(ctx, tx, sched, 0); err != nil {
			return err
		}
		if err := s.schedules.WithTx(tx).Create(ctx, sched); err != nil {
			return s.mapConstraintErr(err)
		}

		// Auto-enroll the class roster into the new schedule.
		ids, err := s.students.WithTx(tx).ActiveIDsByClass(ctx, sched.ClassID)
		if err != nil {
			return fmt.Errorf("resolve roster: %w", err)
		}
		enrTx := s.enrollments.WithTx(tx)
		for _, studentID := range ids {
			_, created, err := enrTx.Insert(ctx, studentID, sched.ID)
			if err != nil {
				return fmt.Errorf("enroll student %d: %w", studentID, err)
			}
			if created {
				enrolled++
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.invalidateTimetable(ctx, sched.WeekKey)
	s.publish(ctx, &websocket.ScheduleEvent{
		Type: websocket.EventScheduleCreated, WeekKey: sched.WeekKey, Schedule: sched,
	})
	s.log.Info().Int("schedule_id", sched.ID).Str("week", sched.WeekKey).
		Int("enrolled", enrolled).Msg("Schedule created")
	return sched, enrolled, nil
}

// Update edits a schedule in place, re-running validation and conflict
// checks with the schedule itself excluded. Inactive schedules cannot be
// edited.
func (s *ScheduleService) Update(ctx context.Context, id int, req *model.UpdateScheduleRequest) (*model.Schedule, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsActive {
		return nil, ErrScheduleInactive
	}
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if err := s.checkClassAndTeacher(ctx, req.ClassID, req.TeacherID); err != nil {
		return nil, err
	}

	updated := *existing
	updated.ClassID = req.ClassID
	updated.TeacherID = req.TeacherID
	updated.DayOfWeek = req.DayOfWeek
	updated.Session = req.Session
	updated.StartTime = req.StartTime
	updated.EndTime = req.EndTime
	updated.Subject = req.Subject
	updated.Room = req.Room
	updated.WeekKey = req.WeekKey

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		if err := s.checkConflicts(ctx, tx, &updated, id); err != nil {
			return err
		}
		if err := s.schedules.WithTx(tx).Update(ctx, &updated); err != nil {
			return s.mapConstraintErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTimetable(ctx, existing.WeekKey, updated.WeekKey)
	s.publish(ctx, &websocket.ScheduleEvent{
		Type: websocket.EventScheduleUpdated, WeekKey: updated.WeekKey, Schedule: &updated,
	})
	return &updated, nil
}

// Deactivate soft-deletes a schedule and cascades to its active enrollments
// in the same transaction. The returned summary is informational feedback
// for the caller. Deactivation is terminal; there is no resurrection path.
func (s *ScheduleService) Deactivate(ctx context.Context, id int) (*DeletionSummary, error) {
	sched, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sched.IsActive {
		return nil, ErrScheduleInactive
	}

	summary := &DeletionSummary{}
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		if err := s.schedules.WithTx(tx).Deactivate(ctx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrScheduleInactive
			}
			return err
		}
		n, err := s.enrollments.WithTx(tx).DeactivateBySchedule(ctx, id)
		if err != nil {
			return fmt.Errorf("cascade enrollments: %w", err)
		}
		summary.EnrollmentsRemoved = n

		att, err := s.attendances.WithTx(tx).CountBySchedule(ctx, id)
		if err != nil {
			return fmt.Errorf("count attendance: %w", err)
		}
		summary.AttendanceRecords = att
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTimetable(ctx, sched.WeekKey)
	s.publish(ctx, &websocket.ScheduleEvent{
		Type: websocket.EventScheduleDeleted, WeekKey: sched.WeekKey, Schedule: sched,
	})
	s.log.Info().Int("schedule_id", id).
		Int("enrollments_removed", summary.EnrollmentsRemoved).
		Msg("Schedule deactivated")
	return summary, nil
}

// CopyWeek clones all active schedules (and their enrollments) from one week
// to another. Per-record permission and conflict failures are skipped and
// counted; the batch itself runs in a single transaction so a mid-copy
// storage failure leaves the target week untouched.
func (s *ScheduleService) CopyWeek(ctx context.Context, req *model.CopyWeekRequest, canManage PermissionPredicate) (*CopyResult, error) {
	filter := repository.ScheduleFilter{WeekKey: &req.SourceWeek}
	if req.Scope == model.CopyScopeClass {
		filter.ClassID = &req.ClassID
	}
	sources, err := s.schedules.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list source week: %w", err)
	}

	result := &CopyResult{SourceSchedules: len(sources)}
	if len(sources) == 0 {
		return result, nil
	}

	now := s.nowWeek()
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		for i := range sources {
			src := &sources[i]

			ok, err := canManage(ctx, src.ClassID)
			if err != nil {
				return fmt.Errorf("permission check: %w", err)
			}
			if !ok {
				result.SkippedPermission++
				continue
			}

			draft := &model.Schedule{
				ClassID:     src.ClassID,
				TeacherID:   src.TeacherID,
				DayOfWeek:   src.DayOfWeek,
				Session:     src.Session,
				StartTime:   src.StartTime,
				EndTime:     src.EndTime,
				Subject:     src.Subject,
				Room:        src.Room,
				WeekKey:     req.TargetWeek,
				WeekCreated: now,
			}

			if err := s.copyOne(ctx, tx, src, draft, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTimetable(ctx, req.TargetWeek)
	s.publish(ctx, &websocket.ScheduleEvent{
		Type:        websocket.EventWeekCopied,
		WeekKey:     req.TargetWeek,
		SourceWeek:  req.SourceWeek,
		Copied:      result.Copied,
		Enrollments: result.Enrollments,
	})
	s.log.Info().Str("source", req.SourceWeek).Str("target", req.TargetWeek).
		Int("copied", result.Copied).Int("skipped_conflict", result.SkippedConflict).
		Int("skipped_permission", result.SkippedPermission).
		Int("enrollments", result.Enrollments).Msg("Week copied")
	return result, nil
}

// copyOne clones a single schedule and its enrollments under a savepoint so
// an exclusion-constraint firing (a concurrent writer won the slot) skips
// only this record, not the whole batch.
func (s *ScheduleService) copyOne(ctx context.Context, tx pgx.Tx, src, draft *model.Schedule, result *CopyResult) error {
	schedTx := s.schedules.WithTx(tx)
	for _, scope := range []model.ConflictScope{model.ConflictScopeTeacher, model.ConflictScopeClass} {
		c, err := schedTx.FindConflict(ctx, scope, draft, 0)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if c != nil {
			result.SkippedConflict++
			return nil
		}
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := s.schedules.WithTx(sp).Create(ctx, draft); err != nil {
		_ = sp.Rollback(ctx)
		if repository.IsExclusionViolation(err) {
			result.SkippedConflict++
			return nil
		}
		return fmt.Errorf("create copy: %w", err)
	}

	// Propagate enrollments of currently-active students only.
	studentIDs, err := s.enrollments.WithTx(sp).ActiveStudentIDs(ctx, src.ID)
	if err != nil {
		_ = sp.Rollback(ctx)
		return fmt.Errorf("source enrollments: %w", err)
	}
	enrTx := s.enrollments.WithTx(sp)
	for _, studentID := range studentIDs {
		_, created, err := enrTx.Insert(ctx, studentID, draft.ID)
		if err != nil {
			_ = sp.Rollback(ctx)
			return fmt.Errorf("propagate enrollment: %w", err)
		}
		if created {
			result.Enrollments++
		}
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("commit savepoint: %w", err)
	}
	result.Copied++
	return nil
}

// Timetable returns the cached week view, rebuilding it from the store on a
// cache miss. Cache failures degrade to the database, never to an error.
func (s *ScheduleService) Timetable(ctx context.Context, week string) (*Timetable, error) {
	key := config.CacheKey.TimetableKey(week)
	if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
		t := &Timetable{}
		if err := json.Unmarshal([]byte(raw), t); err == nil {
			return t, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("week", week).Msg("Timetable cache read failed")
	}

	schedules, err := s.schedules.ListActive(ctx, repository.ScheduleFilter{
		WeekKey:        &week,
		OrderByDayTime: true,
	})
	if err != nil {
		return nil, err
	}
	t := &Timetable{Week: week, Days: groupByDay(schedules)}

	if raw, err := json.Marshal(t); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.cfg.TimetableCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("week", week).Msg("Timetable cache write failed")
		}
	}
	return t, nil
}

// PrewarmTimetables loads the current and next week views into the cache.
// Called once at startup.
func (s *ScheduleService) PrewarmTimetables(ctx context.Context) error {
	for _, week := range []string{weekkey.Current(), weekkey.Next()} {
		s.invalidateTimetable(ctx, week)
		if _, err := s.Timetable(ctx, week); err != nil {
			return fmt.Errorf("prewarm %s: %w", week, err)
		}
	}
	return nil
}

// groupByDay buckets schedules (already ordered by day and start time) into
// per-day groups.
func groupByDay(schedules []model.Schedule) []TimetableDay {
	var days []TimetableDay
	for _, sched := range schedules {
		if len(days) == 0 || days[len(days)-1].DayOfWeek != sched.DayOfWeek {
			days = append(days, TimetableDay{DayOfWeek: sched.DayOfWeek})
		}
		d := &days[len(days)-1]
		d.Schedules = append(d.Schedules, sched)
	}
	return days
}

// ─── Internal helpers ───────────────────────────────────────────────

func (s *ScheduleService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// checkClassAndTeacher validates the referenced roster entities.
func (s *ScheduleService) checkClassAndTeacher(ctx context.Context, classID, teacherID int) error {
	class, err := s.classes.GetByID(ctx, classID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrClassNotFound
	}
	if err != nil {
		return err
	}
	if !class.IsActive {
		return ErrClassInactive
	}

	teacher, err := s.users.GetByID(ctx, teacherID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTeacherNotFound
	}
	if err != nil {
		return err
	}
	if teacher.Role != model.RoleTeacher {
		return ErrTeacherNotFound
	}
	if !teacher.IsActive {
		return ErrTeacherInactive
	}
	return nil
}

// checkConflicts runs both scope checks for a candidate. This is the
// user-friendly pre-check; the EXCLUDE constraints remain the authority
// under concurrent writes.
func (s *ScheduleService) checkConflicts(ctx context.Context, tx pgx.Tx, cand *model.Schedule, excludeID int) error {
	schedTx := s.schedules.WithTx(tx)
	for _, scope := range []model.ConflictScope{model.ConflictScopeTeacher, model.ConflictScopeClass} {
		existing, err := schedTx.FindConflict(ctx, scope, cand, excludeID)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if existing != nil {
			return &ConflictError{Scope: scope, Existing: existing}
		}
	}
	return nil
}

// mapConstraintErr converts an EXCLUDE constraint violation raised by a
// concurrent writer into the same ConflictError surface as the pre-check.
func (s *ScheduleService) mapConstraintErr(err error) error {
	if !repository.IsExclusionViolation(err) {
		return err
	}
	scope := model.ConflictScopeTeacher
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "schedules_no_class_overlap" {
		scope = model.ConflictScopeClass
	}
	return &ConflictError{Scope: scope}
}

func (s *ScheduleService) invalidateTimetable(ctx context.Context, weeks ...string) {
	for _, week := range weeks {
		if err := s.rdb.Del(ctx, config.CacheKey.TimetableKey(week)).Err(); err != nil {
			s.log.Warn().Err(err).Str("week", week).Msg("Timetable cache invalidation failed")
		}
	}
}

func (s *ScheduleService) publish(ctx context.Context, ev *websocket.ScheduleEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.ScheduleEventsChannel(), raw).Err(); err != nil {
		s.log.Warn().Err(err).Str("event", string(ev.Type)).Msg("Event publish failed")
	}
}
