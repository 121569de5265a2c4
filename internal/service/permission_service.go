package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
)

// PermissionService decides which classes an actor may manage. Admins
// manage everything; managers only the classes assigned to them.
type PermissionService struct {
	classes   *repository.ClassRepository
	schedules *repository.ScheduleRepository
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(classes *repository.ClassRepository, schedules *repository.ScheduleRepository) *PermissionService {
	return &PermissionService{classes: classes, schedules: schedules}
}

// CanManage reports whether the actor may manage the given class.
func (s *PermissionService) CanManage(ctx context.Context, claims *Claims, classID int) (bool, error) {
	if claims.Role == model.RoleAdmin {
		return true, nil
	}
	if claims.Role != model.RoleManager {
		return false, nil
	}

	class, err := s.classes.GetByID(ctx, classID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrClassNotFound
	}
	if err != nil {
		return false, err
	}
	return class.ManagerID != nil && *class.ManagerID == claims.UserID, nil
}

// CanManageSchedule resolves the schedule's class and applies CanManage.
// Roster mutations are keyed by the schedule they touch, not by a class id
// the caller supplies.
func (s *PermissionService) CanManageSchedule(ctx context.Context, claims *Claims, scheduleID int) (bool, error) {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrScheduleNotFound
	}
	if err != nil {
		return false, err
	}
	return s.CanManage(ctx, claims, sched.ClassID)
}

// CanMark reports whether the actor may record attendance for the schedule:
// its own teacher, or anyone who manages its class.
func (s *PermissionService) CanMark(ctx context.Context, claims *Claims, scheduleID int) (bool, error) {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrScheduleNotFound
	}
	if err != nil {
		return false, err
	}
	if claims.Role == model.RoleTeacher {
		return sched.TeacherID == claims.UserID, nil
	}
	return s.CanManage(ctx, claims, sched.ClassID)
}

// Predicate binds the actor into a PermissionPredicate for batch
// operations such as week copies.
func (s *PermissionService) Predicate(claims *Claims) PermissionPredicate {
	return func(ctx context.Context, classID int) (bool, error) {
		return s.CanManage(ctx, claims, classID)
	}
}
