package service

import (
	"errors"
	"fmt"

	"github.com/lophocvn/lophoc-backend/internal/model"
)

// Domain Errors
var (
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleInactive = errors.New("schedule is inactive")
	ErrClassNotFound    = errors.New("class not found")
	ErrClassInactive    = errors.New("class is inactive")
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrTeacherInactive  = errors.New("teacher is inactive")
	ErrStudentNotFound  = errors.New("student not found")
	ErrStudentInactive  = errors.New("student is inactive")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotEnrolled      = errors.New("student is not enrolled in this schedule")
	ErrPermissionDenied = errors.New("actor may not manage this class")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidMonth        = errors.New("month must be formatted YYYY-MM")
)

// ConflictError reports a booking clash. Existing carries the schedule
// already occupying the slot when it is known; conflicts surfaced by the
// database exclusion constraint leave it nil.
type ConflictError struct {
	Scope    model.ConflictScope
	Existing *model.Schedule
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return fmt.Sprintf("%s already booked in the requested slot", e.Scope)
	}
	return fmt.Sprintf("%s already booked: schedule %d occupies %s %s-%s in week %s",
		e.Scope, e.Existing.ID, dayName(e.Existing.DayOfWeek),
		e.Existing.StartTime, e.Existing.EndTime, e.Existing.WeekKey)
}

func dayName(day int) string {
	names := [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if day < 1 || day > 7 {
		return fmt.Sprintf("day%d", day)
	}
	return names[day-1]
}
