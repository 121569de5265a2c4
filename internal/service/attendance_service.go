package service

import (
	"context"
	"fmt"

	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
)

// AttendanceService records student presence per held session. Marking
// requires an active enrollment; re-marking the same (schedule, student,
// date) updates the existing record.
type AttendanceService struct {
	attendances *repository.AttendanceRepository
	enrollments *repository.EnrollmentRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	attendances *repository.AttendanceRepository,
	enrollments *repository.EnrollmentRepository,
) *AttendanceService {
	return &AttendanceService{
		attendances: attendances,
		enrollments: enrollments,
	}
}

// Mark records (or re-records) one student's attendance.
func (s *AttendanceService) Mark(ctx context.Context, req *model.MarkAttendanceRequest) (*model.Attendance, error) {
	enr, err := s.enrollments.GetActivePair(ctx, req.StudentID, req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if enr == nil {
		return nil, ErrNotEnrolled
	}

	a := &model.Attendance{
		ScheduleID:    req.ScheduleID,
		StudentID:     req.StudentID,
		Date:          req.Date,
		Status:        req.Status,
		Reason:        req.Reason,
		LessonContent: req.LessonContent,
		Notes:         req.Notes,
	}
	if err := s.attendances.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListBySchedule returns attendance records of a schedule, optionally for a
// single date.
func (s *AttendanceService) ListBySchedule(ctx context.Context, scheduleID int, date *string) ([]model.Attendance, error) {
	return s.attendances.ListBySchedule(ctx, scheduleID, date)
}
