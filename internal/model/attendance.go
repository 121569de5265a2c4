package model

import "time"

// AttendanceStatus is the recorded presence state of a student in one
// held session of a schedule.
type AttendanceStatus string

const (
	AttendancePresent             AttendanceStatus = "present"
	AttendanceAbsentWithReason    AttendanceStatus = "absent_with_reason"
	AttendanceAbsentWithoutReason AttendanceStatus = "absent_without_reason"
)

// Attendance records a student's presence for a schedule on a concrete date.
// One row per (schedule, student, date); re-marking updates in place.
type Attendance struct {
	ID            int              `json:"id"`
	ScheduleID    int              `json:"schedule_id"`
	StudentID     int              `json:"student_id"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Status        AttendanceStatus `json:"status"`
	Reason        string           `json:"reason,omitempty"`
	LessonContent string           `json:"lesson_content,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// MarkAttendanceRequest is the payload for marking (or re-marking) one
// student's attendance.
type MarkAttendanceRequest struct {
	ScheduleID    int              `json:"schedule_id" binding:"required,min=1"`
	StudentID     int              `json:"student_id" binding:"required,min=1"`
	Date          string           `json:"date" binding:"required,datetime=2006-01-02"`
	Status        AttendanceStatus `json:"status" binding:"required,oneof=present absent_with_reason absent_without_reason"`
	Reason        string           `json:"reason" binding:"omitempty,max=500"`
	LessonContent string           `json:"lesson_content" binding:"omitempty,max=2000"`
	Notes         string           `json:"notes" binding:"omitempty,max=2000"`
}
