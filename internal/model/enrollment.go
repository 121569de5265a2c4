package model

import "time"

// Enrollment links a student to a schedule. At most one active enrollment
// exists per (student, schedule) pair; unenrolling flips is_active and a
// later re-enrollment creates a fresh row.
type Enrollment struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"student_id"`
	ScheduleID int       `json:"schedule_id"`
	IsActive   bool      `json:"is_active"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrolledStudent is an enrollment joined with student display attributes
// for roster views.
type EnrolledStudent struct {
	Enrollment
	StudentCode string `json:"student_code"`
	FullName    string `json:"full_name"`
}

// BulkEnrollRequest is the payload for enrolling several students at once.
type BulkEnrollRequest struct {
	StudentIDs []int `json:"student_ids" binding:"required,min=1,dive,min=1"`
}
