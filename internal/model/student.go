package model

import "time"

// Student represents a pupil enrolled at the center. Students belong to at
// most one class; schedule membership is tracked separately via Enrollment.
type Student struct {
	ID          int       `json:"id"`
	StudentCode string    `json:"student_code"`
	FullName    string    `json:"full_name"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Address     string    `json:"address,omitempty"`
	ParentName  string    `json:"parent_name,omitempty"`
	ParentPhone string    `json:"parent_phone,omitempty"`
	ClassID     *int      `json:"class_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating or updating a student.
type CreateStudentRequest struct {
	StudentCode string  `json:"student_code" binding:"required,min=2,max=20"`
	FullName    string  `json:"full_name" binding:"required,min=2,max=100"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Address     string  `json:"address" binding:"omitempty,max=500"`
	ParentName  string  `json:"parent_name" binding:"omitempty,max=100"`
	ParentPhone string  `json:"parent_phone" binding:"omitempty,max=20"`
	ClassID     *int    `json:"class_id" binding:"omitempty,min=1"`
}
