package model

import "time"

// Role identifies what a staff user may do. Admins manage everything,
// managers own specific classes, teachers are assigned to schedules.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleTeacher Role = "teacher"
)

// User represents a staff member (admin, class manager or teacher).
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateUserRequest is the payload for creating a staff user.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Role     Role   `json:"role" binding:"required,oneof=admin manager teacher"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserRequest is the payload for updating a staff user. Password is
// only changed when provided.
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Role     Role   `json:"role" binding:"required,oneof=admin manager teacher"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}
