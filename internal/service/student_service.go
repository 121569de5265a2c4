package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
)

// StudentService manages the pupil roster.
type StudentService struct {
	students *repository.StudentRepository
	classes  *repository.ClassRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(students *repository.StudentRepository, classes *repository.ClassRepository) *StudentService {
	return &StudentService{students: students, classes: classes}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	st, err := s.students.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	return st, err
}

// List retrieves students, optionally restricted to one class.
func (s *StudentService) List(ctx context.Context, classID *int, activeOnly bool) ([]model.Student, error) {
	return s.students.List(ctx, classID, activeOnly)
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	if err := s.checkClass(ctx, req.ClassID); err != nil {
		return nil, err
	}
	st := &model.Student{
		StudentCode: req.StudentCode,
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		ParentName:  req.ParentName,
		ParentPhone: req.ParentPhone,
		ClassID:     req.ClassID,
	}
	if err := s.students.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update edits a student.
func (s *StudentService) Update(ctx context.Context, id int, req *model.CreateStudentRequest) (*model.Student, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !st.IsActive {
		return nil, ErrStudentInactive
	}
	if err := s.checkClass(ctx, req.ClassID); err != nil {
		return nil, err
	}
	st.StudentCode = req.StudentCode
	st.FullName = req.FullName
	st.DateOfBirth = req.DateOfBirth
	st.Address = req.Address
	st.ParentName = req.ParentName
	st.ParentPhone = req.ParentPhone
	st.ClassID = req.ClassID
	if err := s.students.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Deactivate soft-deletes a student. Existing enrollments stay as written
// history; the roster joins filter on student activity.
func (s *StudentService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.students.Deactivate(ctx, id)
}

func (s *StudentService) checkClass(ctx context.Context, classID *int) error {
	if classID == nil {
		return nil
	}
	c, err := s.classes.GetByID(ctx, *classID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrClassNotFound
	}
	if err != nil {
		return err
	}
	if !c.IsActive {
		return ErrClassInactive
	}
	return nil
}
