package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
)

// ClassService manages class groups.
type ClassService struct {
	classes *repository.ClassRepository
	users   *repository.UserRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classes *repository.ClassRepository, users *repository.UserRepository) *ClassService {
	return &ClassService{classes: classes, users: users}
}

// GetByID retrieves a class by ID.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c, err := s.classes.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	return c, err
}

// List retrieves active classes, restricted to a manager when managerID > 0.
func (s *ClassService) List(ctx context.Context, managerID int) ([]model.Class, error) {
	return s.classes.ListActive(ctx, managerID)
}

// Create registers a new class. A manager reference, when present, must
// point at an active manager user.
func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return nil, err
	}
	c := &model.Class{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	}
	if err := s.classes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update edits a class.
func (s *ClassService) Update(ctx context.Context, id int, req *model.CreateClassRequest) (*model.Class, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrClassInactive
	}
	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Description = req.Description
	c.ManagerID = req.ManagerID
	if err := s.classes.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Deactivate soft-deletes a class. Schedules of the class are untouched;
// they stop accepting new work through the class-active checks instead.
func (s *ClassService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.classes.Deactivate(ctx, id)
}

func (s *ClassService) checkManager(ctx context.Context, managerID *int) error {
	if managerID == nil {
		return nil
	}
	u, err := s.users.GetByID(ctx, *managerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if !u.IsActive || (u.Role != model.RoleManager && u.Role != model.RoleAdmin) {
		return ErrUserNotFound
	}
	return nil
}
