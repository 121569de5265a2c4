package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
)

// UserService manages staff accounts.
type UserService struct {
	users  *repository.UserRepository
	tokens *TokenService
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// List retrieves active users, optionally filtered by role ("" for all).
func (s *UserService) List(ctx context.Context, role model.Role) ([]model.User, error) {
	return s.users.ListActive(ctx, role)
}

// Create registers a new staff user with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.tokens.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update edits a staff user. The password is only replaced when the
// request carries one.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Email = req.Email
	u.FullName = req.FullName
	u.Phone = req.Phone
	u.Role = req.Role
	u.PasswordHash = ""
	if req.Password != "" {
		hash, err := s.tokens.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Deactivate soft-deletes a staff user.
func (s *UserService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Deactivate(ctx, id)
}
