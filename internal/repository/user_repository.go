package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

const userColumns = `id, email, full_name, phone, role, password_hash,
	is_active, created_at, updated_at`

// UserRepository handles staff user data access.
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) scanUser(ctx context.Context, query string, args ...any) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Email, &u.FullName,
		&u.Phone, &u.Role, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// ListActive retrieves active users, optionally restricted to one role
// (empty role means all).
func (r *UserRepository) ListActive(ctx context.Context, role model.Role) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active`
	var args []any
	if role != "" {
		query += ` AND role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY full_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role,
			&u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new active user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.IsActive = true
	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, full_name, phone, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.FullName, u.Phone, u.Role, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// Update modifies an existing user. An empty password hash keeps the
// current one.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $1, full_name = $2, phone = $3, role = $4,
		     password_hash = COALESCE(NULLIF($5, ''), password_hash),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		u.Email, u.FullName, u.Phone, u.Role, u.PasswordHash, u.ID,
	)
	return err
}

// Deactivate soft-deletes a user.
func (r *UserRepository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`, id)
	return err
}
