package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	db Querier
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: pool}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, manager_id, is_active, created_at, updated_at
		 FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.ManagerID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListActive retrieves all active classes, optionally restricted to those
// managed by managerID (0 means no restriction).
func (r *ClassRepository) ListActive(ctx context.Context, managerID int) ([]model.Class, error) {
	query := `SELECT id, name, description, manager_id, is_active, created_at, updated_at
	          FROM classes WHERE is_active`
	var args []any
	if managerID != 0 {
		query += ` AND manager_id = $1`
		args = append(args, managerID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ManagerID,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new active class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	c.IsActive = true
	return r.db.QueryRow(ctx,
		`INSERT INTO classes (name, description, manager_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.ManagerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.db.Exec(ctx,
		`UPDATE classes
		 SET name = $1, description = $2, manager_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		c.Name, c.Description, c.ManagerID, c.ID,
	)
	return err
}

// Deactivate soft-deletes a class.
func (r *ClassRepository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE classes SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`, id)
	return err
}
