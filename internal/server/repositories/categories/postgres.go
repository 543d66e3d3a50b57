package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/dbx"
	"github.com/dmitrijs2005/geomap/internal/server/models"
)

const selectColumns = `id, name, description, color, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	query :=
		`INSERT INTO categories (id, name, description, color)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Description, c.Color).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM categories WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM categories WHERE name = $1`, name)
}

// Update merges the non-nil fields of patch onto the stored row in one statement.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error) {
	query :=
		`UPDATE categories SET
		 name = COALESCE($2, name),
		 description = COALESCE($3, description),
		 color = COALESCE($4, color),
		 updated_at = now()
		 WHERE id = $1
		 RETURNING ` + selectColumns

	c, err := r.getOne(ctx, query, id, patch.Name, patch.Description, patch.Color)
	if err != nil && dbx.IsUniqueViolation(err) {
		return nil, common.ErrorAlreadyExists
	}
	return c, err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, c *models.Category) (bool, error) {
	query :=
		`INSERT INTO categories (id, name, description, color)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Description, c.Color)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
