package categories

import (
	"context"

	"github.com/dmitrijs2005/geomap/internal/server/models"
)

// Repository persists the shared category catalog. Categories have no owner.
type Repository interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) error
	// InsertIfAbsent stores c unless a category with the same name exists.
	// It reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, c *models.Category) (bool, error)
}
