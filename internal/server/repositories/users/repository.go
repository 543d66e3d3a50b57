package users

import (
	"context"

	"github.com/dmitrijs2005/geomap/internal/server/models"
)

// Repository persists identities. Lookups that match nothing return
// common.ErrorNotFound; a duplicate username or email on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
}
