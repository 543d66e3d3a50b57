package repomanager

import (
	"context"

	"github.com/dmitrijs2005/geomap/internal/server/repositories/categories"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/events"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/locations"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/polygons"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/users"
)

// Repositories is one consistent set of repositories, bound either to the
// database handle or to a running transaction.
type Repositories struct {
	Users      users.Repository
	Categories categories.Repository
	Locations  locations.Repository
	Polygons   polygons.Repository
	Events     events.Repository
}

type RepositoryManager interface {
	Repositories() Repositories
	// WithTx runs fn with repositories bound to one transaction; fn's error
	// rolls it back.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
