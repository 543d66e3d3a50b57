package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/geomap/internal/server/auth"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	m          repomanager.RepositoryManager
	users      *UserService
	tokens     *auth.TokenIssuer
	locations  *LocationService
	polygons   *PolygonService
	events     *EventService
	categories *CategoryService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, repomanager.NewMemoryRepositoryManager())
}

func newEnvWith(t *testing.T, m repomanager.RepositoryManager) *env {
	t.Helper()
	tokens, err := auth.NewTokenIssuer([]byte("test-secret"), 7*24*time.Hour)
	require.NoError(t, err)
	users, err := NewUserService(m, auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)
	return &env{
		m:          m,
		users:      users,
		tokens:     tokens,
		locations:  NewLocationService(m),
		polygons:   NewPolygonService(m),
		events:     NewEventService(m),
		categories: NewCategoryService(m),
	}
}

func (e *env) register(t *testing.T, name string) *AuthResult {
	t.Helper()
	res, err := e.users.Register(context.Background(), name, name+"@x.com", "secret1")
	require.NoError(t, err)
	return res
}

func ptr[V any](v V) *V { return &v }

var errBoom = errors.New("boom")

// brokenManager fails every repository call.
type brokenManager struct{ repomanager.RepositoryManager }

func (brokenManager) Repositories() repomanager.Repositories {
	return repomanager.Repositories{
		Users:      brokenUsers{},
		Categories: brokenCategories{},
		Locations:  brokenLocations{},
		Polygons:   brokenOwned[models.Polygon, models.PolygonPatch]{},
		Events:     brokenOwned[models.Event, models.EventPatch]{},
	}
}

func (m brokenManager) WithTx(ctx context.Context, fn func(context.Context, repomanager.Repositories) error) error {
	return fn(ctx, m.Repositories())
}

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errBoom }
func (brokenUsers) GetByID(context.Context, string) (*models.User, error)      { return nil, errBoom }
func (brokenUsers) GetByEmail(context.Context, string) (*models.User, error)   { return nil, errBoom }
func (brokenUsers) FindByEmailOrUsername(context.Context, string, string) (*models.User, error) {
	return nil, errBoom
}

type brokenCategories struct{}

func (brokenCategories) Create(context.Context, *models.Category) (*models.Category, error) {
	return nil, errBoom
}
func (brokenCategories) List(context.Context) ([]models.Category, error)             { return nil, errBoom }
func (brokenCategories) Get(context.Context, string) (*models.Category, error)       { return nil, errBoom }
func (brokenCategories) GetByName(context.Context, string) (*models.Category, error) { return nil, errBoom }
func (brokenCategories) Update(context.Context, string, *models.CategoryPatch) (*models.Category, error) {
	return nil, errBoom
}
func (brokenCategories) Delete(context.Context, string) error { return errBoom }
func (brokenCategories) InsertIfAbsent(context.Context, *models.Category) (bool, error) {
	return false, errBoom
}

type brokenOwned[T any, P any] struct{}

func (brokenOwned[T, P]) Create(context.Context, string, string, *T) error { return errBoom }
func (brokenOwned[T, P]) Get(context.Context, string, string) (*T, error)  { return nil, errBoom }
func (brokenOwned[T, P]) List(context.Context, string) ([]T, error)        { return nil, errBoom }
func (brokenOwned[T, P]) Update(context.Context, string, string, *P) error { return errBoom }
func (brokenOwned[T, P]) Delete(context.Context, string, string) error     { return errBoom }

type brokenLocations struct {
	brokenOwned[models.Location, models.LocationPatch]
}

func (brokenLocations) SearchByName(context.Context, string, string) ([]models.Location, error) {
	return nil, errBoom
}
