package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/geomap/internal/client/models"
	"github.com/dmitrijs2005/geomap/internal/server/auth"
	"github.com/dmitrijs2005/geomap/internal/server/httpapi"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/geomap/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	tokens, err := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	users, err := services.NewUserService(m, auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)

	api := httpapi.New(httpapi.Deps{
		Users:      users,
		Categories: services.NewCategoryService(m),
		Locations:  services.NewLocationService(m),
		Polygons:   services.NewPolygonService(m),
		Events:     services.NewEventService(m),
		Health:     m.Ping,
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SessionFlow(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	s, err := c.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.User.Username)

	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	s, err = c.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	c.SetToken(s.Token)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, me.ID)

	seed, err := c.SeedCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seed.Categories)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(seed.Categories))

	loc, err := c.CreateLocation(ctx, models.NewLocation{
		Name: "Parque Central", Latitude: 4.6, Longitude: -74.1, CategoryID: seed.Categories[0].ID,
	})
	require.NoError(t, err)
	require.NotNil(t, loc.Category)
	assert.Equal(t, seed.Categories[0].Name, loc.Category.Name)

	found, err := c.SearchLocations(ctx, "central & co")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = c.SearchLocations(ctx, "CENTRAL")
	require.NoError(t, err)
	require.Len(t, found, 1)

	polys, err := c.Polygons(ctx)
	require.NoError(t, err)
	assert.Empty(t, polys)

	events, err := c.Events(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	require.NoError(t, c.DeleteLocation(ctx, loc.ID))
	err = c.DeleteLocation(ctx, loc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := c.Locations(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClient_FailureEnvelope(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, time.Second)

	_, err := c.Register(context.Background(), "al", "bad", "1")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Validation Error", apiErr.Message)
	assert.Len(t, apiErr.Details, 3)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ServerErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	err := NewClient(srv.URL, time.Second).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
