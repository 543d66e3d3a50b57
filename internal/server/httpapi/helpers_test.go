package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/auth"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/geomap/internal/server/services"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testAPI struct {
	handler http.Handler
	deps    Deps
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	tokens, err := auth.NewTokenIssuer([]byte(testSecret), 7*24*time.Hour)
	require.NoError(t, err)
	users, err := services.NewUserService(m, auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)

	return Deps{
		Users:      users,
		Categories: services.NewCategoryService(m),
		Locations:  services.NewLocationService(m),
		Polygons:   services.NewPolygonService(m),
		Events:     services.NewEventService(m),
		Health:     m.Ping,
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWith(newTestDeps(t))
}

func newTestAPIWith(deps Deps) *testAPI {
	return &testAPI{handler: New(deps).Handler(), deps: deps}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type response struct {
	Code int
	Body envelope
	Raw  []byte
}

// do sends one request. body may be nil, a string taken as raw JSON, or a
// value to encode.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	res := response{Code: rec.Code, Raw: rec.Body.Bytes()}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.Body), rec.Body.String())
	}
	return res
}

// data decodes the success payload into dst.
func (r response) data(t *testing.T, dst any) {
	t.Helper()
	require.True(t, r.Body.Success, string(r.Raw))
	require.NoError(t, json.Unmarshal(r.Body.Data, dst))
}

func (a *testAPI) register(t *testing.T, name string) services.AuthResult {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))

	var out services.AuthResult
	res.data(t, &out)
	return out
}

func idOf(t *testing.T, r response) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	r.data(t, &v)
	require.NotEmpty(t, v.ID)
	return v.ID
}

func failingHealth(context.Context) error { return context.DeadlineExceeded }
