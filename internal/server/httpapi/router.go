package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/logging"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps is everything the router serves.
type Deps struct {
	Users      Users
	Categories Categories
	Locations  Locations
	Polygons   Resource[models.Polygon, models.PolygonPatch]
	Events     Resource[models.Event, models.EventPatch]

	// Health reports whether the store is reachable.
	Health func(ctx context.Context) error

	Logger         logging.Logger
	Metrics        *Metrics
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type API struct {
	deps Deps
	log  logging.Logger
}

func New(deps Deps) *API {
	if deps.Logger == nil {
		deps.Logger = logging.Nop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	return &API{deps: deps, log: deps.Logger.With("module", "httpapi")}
}

var errRouteNotFound = common.NewError(common.ErrorNotFound, "Route not found")

// Handler builds the chi router.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(a.log))
	r.Use(a.recoverer)
	r.Use(a.deps.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", common.AuthorizationHeaderName},
		MaxAge:         300,
	}))
	if a.deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(a.deps.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, r, errRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Message: "Method not allowed"})
	})

	r.Get("/healthz", a.health)
	r.Method(http.MethodGet, "/metrics", a.deps.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.register)
		r.Post("/auth/login", a.login)

		r.Group(func(r chi.Router) {
			r.Use(a.authenticate)

			r.Get("/auth/me", a.me)

			r.Route("/locations", func(r chi.Router) {
				r.Get("/search", a.searchLocations)
				(&ownedRoutes[models.Location, models.LocationPatch]{
					api:       a,
					svc:       a.deps.Locations,
					newCreate: func() payload[models.Location] { return &locationCreate{} },
					newUpdate: func() payload[models.LocationPatch] { return &locationUpdate{} },
				}).mount(r)
			})
			r.Route("/polygons", (&ownedRoutes[models.Polygon, models.PolygonPatch]{
				api:       a,
				svc:       a.deps.Polygons,
				newCreate: func() payload[models.Polygon] { return &polygonCreate{} },
				newUpdate: func() payload[models.PolygonPatch] { return &polygonUpdate{} },
			}).mount)
			r.Route("/events", (&ownedRoutes[models.Event, models.EventPatch]{
				api:       a,
				svc:       a.deps.Events,
				newCreate: func() payload[models.Event] { return &eventCreate{} },
				newUpdate: func() payload[models.EventPatch] { return &eventUpdate{} },
			}).mount)
			r.Route("/categories", a.mountCategories)
		})
	})

	return r
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if a.deps.Health != nil {
		if err := a.deps.Health(r.Context()); err != nil {
			a.log.Warn(r.Context(), "health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, errorEnvelope{Message: "Store unavailable"})
			return
		}
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recoverer turns a handler panic into an internal error response.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.writeError(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}
