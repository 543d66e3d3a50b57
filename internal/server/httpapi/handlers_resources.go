package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// Resource is an ownership-scoped store of T records patched by P. Every
// operation is confined to the records of ownerID.
type Resource[T any, P any] interface {
	Resource() string
	Create(ctx context.Context, ownerID string, rec *T) (*T, error)
	List(ctx context.Context, ownerID string) ([]T, error)
	Get(ctx context.Context, id, ownerID string) (*T, error)
	Update(ctx context.Context, id, ownerID string, patch *P) (*T, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// Locations adds name search to the location resource.
type Locations interface {
	Resource[models.Location, models.LocationPatch]
	SearchByName(ctx context.Context, ownerID, term string) ([]models.Location, error)
}

// ownedRoutes serves one Resource. The owner always comes from the
// session, never from the request body or path.
type ownedRoutes[T any, P any] struct {
	api       *API
	svc       Resource[T, P]
	newCreate func() payload[T]
	newUpdate func() payload[P]
}

func (h *ownedRoutes[T, P]) mount(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *ownedRoutes[T, P]) create(w http.ResponseWriter, r *http.Request) {
	rec, err := bind(r, h.newCreate())
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), requester(r), rec)
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *ownedRoutes[T, P]) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context(), requester(r))
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, recs)
}

func (h *ownedRoutes[T, P]) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), requester(r))
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *ownedRoutes[T, P]) update(w http.ResponseWriter, r *http.Request) {
	patch, err := bind(r, h.newUpdate())
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	rec, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), requester(r), patch)
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *ownedRoutes[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), requester(r)); err != nil {
		h.api.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, messageData{Message: h.svc.Resource() + " deleted successfully"})
}

func (a *API) searchLocations(w http.ResponseWriter, r *http.Request) {
	recs, err := a.deps.Locations.SearchByName(r.Context(), requester(r), r.URL.Query().Get("name"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, recs)
}

// requester is the id of the authenticated identity. Routes using it sit
// behind authenticate.
func requester(r *http.Request) string {
	if u, ok := IdentityFrom(r.Context()); ok {
		return u.ID
	}
	return ""
}
