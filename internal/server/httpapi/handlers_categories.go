package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// Categories is the shared, non-owned catalog.
type Categories interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) (*services.SeedResult, error)
}

func (a *API) mountCategories(r chi.Router) {
	r.Post("/initialize", a.seedCategories)
	r.Post("/", a.createCategory)
	r.Get("/", a.listCategories)
	r.Get("/{id}", a.getCategory)
	r.Put("/{id}", a.updateCategory)
	r.Delete("/{id}", a.deleteCategory)
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	c, err := bind[models.Category](r, &categoryCreate{})
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	created, err := a.deps.Categories.Create(r.Context(), c)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := a.deps.Categories.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, cs)
}

func (a *API) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := a.deps.Categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (a *API) updateCategory(w http.ResponseWriter, r *http.Request) {
	patch, err := bind[models.CategoryPatch](r, &categoryUpdate{})
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	c, err := a.deps.Categories.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (a *API) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := a.deps.Categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, messageData{Message: "Category deleted successfully"})
}

func (a *API) seedCategories(w http.ResponseWriter, r *http.Request) {
	res, err := a.deps.Categories.Seed(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}
