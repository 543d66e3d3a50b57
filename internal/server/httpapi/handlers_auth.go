package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/geomap/internal/server/services"
	"github.com/dmitrijs2005/geomap/internal/server/validation"
)

// Users is the identity side of the API.
type Users interface {
	Identifier
	Register(ctx context.Context, username, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(&req); err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.deps.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(&req); err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.deps.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFrom(r.Context())
	writeData(w, http.StatusOK, user)
}
