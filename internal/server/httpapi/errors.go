package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/validation"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// failure is the client-visible shape of an error.
type failure struct {
	status  int
	message string
	details []string
}

// classify is the one place where error kinds become HTTP statuses.
// Anything it does not recognise is an internal error whose details stay
// in the log.
func classify(err error) failure {
	var (
		verr *validation.Error
		cerr *common.Error
	)
	hasMessage := errors.As(err, &cerr)
	messageOr := func(fallback string) string {
		if hasMessage {
			return cerr.Message
		}
		return fallback
	}

	switch {
	case errors.As(err, &verr):
		msg := "Validation Error"
		if len(verr.Messages) == 1 {
			msg = verr.Messages[0]
		}
		return failure{http.StatusBadRequest, msg, verr.Messages}
	case errors.Is(err, common.ErrorValidation):
		return failure{http.StatusBadRequest, messageOr("Validation Error"), nil}
	case errors.Is(err, common.ErrTokenExpired):
		return failure{http.StatusUnauthorized, "Token expired", nil}
	case errors.Is(err, common.ErrInvalidToken):
		return failure{http.StatusUnauthorized, "Invalid token", nil}
	case errors.Is(err, common.ErrorUnauthenticated):
		return failure{http.StatusUnauthorized, messageOr("Authentication required"), nil}
	case errors.Is(err, common.ErrorUnauthorized):
		return failure{http.StatusUnauthorized, "Invalid credentials", nil}
	case errors.Is(err, common.ErrorAlreadyExists):
		return failure{http.StatusConflict, messageOr("Already exists"), nil}
	case errors.Is(err, common.ErrorNotFound):
		return failure{http.StatusNotFound, messageOr("Not found"), nil}
	}
	return failure{http.StatusInternalServerError, "Internal server error", nil}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	f := classify(err)
	if f.status >= http.StatusInternalServerError {
		a.log.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err.Error(),
		)
	}
	writeJSON(w, f.status, errorEnvelope{Success: false, Message: f.message, Errors: f.details})
}
