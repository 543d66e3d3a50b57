package httpapi

import (
	"context"

	"github.com/dmitrijs2005/geomap/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

func withIdentity(ctx context.Context, u *models.PublicUser) context.Context {
	return context.WithValue(ctx, identityKey, u)
}

// IdentityFrom returns the identity attached by the session middleware.
func IdentityFrom(ctx context.Context) (*models.PublicUser, bool) {
	u, ok := ctx.Value(identityKey).(*models.PublicUser)
	return u, ok && u != nil
}
