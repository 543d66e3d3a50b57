// Package owned implements, once, the persistence of resources that belong to
// exactly one user. Every read and write is scoped by (id, owner): a record
// owned by someone else is indistinguishable from one that does not exist.
package owned

import "context"

// Repository stores records of type T and applies partial updates of type P.
// Get, Update and Delete return common.ErrorNotFound both when id is unknown
// and when it belongs to another owner.
type Repository[T any, P any] interface {
	Create(ctx context.Context, id, ownerID string, rec *T) error
	Get(ctx context.Context, id, ownerID string) (*T, error)
	List(ctx context.Context, ownerID string) ([]T, error)
	Update(ctx context.Context, id, ownerID string, patch *P) error
	Delete(ctx context.Context, id, ownerID string) error
}
