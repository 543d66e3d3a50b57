package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/owned"
	"github.com/google/uuid"
)

// OwnedService is the single implementation of create/list/get/update/delete
// for resources that belong to one user. Records of other users behave as
// missing: every path reports the same not-found error.
type OwnedService[T any, P any] struct {
	resource string
	repo     owned.Repository[T, P]
	newID    func() string

	// optional checks run before writes; they see the requester's id
	beforeCreate func(ctx context.Context, ownerID string, rec *T) error
	beforeUpdate func(ctx context.Context, ownerID string, patch *P) error
}

func newOwnedService[T any, P any](resource string, repo owned.Repository[T, P]) *OwnedService[T, P] {
	return &OwnedService[T, P]{resource: resource, repo: repo, newID: uuid.NewString}
}

// Resource is the display name used in messages, e.g. "Location".
func (s *OwnedService[T, P]) Resource() string {
	return s.resource
}

// Create stores rec owned by ownerID, whatever owner the payload names, and
// returns the stored record with its read projection.
func (s *OwnedService[T, P]) Create(ctx context.Context, ownerID string, rec *T) (*T, error) {
	if s.beforeCreate != nil {
		if err := s.beforeCreate(ctx, ownerID, rec); err != nil {
			return nil, err
		}
	}

	id := s.newID()
	if err := s.repo.Create(ctx, id, ownerID, rec); err != nil {
		return nil, s.translate(err)
	}
	return s.Get(ctx, id, ownerID)
}

func (s *OwnedService[T, P]) List(ctx context.Context, ownerID string) ([]T, error) {
	recs, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, s.translate(err)
	}
	return recs, nil
}

func (s *OwnedService[T, P]) Get(ctx context.Context, id, ownerID string) (*T, error) {
	if !validID(id) {
		return nil, s.notFound()
	}
	rec, err := s.repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, s.translate(err)
	}
	return rec, nil
}

// Update merges the non-nil fields of patch onto the record and returns the
// result. Fields left nil keep their values.
func (s *OwnedService[T, P]) Update(ctx context.Context, id, ownerID string, patch *P) (*T, error) {
	if !validID(id) {
		return nil, s.notFound()
	}
	if s.beforeUpdate != nil {
		if err := s.beforeUpdate(ctx, ownerID, patch); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, id, ownerID, patch); err != nil {
		return nil, s.translate(err)
	}
	return s.Get(ctx, id, ownerID)
}

func (s *OwnedService[T, P]) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return s.notFound()
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *OwnedService[T, P]) notFound() error {
	return common.NewError(common.ErrorNotFound, s.resource+" not found")
}

func (s *OwnedService[T, P]) translate(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return s.notFound()
	case errors.Is(err, common.ErrorValidation):
		return err
	}
	return fmt.Errorf("%s store: %w", strings.ToLower(s.resource), err)
}

// validID reports whether id can name a stored record. Ids are UUIDs, so
// anything else is simply not found.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
