package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/models"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == user.ID || u.Username == user.Username || u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	now, _ := r.s.tick()
	stored := *user
	stored.CreatedAt = now
	r.s.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(func(u *models.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(func(u *models.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return r.first(func(u *models.User) bool { return u.Email == email || u.Username == username })
}

// first returns the earliest registered user accepted by match.
func (r *UserRepository) first(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found []*models.User
	for _, u := range r.s.users {
		if match(u) {
			found = append(found, u)
		}
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}

	out := *slices.MinFunc(found, func(a, b *models.User) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return &out, nil
}

