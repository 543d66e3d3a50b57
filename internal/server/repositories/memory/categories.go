package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/models"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(c.ID, c.Name); err != nil {
		return nil, err
	}
	return r.insert(c), nil
}

func (r *CategoryRepository) InsertIfAbsent(ctx context.Context, c *models.Category) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(c.ID, c.Name); err != nil {
		return false, nil
	}
	r.insert(c)
	return true, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		result = append(result, *c)
	}
	slices.SortFunc(result, func(a, b models.Category) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		for _, other := range r.s.categories {
			if other.ID != id && other.Name == *patch.Name {
				return nil, common.ErrorAlreadyExists
			}
		}
	}

	setIf(&c.Name, patch.Name)
	setIf(&c.Description, patch.Description)
	setIf(&c.Color, patch.Color)
	c.UpdatedAt, _ = r.s.tick()

	out := *c
	return &out, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepository) checkUnique(id, name string) error {
	for _, c := range r.s.categories {
		if c.ID == id || c.Name == name {
			return common.ErrorAlreadyExists
		}
	}
	return nil
}

func (r *CategoryRepository) insert(c *models.Category) *models.Category {
	now, _ := r.s.tick()
	stored := *c
	stored.CreatedAt, stored.UpdatedAt = now, now
	r.s.categories[stored.ID] = &stored

	out := stored
	return &out
}
