package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SeedMessage is reported after the thematic catalog is ensured.
const SeedMessage = "Categorías temáticas inicializadas"

var (
	errCategoryNotFound = common.NewError(common.ErrorNotFound, "Category not found")
	errCategoryExists   = common.NewError(common.ErrorAlreadyExists, "Category already exists")
)

// SeedResult lists every catalog category, whether inserted now or before.
type SeedResult struct {
	Message    string            `json:"message"`
	Categories []models.Category `json:"categories"`
}

// CategoryService manages the shared catalog. Categories have no owner, so
// any authenticated user may read and change them.
type CategoryService struct {
	repomanager repomanager.RepositoryManager
	newID       func() string
}

func NewCategoryService(m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{repomanager: m, newID: uuid.NewString}
}

func (s *CategoryService) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.ID = s.newID()
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}

	out, err := s.repomanager.Repositories().Categories.Create(ctx, c)
	if err != nil {
		return nil, translateCategory(err)
	}
	return out, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	out, err := s.repomanager.Repositories().Categories.List(ctx)
	if err != nil {
		return nil, translateCategory(err)
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	if !validID(id) {
		return nil, errCategoryNotFound
	}
	out, err := s.repomanager.Repositories().Categories.Get(ctx, id)
	if err != nil {
		return nil, translateCategory(err)
	}
	return out, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error) {
	if !validID(id) {
		return nil, errCategoryNotFound
	}
	out, err := s.repomanager.Repositories().Categories.Update(ctx, id, patch)
	if err != nil {
		return nil, translateCategory(err)
	}
	return out, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return errCategoryNotFound
	}
	if err := s.repomanager.Repositories().Categories.Delete(ctx, id); err != nil {
		return translateCategory(err)
	}
	return nil
}

// Seed inserts each catalog category whose name is not yet present. Running
// it again changes nothing.
func (s *CategoryService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{Message: SeedMessage, Categories: make([]models.Category, 0, len(models.SeedCategories))}

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		for _, seed := range models.SeedCategories {
			c := seed
			c.ID = s.newID()
			if _, err := repos.Categories.InsertIfAbsent(ctx, &c); err != nil {
				return err
			}
			stored, err := repos.Categories.GetByName(ctx, seed.Name)
			if err != nil {
				return err
			}
			result.Categories = append(result.Categories, *stored)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error seeding categories: %w", err)
	}

	return result, nil
}

func translateCategory(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return errCategoryNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return errCategoryExists
	}
	return fmt.Errorf("category store: %w", err)
}
