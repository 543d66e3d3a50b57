package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/locations"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/geomap/internal/server/validation"
)

// MinPolygonPoints is the smallest ring a polygon may have.
const MinPolygonPoints = 3

type (
	PolygonService = OwnedService[models.Polygon, models.PolygonPatch]
	EventService   = OwnedService[models.Event, models.EventPatch]
)

// LocationService adds name search to the owned location operations.
type LocationService struct {
	*OwnedService[models.Location, models.LocationPatch]
	repo locations.Repository
}

func NewLocationService(m repomanager.RepositoryManager) *LocationService {
	repos := m.Repositories()

	s := &LocationService{
		OwnedService: newOwnedService("Location", repos.Locations),
		repo:         repos.Locations,
	}

	checkCategory := func(ctx context.Context, id *string) (*string, error) {
		id = blankToNil(id)
		if id == nil {
			return nil, nil
		}
		if !validID(*id) {
			return nil, validation.New("Category not found")
		}
		if _, err := repos.Categories.Get(ctx, *id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, validation.New("Category not found")
			}
			return nil, fmt.Errorf("location store: %w", err)
		}
		return id, nil
	}

	s.beforeCreate = func(ctx context.Context, _ string, l *models.Location) (err error) {
		l.CategoryID, err = checkCategory(ctx, l.CategoryID)
		return err
	}
	s.beforeUpdate = func(ctx context.Context, _ string, p *models.LocationPatch) (err error) {
		p.CategoryID, err = checkCategory(ctx, p.CategoryID)
		return err
	}
	return s
}

// SearchByName returns the requester's locations whose name contains term,
// ignoring case, newest first. A blank term is a validation error.
func (s *LocationService) SearchByName(ctx context.Context, ownerID, term string) ([]models.Location, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, validation.New("Search term is required")
	}

	recs, err := s.repo.SearchByName(ctx, ownerID, term)
	if err != nil {
		return nil, s.translate(err)
	}
	return recs, nil
}

func NewPolygonService(m repomanager.RepositoryManager) *PolygonService {
	s := newOwnedService("Polygon", m.Repositories().Polygons)

	s.beforeCreate = func(_ context.Context, _ string, p *models.Polygon) error {
		return checkRing(p.Coordinates)
	}
	s.beforeUpdate = func(_ context.Context, _ string, p *models.PolygonPatch) error {
		if p.Coordinates == nil {
			return nil
		}
		return checkRing(p.Coordinates)
	}
	return s
}

func checkRing(coords []models.Coordinate) error {
	if len(coords) < MinPolygonPoints {
		return validation.New(fmt.Sprintf("A polygon needs at least %d points", MinPolygonPoints))
	}
	return nil
}

func NewEventService(m repomanager.RepositoryManager) *EventService {
	repos := m.Repositories()
	s := newOwnedService("Event", repos.Events)

	// an event may only point at one of the requester's own locations
	checkLocation := func(ctx context.Context, ownerID string, id *string) (*string, error) {
		id = blankToNil(id)
		if id == nil {
			return nil, nil
		}
		if !validID(*id) {
			return nil, validation.New("Location not found")
		}
		if _, err := repos.Locations.Get(ctx, *id, ownerID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, validation.New("Location not found")
			}
			return nil, fmt.Errorf("event store: %w", err)
		}
		return id, nil
	}

	s.beforeCreate = func(ctx context.Context, ownerID string, e *models.Event) (err error) {
		if strings.TrimSpace(e.Status) == "" {
			e.Status = models.DefaultEventStatus
		}
		e.LocationID, err = checkLocation(ctx, ownerID, e.LocationID)
		return err
	}
	s.beforeUpdate = func(ctx context.Context, ownerID string, p *models.EventPatch) (err error) {
		p.Status = blankToNil(p.Status)
		p.LocationID, err = checkLocation(ctx, ownerID, p.LocationID)
		return err
	}
	return s
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
