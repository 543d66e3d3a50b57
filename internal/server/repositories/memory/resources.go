package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/geomap/internal/server/models"
)

func owner(s *Store, id string) *models.Owner {
	o := &models.Owner{ID: id}
	if u, ok := s.users[id]; ok {
		o.Username = u.Username
	}
	return o
}

var locationSchema = schema[models.Location, models.LocationPatch]{
	stamp: func(l *models.Location, id, ownerID string, createdAt, updatedAt time.Time) {
		l.ID, l.UserID, l.CreatedAt, l.UpdatedAt = id, ownerID, createdAt, updatedAt
		l.Category, l.User = nil, nil
	},
	merge: func(l *models.Location, p *models.LocationPatch) {
		setIf(&l.Name, p.Name)
		setIf(&l.Description, p.Description)
		setIf(&l.Latitude, p.Latitude)
		setIf(&l.Longitude, p.Longitude)
		if p.CategoryID != nil {
			id := *p.CategoryID
			l.CategoryID = &id
		}
	},
	project: func(s *Store, l *models.Location) {
		l.User = owner(s, l.UserID)
		l.Category = nil
		if l.CategoryID == nil {
			return
		}
		// a deleted category reads as no category
		c, ok := s.categories[*l.CategoryID]
		if !ok {
			l.CategoryID = nil
			return
		}
		id := c.ID
		l.CategoryID = &id
		l.Category = &models.CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color}
	},
	byUpdated: true,
}

var polygonSchema = schema[models.Polygon, models.PolygonPatch]{
	stamp: func(p *models.Polygon, id, ownerID string, createdAt, updatedAt time.Time) {
		p.ID, p.UserID, p.CreatedAt, p.UpdatedAt = id, ownerID, createdAt, updatedAt
		p.Coordinates = slices.Clone(p.Coordinates)
		p.User = nil
	},
	merge: func(p *models.Polygon, patch *models.PolygonPatch) {
		setIf(&p.Name, patch.Name)
		setIf(&p.Description, patch.Description)
		if patch.Coordinates != nil {
			p.Coordinates = slices.Clone(patch.Coordinates)
		}
	},
	project: func(s *Store, p *models.Polygon) {
		p.User = owner(s, p.UserID)
		if p.Coordinates == nil {
			p.Coordinates = []models.Coordinate{}
		} else {
			p.Coordinates = slices.Clone(p.Coordinates)
		}
	},
	byUpdated: true,
}

var eventSchema = schema[models.Event, models.EventPatch]{
	stamp: func(e *models.Event, id, ownerID string, createdAt, updatedAt time.Time) {
		e.ID, e.UserID, e.CreatedAt, e.UpdatedAt = id, ownerID, createdAt, updatedAt
		e.Location, e.User = nil, nil
	},
	merge: func(e *models.Event, p *models.EventPatch) {
		setIf(&e.Title, p.Title)
		setIf(&e.Description, p.Description)
		setIf(&e.Date, p.Date)
		setIf(&e.Status, p.Status)
		if p.LocationID != nil {
			id := *p.LocationID
			e.LocationID = &id
		}
	},
	project: func(s *Store, e *models.Event) {
		e.User = owner(s, e.UserID)
		e.Location = nil
		if e.LocationID == nil {
			return
		}
		rw, ok := s.Locations.rows[*e.LocationID]
		if !ok {
			e.LocationID = nil
			return
		}
		id := rw.value.ID
		e.LocationID = &id
		if rw.owner == e.UserID {
			e.Location = &models.LocationRef{ID: id, Name: rw.value.Name, Latitude: rw.value.Latitude, Longitude: rw.value.Longitude}
		}
	},
}

func setIf[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// LocationRepository adds name search to the owned location table.
type LocationRepository struct {
	*OwnedRepository[models.Location, models.LocationPatch]
}

func (r *LocationRepository) SearchByName(ctx context.Context, ownerID, term string) ([]models.Location, error) {
	needle := strings.ToLower(term)
	return r.find(ownerID, false, func(l *models.Location) bool {
		return strings.Contains(strings.ToLower(l.Name), needle)
	}), nil
}
