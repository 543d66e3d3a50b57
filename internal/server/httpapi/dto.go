package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// firstRef picks whichever of two aliased reference fields was sent.
// Bodies may name a reference either "category" or "categoryId".
func firstRef(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

type locationCreate struct {
	Name        string   `json:"name" validate:"required,notblank,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	Category    *string  `json:"category"`
	CategoryID  *string  `json:"categoryId"`
}

func (p *locationCreate) toModel() (*models.Location, error) {
	return &models.Location{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Latitude:    *p.Latitude,
		Longitude:   *p.Longitude,
		CategoryID:  firstRef(p.CategoryID, p.Category),
	}, nil
}

type locationUpdate struct {
	Name        *string  `json:"name" validate:"omitnil,notblank,max=200"`
	Description *string  `json:"description" validate:"omitnil,max=2000"`
	Latitude    *float64 `json:"latitude" validate:"omitnil,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitnil,longitude"`
	Category    *string  `json:"category"`
	CategoryID  *string  `json:"categoryId"`
}

func (p *locationUpdate) toModel() (*models.LocationPatch, error) {
	return &models.LocationPatch{
		Name:        trimmed(p.Name),
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CategoryID:  firstRef(p.CategoryID, p.Category),
	}, nil
}

type coordinate struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func toCoordinates(in []coordinate) []models.Coordinate {
	if in == nil {
		return nil
	}
	out := make([]models.Coordinate, len(in))
	for i, c := range in {
		out[i] = models.Coordinate{Latitude: *c.Latitude, Longitude: *c.Longitude}
	}
	return out
}

type polygonCreate struct {
	Name        string       `json:"name" validate:"required,notblank,max=200"`
	Description string       `json:"description" validate:"max=2000"`
	Coordinates []coordinate `json:"coordinates" validate:"required,min=3,dive"`
}

func (p *polygonCreate) toModel() (*models.Polygon, error) {
	return &models.Polygon{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Coordinates: toCoordinates(p.Coordinates),
	}, nil
}

type polygonUpdate struct {
	Name        *string      `json:"name" validate:"omitnil,notblank,max=200"`
	Description *string      `json:"description" validate:"omitnil,max=2000"`
	Coordinates []coordinate `json:"coordinates" validate:"omitempty,min=3,dive"`
}

func (p *polygonUpdate) toModel() (*models.PolygonPatch, error) {
	return &models.PolygonPatch{
		Name:        trimmed(p.Name),
		Description: p.Description,
		Coordinates: toCoordinates(p.Coordinates),
	}, nil
}

// dateLayouts are tried in order; the last two are what browser date and
// datetime-local inputs send.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, validation.New("date must be a valid date")
}

type eventCreate struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Date        string  `json:"date" validate:"required"`
	Location    *string `json:"location"`
	LocationID  *string `json:"locationId"`
	Status      string  `json:"status" validate:"max=50"`
}

func (p *eventCreate) toModel() (*models.Event, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Title:       strings.TrimSpace(p.Title),
		Description: p.Description,
		Date:        date,
		LocationID:  firstRef(p.LocationID, p.Location),
		Status:      strings.TrimSpace(p.Status),
	}, nil
}

type eventUpdate struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	LocationID  *string `json:"locationId"`
	Status      *string `json:"status" validate:"omitnil,max=50"`
}

func (p *eventUpdate) toModel() (*models.EventPatch, error) {
	patch := &models.EventPatch{
		Title:       trimmed(p.Title),
		Description: p.Description,
		LocationID:  firstRef(p.LocationID, p.Location),
		Status:      trimmed(p.Status),
	}
	if p.Date != nil {
		date, err := parseDate(*p.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &date
	}
	return patch, nil
}

type categoryCreate struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

func (p *categoryCreate) toModel() (*models.Category, error) {
	return &models.Category{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Color:       p.Color,
	}, nil
}

type categoryUpdate struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string `json:"description" validate:"omitnil,max=500"`
	Color       *string `json:"color" validate:"omitnil,hexcolor"`
}

func (p *categoryUpdate) toModel() (*models.CategoryPatch, error) {
	return &models.CategoryPatch{
		Name:        trimmed(p.Name),
		Description: p.Description,
		Color:       p.Color,
	}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
