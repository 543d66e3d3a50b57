// Package events persists calendar events through the generic
// ownership-scoped repository.
package events

import (
	"database/sql"

	"github.com/dmitrijs2005/geomap/internal/dbx"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/owned"
)

type Repository = owned.Repository[models.Event, models.EventPatch]

// The location is joined only when it belongs to the event's owner.
var Table = owned.Table[models.Event, models.EventPatch]{
	Name:    "events",
	Columns: []string{"title", "description", "date", "location_id", "status"},
	Values: func(e *models.Event) ([]any, error) {
		return []any{e.Title, e.Description, e.Date, e.LocationID, e.Status}, nil
	},
	PatchValues: func(p *models.EventPatch) ([]any, error) {
		return []any{p.Title, p.Description, p.Date, p.LocationID, p.Status}, nil
	},
	Select: `SELECT r.id, r.user_id, r.title, r.description, r.date, r.location_id, r.status,
		r.created_at, r.updated_at, u.username, l.id, l.name, l.latitude, l.longitude
		FROM events r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN locations l ON l.id = r.location_id AND l.user_id = r.user_id`,
	Scan:    scan,
	OrderBy: "r.created_at DESC, r.id",
}

func scan(s owned.Scanner, e *models.Event) error {
	var (
		locationID     sql.NullString
		username       string
		locID, locName sql.NullString
		locLat, locLng sql.NullFloat64
	)

	err := s.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.Date, &locationID, &e.Status,
		&e.CreatedAt, &e.UpdatedAt, &username, &locID, &locName, &locLat, &locLng)
	if err != nil {
		return err
	}

	e.User = &models.Owner{ID: e.UserID, Username: username}
	if locationID.Valid {
		e.LocationID = &locationID.String
	}
	if locID.Valid {
		e.Location = &models.LocationRef{ID: locID.String, Name: locName.String, Latitude: locLat.Float64, Longitude: locLng.Float64}
	}
	return nil
}

func NewPostgresRepository(db dbx.DBTX) *owned.PostgresRepository[models.Event, models.EventPatch] {
	return owned.NewPostgresRepository(db, Table)
}
