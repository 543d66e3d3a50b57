// Package polygons persists polygonal zones through the generic
// ownership-scoped repository. The ring is stored as a JSONB array.
package polygons

import (
	"github.com/dmitrijs2005/geomap/internal/dbx"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/owned"
	"github.com/goccy/go-json"
)

type Repository = owned.Repository[models.Polygon, models.PolygonPatch]

var Table = owned.Table[models.Polygon, models.PolygonPatch]{
	Name:    "polygons",
	Columns: []string{"name", "description", "coordinates"},
	Values: func(p *models.Polygon) ([]any, error) {
		coords, err := encodeCoordinates(p.Coordinates)
		if err != nil {
			return nil, err
		}
		return []any{p.Name, p.Description, coords}, nil
	},
	PatchValues: func(p *models.PolygonPatch) ([]any, error) {
		var coords any
		if p.Coordinates != nil {
			encoded, err := encodeCoordinates(p.Coordinates)
			if err != nil {
				return nil, err
			}
			coords = encoded
		}
		return []any{p.Name, p.Description, coords}, nil
	},
	Select: `SELECT r.id, r.user_id, r.name, r.description, r.coordinates,
		r.created_at, r.updated_at, u.username
		FROM polygons r
		JOIN users u ON u.id = r.user_id`,
	Scan:    scan,
	OrderBy: "r.updated_at DESC, r.id",
}

func encodeCoordinates(c []models.Coordinate) (string, error) {
	if c == nil {
		c = []models.Coordinate{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scan(s owned.Scanner, p *models.Polygon) error {
	var (
		raw      []byte
		username string
	)

	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &raw, &p.CreatedAt, &p.UpdatedAt, &username)
	if err != nil {
		return err
	}

	p.Coordinates = []models.Coordinate{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Coordinates); err != nil {
			return err
		}
	}
	p.User = &models.Owner{ID: p.UserID, Username: username}
	return nil
}

func NewPostgresRepository(db dbx.DBTX) *owned.PostgresRepository[models.Polygon, models.PolygonPatch] {
	return owned.NewPostgresRepository(db, Table)
}
