// Package locations persists points of interest through the generic
// ownership-scoped repository and adds name search.
package locations

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/geomap/internal/dbx"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/owned"
)

// Repository is the owned repository for locations plus SearchByName.
type Repository interface {
	owned.Repository[models.Location, models.LocationPatch]
	// SearchByName returns the owner's locations whose name contains term,
	// ignoring case, newest first.
	SearchByName(ctx context.Context, ownerID, term string) ([]models.Location, error)
}

var Table = owned.Table[models.Location, models.LocationPatch]{
	Name:    "locations",
	Columns: []string{"name", "description", "latitude", "longitude", "category_id"},
	Values: func(l *models.Location) ([]any, error) {
		return []any{l.Name, l.Description, l.Latitude, l.Longitude, l.CategoryID}, nil
	},
	PatchValues: func(p *models.LocationPatch) ([]any, error) {
		return []any{p.Name, p.Description, p.Latitude, p.Longitude, p.CategoryID}, nil
	},
	Select: `SELECT r.id, r.user_id, r.name, r.description, r.latitude, r.longitude, r.category_id,
		r.created_at, r.updated_at, u.username, c.name, c.color
		FROM locations r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN categories c ON c.id = r.category_id`,
	Scan:    scan,
	OrderBy: "r.updated_at DESC, r.id",
}

func scan(s owned.Scanner, l *models.Location) error {
	var (
		categoryID             sql.NullString
		categoryName, catColor sql.NullString
		username               string
	)

	err := s.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.Latitude, &l.Longitude, &categoryID,
		&l.CreatedAt, &l.UpdatedAt, &username, &categoryName, &catColor)
	if err != nil {
		return err
	}

	l.User = &models.Owner{ID: l.UserID, Username: username}
	if categoryID.Valid {
		l.CategoryID = &categoryID.String
		if categoryName.Valid {
			l.Category = &models.CategoryRef{ID: categoryID.String, Name: categoryName.String, Color: catColor.String}
		}
	}
	return nil
}

type PostgresRepository struct {
	*owned.PostgresRepository[models.Location, models.LocationPatch]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{owned.NewPostgresRepository(db, Table)}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PostgresRepository) SearchByName(ctx context.Context, ownerID, term string) ([]models.Location, error) {
	return r.Find(ctx, ownerID,
		`LOWER(r.name) LIKE '%' || LOWER($2) || '%' ESCAPE '\'`,
		"r.created_at DESC, r.id",
		likeEscaper.Replace(term))
}
