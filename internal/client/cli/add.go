package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/geomap/internal/client/models"
)

// getFloat is swapped in tests.
var getFloat = GetFloat

// Add prompts for a new location. The category is looked up by name among
// the shared categories; an empty answer leaves it unset.
func (a *App) Add(ctx context.Context) error {
	var (
		l   models.NewLocation
		err error
	)

	if l.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if l.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	if l.Latitude, err = getFloat(a.reader, "Latitude", a.out); err != nil {
		return err
	}
	if l.Longitude, err = getFloat(a.reader, "Longitude", a.out); err != nil {
		return err
	}

	category, err := getSimpleText(a.reader, "Category name (optional)", a.out)
	if err != nil {
		return err
	}
	if category != "" {
		if l.CategoryID, err = a.categoryID(ctx, category); err != nil {
			return err
		}
	}

	created, err := a.api.CreateLocation(ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Added", created)
	return nil
}

func (a *App) categoryID(ctx context.Context, name string) (string, error) {
	cs, err := a.api.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range cs {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}
