package cli

import (
	"context"
	"fmt"
)

func printAll[T fmt.Stringer](a *App, items []T, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}
	for _, item := range items {
		fmt.Fprintln(a.out, item)
	}
}

func (a *App) List(ctx context.Context) error {
	locs, err := a.api.Locations(ctx)
	if err != nil {
		return err
	}
	printAll(a, locs, "No locations yet")
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	locs, err := a.api.SearchLocations(ctx, term)
	if err != nil {
		return err
	}
	printAll(a, locs, "Nothing found")
	return nil
}

func (a *App) Polygons(ctx context.Context) error {
	ps, err := a.api.Polygons(ctx)
	if err != nil {
		return err
	}
	printAll(a, ps, "No polygons yet")
	return nil
}

func (a *App) Events(ctx context.Context) error {
	es, err := a.api.Events(ctx)
	if err != nil {
		return err
	}
	printAll(a, es, "No events yet")
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	cs, err := a.api.Categories(ctx)
	if err != nil {
		return err
	}
	printAll(a, cs, "No categories yet (try 'seed')")
	return nil
}

func (a *App) Seed(ctx context.Context) error {
	res, err := a.api.SeedCategories(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Message)
	printAll(a, res.Categories, "")
	return nil
}
