package cli

import (
	"context"
	"fmt"
)

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteLocation(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Location deleted")
	return nil
}
