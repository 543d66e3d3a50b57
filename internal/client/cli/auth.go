package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/geomap/internal/client/models"
	"github.com/dmitrijs2005/geomap/internal/client/repositories/metadata"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return a.startSession(ctx, s)
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.startSession(ctx, s)
}

// startSession caches the token so later runs start signed in.
func (a *App) startSession(ctx context.Context, s *models.Session) error {
	for k, v := range map[string]string{
		metadata.KeyServer:   a.config.ServerURL,
		metadata.KeyToken:    s.Token,
		metadata.KeyUsername: s.User.Username,
	} {
		if err := a.meta.Set(ctx, k, v); err != nil {
			return err
		}
	}

	a.api.SetToken(s.Token)
	a.userName = s.User.Username
	a.loggedIn = true
	fmt.Fprintf(a.out, "Signed in as %s\n", s.User.Username)
	return nil
}

// Logout forgets the token. Tokens are not revoked server side, they
// expire on their own.
func (a *App) Logout(ctx context.Context) error {
	if err := a.meta.Clear(ctx); err != nil {
		return err
	}
	a.api.SetToken("")
	a.userName = ""
	a.loggedIn = false
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.Username, u.Email, u.ID)
	return nil
}
