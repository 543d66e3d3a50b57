package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/geomap/internal/client/api"
	"github.com/dmitrijs2005/geomap/internal/client/config"
	"github.com/dmitrijs2005/geomap/internal/client/models"
	"github.com/dmitrijs2005/geomap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/filex"
)

// apiClient is the part of *api.Client the commands use.
type apiClient interface {
	SetToken(token string)
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Locations(ctx context.Context) ([]models.Location, error)
	SearchLocations(ctx context.Context, term string) ([]models.Location, error)
	CreateLocation(ctx context.Context, l models.NewLocation) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) error
	Polygons(ctx context.Context) ([]models.Polygon, error)
	Events(ctx context.Context) ([]models.Event, error)
	Categories(ctx context.Context) ([]models.Category, error)
	SeedCategories(ctx context.Context) (*models.SeedResult, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	meta     metadata.Repository
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
	userName string
	loggedIn bool
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := filex.EnsureParentDir(c.CachePath); err != nil {
		return nil, err
	}
	db, err := metadata.Open(ctx, c.CachePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing cache: %w", err)
	}

	a := newApp(c, api.NewClient(c.ServerURL, c.RequestTimeout), metadata.NewSQLiteRepository(db), bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db

	if err := a.restoreSession(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newApp(c *config.Config, client apiClient, meta metadata.Repository, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, api: client, meta: meta, reader: r, out: w}
}

// restoreSession picks up a token cached by an earlier run against the
// same server.
func (a *App) restoreSession(ctx context.Context) error {
	server, err := a.meta.Get(ctx, metadata.KeyServer)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if server != a.config.ServerURL {
		return a.meta.Clear(ctx)
	}

	token, err := a.meta.Get(ctx, metadata.KeyToken)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	a.userName, _ = a.meta.Get(ctx, metadata.KeyUsername)
	a.api.SetToken(token)
	a.loggedIn = true
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}

// Run starts the REPL and closes the cache when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Welcome to the geomap CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
