// Package server wires the geomap API: configuration, storage, services and
// the HTTP router. It also handles signals and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/geomap/internal/logging"
	"github.com/dmitrijs2005/geomap/internal/server/auth"
	"github.com/dmitrijs2005/geomap/internal/server/config"
	"github.com/dmitrijs2005/geomap/internal/server/httpapi"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/geomap/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	base        logging.Logger
	repomanager repomanager.RepositoryManager
	handler     http.Handler
}

// openPostgres is replaced in tests.
var openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	m, err := repomanager.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func NewApp(ctx context.Context, c *config.Config, base logging.Logger) (*App, error) {
	logger := base.With("module", "app")

	if c.InsecureSecretKey {
		logger.Warn(ctx, "no secret key configured, signing tokens with the public development key")
	}

	m, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	users, err := services.NewUserService(m, auth.NewPasswordHasher(c.BcryptCost), tokens)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	api := httpapi.New(httpapi.Deps{
		Users:          users,
		Categories:     services.NewCategoryService(m),
		Locations:      services.NewLocationService(m),
		Polygons:       services.NewPolygonService(m),
		Events:         services.NewEventService(m),
		Health:         m.Ping,
		Logger:         base,
		Metrics:        httpapi.NewMetrics(),
		AllowedOrigins: c.AllowedOrigins,
		RequestTimeout: c.RequestTimeout,
	})

	return &App{config: c, logger: logger, base: base, repomanager: m, handler: api.Handler()}, nil
}

func newRepositoryManager(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	if c.Storage == config.StorageMemory {
		logger.Info(ctx, "Using in-memory storage")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	m, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return m, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment, "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	srv := httpapi.NewServer(app.config.EndpointAddr, app.handler, app.base, app.config.ShutdownTimeout)
	runErr := srv.Run(ctx)

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "error closing store", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
	return runErr
}
