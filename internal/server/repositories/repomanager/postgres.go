// Package repomanager provides the RepositoryManager implementations: one
// backed by PostgreSQL, which also applies the embedded goose migrations,
// and one backed by process memory.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/geomap/internal/dbx"
	"github.com/dmitrijs2005/geomap/internal/server/migrations"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/categories"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/events"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/locations"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/polygons"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// OpenPostgres opens a pgx-backed connection pool and checks it is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresRepositoryManager(db), nil
}

func (m *PostgresRepositoryManager) repositories(db dbx.DBTX) Repositories {
	return Repositories{
		Users:      users.NewPostgresRepository(db),
		Categories: categories.NewPostgresRepository(db),
		Locations:  locations.NewPostgresRepository(db),
		Polygons:   polygons.NewPostgresRepository(db),
		Events:     events.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Repositories() Repositories {
	return m.repositories(m.db)
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.repositories(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
