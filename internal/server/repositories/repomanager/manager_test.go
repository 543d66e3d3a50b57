package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ RepositoryManager = (*PostgresRepositoryManager)(nil)
	_ RepositoryManager = (*MemoryRepositoryManager)(nil)
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestPostgres_RepositoriesAreWired(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	repos := NewPostgresRepositoryManager(db).Repositories()
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Categories)
	assert.NotNil(t, repos.Locations)
	assert.NotNil(t, repos.Polygons)
	assert.NotNil(t, repos.Events)
}

func TestPostgres_WithTxCommitsAndRollsBack(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()
	m := NewPostgresRepositoryManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := m.WithTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		if repos.Categories == nil {
			return errors.New("no categories repo")
		}
		return nil
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = m.WithTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := NewPostgresRepositoryManager(db).RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	if err := NewPostgresRepositoryManager(db).RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPostgres_PingAndClose(t *testing.T) {
	db, mock := newDB(t)
	m := NewPostgresRepositoryManager(db)

	mock.ExpectPing()
	require.NoError(t, m.Ping(context.Background()))

	mock.ExpectClose()
	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_PingFailureClosesPool(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, nil
	}
	defer func() { sqlOpen = orig }()

	_, err := OpenPostgres(context.Background(), "postgres://x")
	assert.EqualError(t, err, "refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemory_SharesOneStore(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx))
	require.NoError(t, m.Ping(ctx))

	err := m.WithTx(ctx, func(ctx context.Context, repos Repositories) error {
		_, err := repos.Categories.InsertIfAbsent(ctx, &models.Category{ID: "c1", Name: "Cultura"})
		return err
	})
	require.NoError(t, err)

	got, err := m.Repositories().Categories.GetByName(ctx, "Cultura")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	require.NoError(t, m.Close())
}
