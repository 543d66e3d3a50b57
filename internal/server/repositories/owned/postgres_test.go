package owned

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID     string
	UserID string
	Title  string
	Body   string
}

type notePatch struct {
	Title *string
	Body  *string
}

var noteTable = Table[note, notePatch]{
	Name:    "notes",
	Columns: []string{"title", "body"},
	Values: func(n *note) ([]any, error) {
		return []any{n.Title, n.Body}, nil
	},
	PatchValues: func(p *notePatch) ([]any, error) {
		return []any{p.Title, p.Body}, nil
	},
	Select:  "SELECT r.id, r.user_id, r.title, r.body FROM notes r",
	Scan:    func(s Scanner, n *note) error { return s.Scan(&n.ID, &n.UserID, &n.Title, &n.Body) },
	OrderBy: "r.updated_at DESC, r.id",
}

var noteCols = []string{"id", "user_id", "title", "body"}

func newRepoWithMock(t *testing.T) (*PostgresRepository[note, notePatch], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db, noteTable), mock
}

func strPtr(s string) *string { return &s }

func TestQueriesAreBuiltFromTable(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	assert.Equal(t, "INSERT INTO notes (id, user_id, title, body) VALUES ($1, $2, $3, $4)", repo.insertQuery)
	assert.Equal(t, "UPDATE notes SET title = COALESCE($3, title), body = COALESCE($4, body), updated_at = now() WHERE id = $1 AND user_id = $2", repo.updateQuery)
	assert.Equal(t, "DELETE FROM notes WHERE id = $1 AND user_id = $2", repo.deleteQuery)
	assert.Equal(t, "SELECT r.id, r.user_id, r.title, r.body FROM notes r WHERE r.id = $1 AND r.user_id = $2", repo.getQuery)
	assert.Equal(t, "SELECT r.id, r.user_id, r.title, r.body FROM notes r WHERE r.user_id = $1 ORDER BY r.updated_at DESC, r.id", repo.listQuery)
}

func TestCreate_ForcesOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(repo.insertQuery)).
		WithArgs("n1", "alice", "t", "b").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), "n1", "alice", &note{UserID: "mallory", Title: "t", Body: "b"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO notes`).WillReturnError(&pgconn.PgError{Code: "23503"})
	err := repo.Create(context.Background(), "n1", "alice", &note{})
	assert.ErrorIs(t, err, common.ErrorValidation)

	mock.ExpectExec(`INSERT INTO notes`).WillReturnError(errors.New("db down"))
	err = repo.Create(context.Background(), "n1", "alice", &note{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorValidation)
}

func TestGet_ScopedByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(repo.getQuery)).
		WithArgs("n1", "alice").
		WillReturnRows(sqlmock.NewRows(noteCols).AddRow("n1", "alice", "t", "b"))

	got, err := repo.Get(context.Background(), "n1", "alice")
	require.NoError(t, err)
	assert.Equal(t, note{ID: "n1", UserID: "alice", Title: "t", Body: "b"}, *got)

	// bob sees nothing: the predicate filters the row out
	mock.ExpectQuery(regexp.QuoteMeta(repo.getQuery)).
		WithArgs("n1", "bob").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Get(context.Background(), "n1", "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(repo.listQuery)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(noteCols))

	got, err := repo.List(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	mock.ExpectQuery(regexp.QuoteMeta(repo.listQuery)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow("n2", "alice", "b", "").
			AddRow("n1", "alice", "a", ""))

	got, err = repo.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n2", got[0].ID)
	assert.Equal(t, "n1", got[1].ID)
}

func TestList_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(repo.listQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("n1"))

	_, err := repo.List(context.Background(), "alice")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := "SELECT r.id, r.user_id, r.title, r.body FROM notes r WHERE r.user_id = $1 AND (r.title = $2) ORDER BY r.id"
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs("alice", "a").
		WillReturnRows(sqlmock.NewRows(noteCols).AddRow("n1", "alice", "a", ""))

	got, err := repo.Find(context.Background(), "alice", "r.title = $2", "r.id", "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestUpdate_SingleConditionalWrite(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(repo.updateQuery)).
		WithArgs("n1", "alice", nil, "x").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "n1", "alice", &notePatch{Body: strPtr("x")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotOwnedIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(repo.updateQuery)).
		WithArgs("n1", "bob", nil, "x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "n1", "bob", &notePatch{Body: strPtr("x")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_ForeignKey(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(repo.updateQuery)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Update(context.Background(), "n1", "alice", &notePatch{})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(repo.deleteQuery)).
		WithArgs("n1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "n1", "alice"))

	mock.ExpectExec(regexp.QuoteMeta(repo.deleteQuery)).
		WithArgs("n1", "bob").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "n1", "bob"), common.ErrorNotFound)

	mock.ExpectExec(regexp.QuoteMeta(repo.deleteQuery)).
		WillReturnError(errors.New("db down"))
	err := repo.Delete(context.Background(), "n1", "alice")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
