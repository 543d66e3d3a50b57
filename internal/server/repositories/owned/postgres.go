package owned

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/dbx"
)

// PostgresRepository is the Table-driven implementation of Repository.
type PostgresRepository[T any, P any] struct {
	db    dbx.DBTX
	table Table[T, P]

	insertQuery string
	getQuery    string
	listQuery   string
	updateQuery string
	deleteQuery string
}

func NewPostgresRepository[T any, P any](db dbx.DBTX, table Table[T, P]) *PostgresRepository[T, P] {
	r := &PostgresRepository[T, P]{db: db, table: table}

	cols := append([]string{"id", "user_id"}, table.Columns...)
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	r.insertQuery = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.Name, strings.Join(cols, ", "), strings.Join(params, ", "))

	sets := make([]string, 0, len(table.Columns)+1)
	for i, c := range table.Columns {
		sets = append(sets, fmt.Sprintf("%s = COALESCE($%d, %s)", c, i+3, c))
	}
	sets = append(sets, "updated_at = now()")
	r.updateQuery = fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND user_id = $2",
		table.Name, strings.Join(sets, ", "))

	r.deleteQuery = fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", table.Name)
	r.getQuery = table.Select + " WHERE r.id = $1 AND r.user_id = $2"
	r.listQuery = table.Select + " WHERE r.user_id = $1 ORDER BY " + table.OrderBy

	return r
}

func (r *PostgresRepository[T, P]) Create(ctx context.Context, id, ownerID string, rec *T) error {
	values, err := r.table.Values(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.table.Name, err)
	}

	args := append([]any{id, ownerID}, values...)
	if _, err := r.db.ExecContext(ctx, r.insertQuery, args...); err != nil {
		return translate(err)
	}
	return nil
}

func (r *PostgresRepository[T, P]) Get(ctx context.Context, id, ownerID string) (*T, error) {
	rec := new(T)
	if err := r.table.Scan(r.db.QueryRowContext(ctx, r.getQuery, id, ownerID), rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository[T, P]) List(ctx context.Context, ownerID string) ([]T, error) {
	return r.query(ctx, r.listQuery, ownerID)
}

// Find returns the owner's records matching cond, a predicate over alias r
// whose placeholders start at $2 ($1 is the owner).
func (r *PostgresRepository[T, P]) Find(ctx context.Context, ownerID, cond, orderBy string, args ...any) ([]T, error) {
	query := r.table.Select + " WHERE r.user_id = $1 AND (" + cond + ") ORDER BY " + orderBy
	return r.query(ctx, query, append([]any{ownerID}, args...)...)
}

// Update merges the non-nil patch values onto the stored row with a single
// conditional statement, so there is no window between the ownership check
// and the write.
func (r *PostgresRepository[T, P]) Update(ctx context.Context, id, ownerID string, patch *P) error {
	values, err := r.table.PatchValues(patch)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", r.table.Name, err)
	}

	args := append([]any{id, ownerID}, values...)
	res, err := r.db.ExecContext(ctx, r.updateQuery, args...)
	if err != nil {
		return translate(err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository[T, P]) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, r.deleteQuery, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository[T, P]) query(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var rec T
		if err := r.table.Scan(rows, &rec); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func translate(err error) error {
	if dbx.IsForeignKeyViolation(err) {
		return common.NewError(common.ErrorValidation, "Referenced record does not exist")
	}
	return fmt.Errorf("db error: %w", err)
}
