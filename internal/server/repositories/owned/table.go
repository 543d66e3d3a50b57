package owned

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes how a resource type maps onto a PostgreSQL table.
//
// Select is a SELECT ... FROM clause in which the resource table is aliased
// as r; it may join display data from other tables. Scan must read the
// columns of Select in order.
type Table[T any, P any] struct {
	Name string

	// Columns are the payload columns written on insert and patched on update.
	Columns []string
	// Values returns one insert value per column.
	Values func(rec *T) ([]any, error)
	// PatchValues returns one value per column; nil keeps the stored value.
	PatchValues func(patch *P) ([]any, error)

	Select  string
	Scan    func(s Scanner, rec *T) error
	OrderBy string
}
