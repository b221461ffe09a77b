package dialect

import (
	"context"
)

// Dialect names of the supported database backends.
const (
	// MySQL is the dialect name for MySQL/MariaDB.
	MySQL = "mysql"
	// Postgres is the dialect name for PostgreSQL.
	Postgres = "postgres"
	// SQLite is the dialect name for SQLite.
	SQLite = "sqlite"
)

// ExecQuerier wraps the two standard database operations used by crud.
//
// The args parameter is expected to be a []any holding the ordered bound
// parameters, and v is the destination for the result: *sql.Result for
// Exec (or nil when the result is not needed), *sql.Rows for Query.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal interface a database connection must provide for
// crud repositories. It is implemented by dialect/sql.Driver.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transactional execution. A Tx is scoped to a single database
// connection for its entire lifetime.
type Tx interface {
	ExecQuerier
	// Commit commits the transaction.
	Commit() error
	// Rollback discards the transaction.
	Rollback() error
}
