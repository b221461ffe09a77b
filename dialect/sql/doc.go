// Package sql implements the dialect.Driver interface on top of the
// standard database/sql package, and provides the statement construction
// used by crud repositories.
//
// # Driver
//
// Open wraps database/sql.Open and tags the connection with its dialect:
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db")
//
// OpenDB wraps an existing *sql.DB the same way, which is also how tests
// plug in sqlmock connections.
//
// # Statement construction
//
// Statements renders the five canonical CRUD statements for a descriptor
// once, up front, using the Syntax policy of the active dialect:
//
//	stmts, err := sql.NewStatements(dialect.Postgres, desc)
//	stmts.Insert   // INSERT INTO users (email) VALUES ($1) RETURNING id
//	stmts.ByPK     // SELECT id, email FROM users WHERE id = $1 LIMIT 1
//
// The InsertArgs and UpdateArgs helpers bind record values in exactly the
// column order the statements were rendered with; both sides derive their
// column sets from the same descriptor, so the two can never diverge.
package sql
