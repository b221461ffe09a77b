// Package dialect provides the database dialect abstraction for crud.
//
// It defines the interfaces and constants used for database-specific
// operations, allowing crud to support multiple relational backends.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//	dialect.SQLite   = "sqlite"
//
// The dialect is chosen once when the driver is opened and never changes
// for the lifetime of a connection.
//
// # Driver Interface
//
// The Driver interface is the execution boundary between crud and the
// database. The dialect/sql sub-package implements it on top of the
// standard database/sql package:
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// Statement construction (placeholder syntax, RETURNING support) is
// handled by the dialect/sql sub-package as well; this package carries
// no SQL text of its own.
package dialect
