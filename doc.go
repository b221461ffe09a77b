// Package crud eliminates hand-written SQL and row-mapping boilerplate
// for simple tables. Given a record type's column layout and primary
// key, it renders dialect-correct statements for the five canonical
// operations (create, read by key, update, delete, read all) and maps
// result rows back into typed records.
//
// # Layout
//
//   - schema: the immutable table/column descriptor of a record type
//   - dialect, dialect/sql: the driver abstraction over database/sql,
//     plus placeholder syntax, statement rendering, and parameter binding
//   - compiler/gen, compiler/load, cmd/crudgen: code generation of the
//     per-type Schema implementations
//
// # Usage
//
// Each record type supplies a Schema implementation, normally produced
// by crudgen from struct tags:
//
//	type User struct {
//	    ID    int64  `crud:"id,pk,auto"`
//	    Email string `crud:"email"`
//	}
//
// The generated UserSchema plugs into a Repository:
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	users, err := crud.NewRepository[User, int64](drv, UserSchema{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	u, err := users.Create(ctx, User{Email: "a@example.com"})
//
// Repositories hold no mutable state and are safe for concurrent use;
// connection pooling and statement concurrency are delegated entirely to
// the underlying database/sql pool.
package crud
