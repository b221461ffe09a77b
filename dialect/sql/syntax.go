package sql

import (
	"fmt"
	"strconv"

	"github.com/syssam/crud/dialect"
)

// Syntax is the per-backend statement syntax policy. It answers the two
// questions that differ between the supported dialects: how a bound
// parameter position is rendered, and whether an insert can hand back a
// generated primary key in the same round trip.
//
// A Syntax value is immutable and safe for concurrent use.
type Syntax struct {
	name string
}

// SyntaxFor returns the syntax policy for the given dialect name.
// It fails on dialects outside the supported set.
func SyntaxFor(name string) (Syntax, error) {
	switch name {
	case dialect.MySQL, dialect.Postgres, dialect.SQLite:
		return Syntax{name: name}, nil
	default:
		return Syntax{}, fmt.Errorf("dialect/sql: unsupported dialect %q", name)
	}
}

// Dialect returns the dialect name the syntax was built for.
func (s Syntax) Dialect() string { return s.name }

// Placeholder renders the placeholder token for the n-th bound parameter
// (1-based). MySQL and SQLite use positional "?" regardless of n;
// Postgres requires numbered "$n" placeholders.
func (s Syntax) Placeholder(n int) string {
	if s.name == dialect.Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// ReturningPK reports whether the dialect can return a generated primary
// key from the insert statement itself via a RETURNING clause. MySQL
// cannot; it reports the generated key through the driver's
// last-insert-id facility on the insert's own result instead.
func (s Syntax) ReturningPK() bool {
	return s.name == dialect.Postgres || s.name == dialect.SQLite
}
