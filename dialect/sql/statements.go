package sql

import (
	"strings"

	"github.com/syssam/crud/schema"
)

// Statements holds the five canonical CRUD statements rendered for one
// descriptor and one dialect. The strings are built once, with no I/O,
// and are immutable afterwards.
type Statements struct {
	// ByPK selects a single row by primary key.
	ByPK string
	// All selects every (non-soft-deleted) row.
	All string
	// Insert inserts one row. When ReturningPK is set, the statement
	// ends with a RETURNING clause for the primary key column.
	Insert string
	// Update assigns every updatable column and filters on the primary
	// key, whose placeholder is always last.
	Update string
	// Delete removes a row by primary key, or marks it deleted when the
	// descriptor declares a soft-delete column.
	Delete string

	// ReturningPK reports whether Insert yields the primary key as a
	// result row. When false and the primary key is auto-increment, the
	// generated key must be read from the insert's last-insert-id.
	ReturningPK bool
}

// NewStatements renders the statements for the descriptor under the
// named dialect.
func NewStatements(dialect string, d *schema.Descriptor) (*Statements, error) {
	s, err := SyntaxFor(dialect)
	if err != nil {
		return nil, err
	}
	return &Statements{
		ByPK:        selectByPK(s, d),
		All:         selectAll(s, d),
		Insert:      insert(s, d),
		Update:      update(s, d),
		Delete:      del(s, d),
		ReturningPK: s.ReturningPK(),
	}, nil
}

func selectByPK(s Syntax, d *schema.Descriptor) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(d.ColumnNames(), ", "))
	b.WriteString(" FROM ")
	b.WriteString(d.Table())
	b.WriteString(" WHERE ")
	b.WriteString(d.PK().Name)
	b.WriteString(" = ")
	b.WriteString(s.Placeholder(1))
	if sd, ok := d.SoftDeleteColumn(); ok {
		b.WriteString(" AND ")
		b.WriteString(sd.Name)
		b.WriteString(" IS NULL")
	}
	b.WriteString(" LIMIT 1")
	return b.String()
}

func selectAll(s Syntax, d *schema.Descriptor) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(d.ColumnNames(), ", "))
	b.WriteString(" FROM ")
	b.WriteString(d.Table())
	if sd, ok := d.SoftDeleteColumn(); ok {
		b.WriteString(" WHERE ")
		b.WriteString(sd.Name)
		b.WriteString(" IS NULL")
	}
	return b.String()
}

func insert(s Syntax, d *schema.Descriptor) string {
	cols := d.Columns()
	idx := d.InsertIndexes()
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.Table())
	b.WriteString(" (")
	for i, ci := range idx {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cols[ci].Name)
	}
	b.WriteString(") VALUES (")
	for i := range idx {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Placeholder(i + 1))
	}
	b.WriteString(")")
	if s.ReturningPK() {
		b.WriteString(" RETURNING ")
		b.WriteString(d.PK().Name)
	}
	return b.String()
}

func update(s Syntax, d *schema.Descriptor) string {
	cols := d.Columns()
	idx := d.UpdateIndexes()
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(d.Table())
	b.WriteString(" SET ")
	for i, ci := range idx {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cols[ci].Name)
		b.WriteString(" = ")
		b.WriteString(s.Placeholder(i + 1))
	}
	b.WriteString(" WHERE ")
	b.WriteString(d.PK().Name)
	b.WriteString(" = ")
	b.WriteString(s.Placeholder(len(idx) + 1))
	if sd, ok := d.SoftDeleteColumn(); ok {
		b.WriteString(" AND ")
		b.WriteString(sd.Name)
		b.WriteString(" IS NULL")
	}
	return b.String()
}

func del(s Syntax, d *schema.Descriptor) string {
	var b strings.Builder
	if sd, ok := d.SoftDeleteColumn(); ok {
		b.WriteString("UPDATE ")
		b.WriteString(d.Table())
		b.WriteString(" SET ")
		b.WriteString(sd.Name)
		b.WriteString(" = CURRENT_TIMESTAMP WHERE ")
		b.WriteString(d.PK().Name)
		b.WriteString(" = ")
		b.WriteString(s.Placeholder(1))
		b.WriteString(" AND ")
		b.WriteString(sd.Name)
		b.WriteString(" IS NULL")
		return b.String()
	}
	b.WriteString("DELETE FROM ")
	b.WriteString(d.Table())
	b.WriteString(" WHERE ")
	b.WriteString(d.PK().Name)
	b.WriteString(" = ")
	b.WriteString(s.Placeholder(1))
	return b.String()
}
