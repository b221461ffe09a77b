package schema

import (
	"errors"
	"fmt"

	"github.com/go-openapi/inflect"
)

// Sentinel errors reported by NewDescriptor.
var (
	// ErrNoPrimaryKey is returned when no column is marked as the primary key.
	ErrNoPrimaryKey = errors.New("schema: no primary key column")

	// ErrMultiplePrimaryKeys is returned when more than one column is marked
	// as the primary key.
	ErrMultiplePrimaryKeys = errors.New("schema: multiple primary key columns")
)

// Column describes a single table column of a record type.
type Column struct {
	// Name is the column name as it appears in the table.
	Name string

	// PrimaryKey marks the column as the primary key.
	// Exactly one column per descriptor must set it.
	PrimaryKey bool

	// AutoIncrement marks a primary key whose value is generated by the
	// database on insert. Auto-increment columns are excluded from the
	// insert column list.
	AutoIncrement bool

	// OmitInsert excludes the column from insert statements, leaving the
	// value to the database default (e.g. a created_at timestamp).
	OmitInsert bool

	// OmitUpdate excludes the column from the SET list of update
	// statements (e.g. an immutable created_at timestamp).
	OmitUpdate bool

	// SoftDelete marks a nullable timestamp column used for logical
	// deletion. At most one column per descriptor may set it. When
	// present, delete statements set this column instead of removing the
	// row, and reads filter on it being NULL.
	SoftDelete bool
}

// A Descriptor is the static metadata of a record type: its table name,
// ordered column list, and primary key. Descriptors are immutable after
// construction and safe for concurrent use.
type Descriptor struct {
	table      string
	columns    []Column
	pk         int
	softDelete int // index into columns, or -1
}

// Option configures descriptor construction.
type Option func(*Descriptor)

// WithTable overrides the derived table name.
func WithTable(name string) Option {
	return func(d *Descriptor) {
		if name != "" {
			d.table = name
		}
	}
}

// NewDescriptor builds the descriptor for the named record type.
// The table name defaults to inflect.Tableize(name) unless overridden
// with WithTable. It fails unless exactly one column is marked as the
// primary key, so a malformed record type is rejected when the
// descriptor is built, never during an operation.
func NewDescriptor(name string, columns []Column, opts ...Option) (*Descriptor, error) {
	if name == "" {
		return nil, errors.New("schema: empty record type name")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema: record type %s has no columns", name)
	}
	d := &Descriptor{
		table:      inflect.Tableize(name),
		columns:    append([]Column(nil), columns...),
		pk:         -1,
		softDelete: -1,
	}
	seen := make(map[string]struct{}, len(columns))
	for i, c := range d.columns {
		if c.Name == "" {
			return nil, fmt.Errorf("schema: %s: column %d has no name", name, i)
		}
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("schema: %s: duplicate column %q", name, c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.PrimaryKey {
			if d.pk >= 0 {
				return nil, fmt.Errorf("%w: %s declares both %q and %q", ErrMultiplePrimaryKeys, name, d.columns[d.pk].Name, c.Name)
			}
			d.pk = i
		}
		if c.SoftDelete {
			if c.PrimaryKey {
				return nil, fmt.Errorf("schema: %s: soft-delete column %q cannot be the primary key", name, c.Name)
			}
			if d.softDelete >= 0 {
				return nil, fmt.Errorf("schema: %s: multiple soft-delete columns", name)
			}
			d.softDelete = i
		}
	}
	if d.pk < 0 {
		return nil, fmt.Errorf("%w: record type %s", ErrNoPrimaryKey, name)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on error. It is used
// by generated code for package-level descriptor variables, where the
// generator has already validated the layout.
func MustDescriptor(name string, columns []Column, opts ...Option) *Descriptor {
	d, err := NewDescriptor(name, columns, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Table returns the table name.
func (d *Descriptor) Table() string { return d.table }

// Columns returns a copy of the ordered column list.
func (d *Descriptor) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// ColumnNames returns the ordered column names.
func (d *Descriptor) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of columns.
func (d *Descriptor) Len() int { return len(d.columns) }

// PK returns the primary key column.
func (d *Descriptor) PK() Column { return d.columns[d.pk] }

// PKIndex returns the position of the primary key column.
func (d *Descriptor) PKIndex() int { return d.pk }

// AutoPK reports whether the primary key is database-generated.
func (d *Descriptor) AutoPK() bool { return d.columns[d.pk].AutoIncrement }

// SoftDeleteColumn returns the soft-delete column, if one was declared.
func (d *Descriptor) SoftDeleteColumn() (Column, bool) {
	if d.softDelete < 0 {
		return Column{}, false
	}
	return d.columns[d.softDelete], true
}

// InsertIndexes returns the positions of the columns included in insert
// statements, in descriptor order: every column except an auto-increment
// primary key, the soft-delete column, and columns flagged OmitInsert.
// Statement rendering and
// parameter binding both use this list, which keeps the column list, the
// placeholder count, and the bound values aligned by construction.
func (d *Descriptor) InsertIndexes() []int {
	idx := make([]int, 0, len(d.columns))
	for i, c := range d.columns {
		if c.PrimaryKey && c.AutoIncrement {
			continue
		}
		if c.OmitInsert || c.SoftDelete {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// UpdateIndexes returns the positions of the columns assigned in the SET
// list of update statements, in descriptor order: every column except
// the primary key, the soft-delete column, and columns flagged
// OmitUpdate. The primary key is bound separately, after the SET values,
// for the WHERE clause.
func (d *Descriptor) UpdateIndexes() []int {
	idx := make([]int, 0, len(d.columns))
	for i, c := range d.columns {
		if c.PrimaryKey || c.OmitUpdate || c.SoftDelete {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}
