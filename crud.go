package crud

import (
	"github.com/syssam/crud/schema"
)

// Schema binds a record type T with primary key type K to its table
// layout. Implementations are plain value types with no state; they are
// normally generated by crudgen, but can be written by hand for types
// the generator does not cover.
//
// The contract between Values, ScanRow, and the Descriptor is
// positional: Values must return one value per descriptor column, in
// descriptor order, and ScanRow must scan destinations in the same
// order. Generated implementations derive all three from the same field
// list, so they cannot drift apart.
type Schema[T any, K comparable] interface {
	// Descriptor returns the static table metadata of T.
	// The returned descriptor must be the same on every call.
	Descriptor() *schema.Descriptor

	// Values returns the record's column values in descriptor order,
	// primary key included.
	Values(rec T) []any

	// PK returns the record's primary key value.
	PK(rec T) K

	// WithPK returns a copy of the record with the primary key set.
	// The repository uses it to populate database-generated keys after
	// an insert.
	WithPK(rec T, pk K) T

	// FromInsertID converts a driver-generated last-insert-id into the
	// key type. It is only called for auto-increment primary keys on
	// dialects without RETURNING support.
	FromInsertID(id int64) K

	// ScanRow decodes one result row into a record. The scan function
	// follows the database/sql Rows.Scan contract and is handed one
	// destination per descriptor column, in descriptor order.
	ScanRow(scan func(dest ...any) error) (T, error)
}
