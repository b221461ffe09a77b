package sql

import (
	"fmt"

	"github.com/syssam/crud/schema"
)

// InsertArgs selects, from the full record values (one value per
// descriptor column, in descriptor order), the arguments for the insert
// statement rendered by NewStatements. The result order matches the
// statement's placeholder order position-for-position.
func InsertArgs(d *schema.Descriptor, values []any) ([]any, error) {
	if len(values) != d.Len() {
		return nil, fmt.Errorf("dialect/sql: %s: got %d values for %d columns", d.Table(), len(values), d.Len())
	}
	idx := d.InsertIndexes()
	args := make([]any, len(idx))
	for i, ci := range idx {
		args[i] = values[ci]
	}
	return args, nil
}

// UpdateArgs selects the arguments for the update statement: the SET
// values in descriptor order followed by the primary key value for the
// WHERE clause, which is always bound last.
func UpdateArgs(d *schema.Descriptor, values []any) ([]any, error) {
	if len(values) != d.Len() {
		return nil, fmt.Errorf("dialect/sql: %s: got %d values for %d columns", d.Table(), len(values), d.Len())
	}
	idx := d.UpdateIndexes()
	args := make([]any, 0, len(idx)+1)
	for _, ci := range idx {
		args = append(args, values[ci])
	}
	return append(args, values[d.PKIndex()]), nil
}
