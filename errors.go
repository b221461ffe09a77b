package crud

import (
	"errors"
	"fmt"
)

// Error records a failed repository operation. The underlying database
// error is preserved unchanged and can be reached with errors.Is and
// errors.As; crud never retries or recovers silently.
//
// A missing row on Get is not an Error: absence is reported as a nil
// record, never as a failure.
type Error struct {
	Table string // table the operation ran against
	Op    string // "create", "read", "update", "delete" or "all"
	Err   error  // underlying driver error
}

// Error returns the error string.
func (e *Error) Error() string {
	return fmt.Sprintf("crud: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError returns the *Error wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	return e, errors.As(err, &e)
}
