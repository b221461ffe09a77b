package crud

import (
	"context"
	"errors"

	"github.com/syssam/crud/dialect"
	"github.com/syssam/crud/dialect/sql"
	"github.com/syssam/crud/schema"
)

// Repository exposes the five CRUD operations for one record type over
// one driver. The statements are rendered once at construction for the
// driver's dialect; after that the repository is immutable and safe for
// concurrent use.
type Repository[T any, K comparable] struct {
	drv   dialect.Driver
	sc    Schema[T, K]
	desc  *schema.Descriptor
	stmts *sql.Statements
}

// NewRepository builds a repository for the record type described by sc
// on top of drv. It fails if the driver's dialect is not supported.
func NewRepository[T any, K comparable](drv dialect.Driver, sc Schema[T, K]) (*Repository[T, K], error) {
	desc := sc.Descriptor()
	stmts, err := sql.NewStatements(drv.Dialect(), desc)
	if err != nil {
		return nil, err
	}
	return &Repository[T, K]{drv: drv, sc: sc, desc: desc, stmts: stmts}, nil
}

// Create inserts the record and returns it with the primary key
// populated. On dialects with RETURNING support the key comes back in
// the insert's own round trip; on MySQL it is read from the insert
// result's last-insert-id, which database/sql reports from the same
// connection that executed the statement.
func (r *Repository[T, K]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	args, err := sql.InsertArgs(r.desc, r.sc.Values(rec))
	if err != nil {
		return zero, err
	}
	switch {
	case r.stmts.ReturningPK:
		rows := &sql.Rows{}
		if err := r.drv.Query(ctx, r.stmts.Insert, args, rows); err != nil {
			return zero, r.fail("create", err)
		}
		pk, err := scanPK[K](rows)
		if err != nil {
			return zero, r.fail("create", err)
		}
		return r.sc.WithPK(rec, pk), nil
	case r.desc.AutoPK():
		var res sql.Result
		if err := r.drv.Exec(ctx, r.stmts.Insert, args, &res); err != nil {
			return zero, r.fail("create", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return zero, r.fail("create", err)
		}
		return r.sc.WithPK(rec, r.sc.FromInsertID(id)), nil
	default:
		// Natural key on MySQL: the caller supplied the key, nothing to
		// read back.
		if err := r.drv.Exec(ctx, r.stmts.Insert, args, nil); err != nil {
			return zero, r.fail("create", err)
		}
		return rec, nil
	}
}

// Get returns the record with the given primary key, or nil when no row
// matches. Absence is not an error.
func (r *Repository[T, K]) Get(ctx context.Context, pk K) (*T, error) {
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, r.stmts.ByPK, []any{pk}, rows); err != nil {
		return nil, r.fail("read", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, r.fail("read", err)
		}
		return nil, nil
	}
	rec, err := r.sc.ScanRow(rows.Scan)
	if err != nil {
		return nil, r.fail("read", err)
	}
	return &rec, nil
}

// Update writes every non-key column of the record, filtered on its
// primary key, and returns the record as passed in. Columns the database
// recomputes (update timestamps, defaults) are not re-read; callers that
// need them should Get the record again. A key matching no row is not
// reported as an error, mirroring Delete on a missing key.
func (r *Repository[T, K]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	args, err := sql.UpdateArgs(r.desc, r.sc.Values(rec))
	if err != nil {
		return zero, err
	}
	if err := r.drv.Exec(ctx, r.stmts.Update, args, nil); err != nil {
		return zero, r.fail("update", err)
	}
	return rec, nil
}

// Delete removes the row with the given primary key and returns the
// number of rows affected (0 or 1). Deleting a missing key is not an
// error. On descriptors with a soft-delete column the row is marked
// deleted instead of removed, with the same affected-count semantics.
func (r *Repository[T, K]) Delete(ctx context.Context, pk K) (int64, error) {
	var res sql.Result
	if err := r.drv.Exec(ctx, r.stmts.Delete, []any{pk}, &res); err != nil {
		return 0, r.fail("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.fail("delete", err)
	}
	return n, nil
}

// All returns every (non-soft-deleted) row, eagerly materialized. Row
// order is whatever the backend returns; no ORDER BY is issued. An empty
// table yields an empty slice.
func (r *Repository[T, K]) All(ctx context.Context) ([]T, error) {
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, r.stmts.All, []any{}, rows); err != nil {
		return nil, r.fail("all", err)
	}
	defer rows.Close()
	recs := make([]T, 0)
	for rows.Next() {
		rec, err := r.sc.ScanRow(rows.Scan)
		if err != nil {
			return nil, r.fail("all", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("all", err)
	}
	return recs, nil
}

// Statements returns the rendered statements of the repository.
// Useful for logging and tests.
func (r *Repository[T, K]) Statements() *sql.Statements { return r.stmts }

func (r *Repository[T, K]) fail(op string, err error) error {
	return &Error{Table: r.desc.Table(), Op: op, Err: err}
}

// scanPK reads the single-column RETURNING result of an insert.
func scanPK[K comparable](rows *sql.Rows) (K, error) {
	defer rows.Close()
	var pk K
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return pk, err
		}
		return pk, errors.New("no rows returned for inserted key")
	}
	if err := rows.Scan(&pk); err != nil {
		return pk, err
	}
	return pk, rows.Close()
}
