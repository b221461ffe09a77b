package sql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crud/dialect"
)

func TestDriverDialect(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{dialect.MySQL, dialect.MySQL},
		{dialect.Postgres, dialect.Postgres},
		{dialect.SQLite, dialect.SQLite},
		{"mysql-tracing", dialect.MySQL},
		{"sqlite3", dialect.SQLite},
	}
	for _, tt := range tests {
		drv := NewDriver(tt.name, Conn{})
		assert.Equal(t, tt.want, drv.Dialect())
	}
}

func TestDriverExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.MySQL, db)
	defer drv.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@example.com").
		WillReturnResult(sqlmock.NewResult(3, 1))
	var res Result
	err = drv.Exec(context.Background(), "INSERT INTO users (email) VALUES (?)", []any{"a@example.com"}, &res)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverExecNilResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.MySQL, db)
	defer drv.Close()

	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	err = drv.Exec(context.Background(), "DELETE FROM users WHERE id = ?", []any{1}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverExecInvalidTypes(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.MySQL, db)
	defer drv.Close()

	err = drv.Exec(context.Background(), "DELETE FROM users", "not-a-slice", nil)
	require.ErrorContains(t, err, "expect []any for args")
	var s string
	err = drv.Exec(context.Background(), "DELETE FROM users", []any{}, &s)
	require.ErrorContains(t, err, "expect *sql.Result")
}

func TestDriverQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)
	defer drv.Close()

	mock.ExpectQuery("SELECT id, email FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "a@example.com"))
	rows := &Rows{}
	err = drv.Query(context.Background(), "SELECT id, email FROM users", []any{}, rows)
	require.NoError(t, err)
	require.True(t, rows.Next())
	var (
		id    int64
		email string
	)
	require.NoError(t, rows.Scan(&id, &email))
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "a@example.com", email)
	require.NoError(t, rows.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverQueryInvalidType(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)
	defer drv.Close()

	err = drv.Query(context.Background(), "SELECT 1", []any{}, nil)
	require.ErrorContains(t, err, "expect *sql.Rows")
}

func TestDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.MySQL, db)
	defer drv.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "UPDATE users SET email = ? WHERE id = ?", []any{"b@example.com", 1}, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectRollback()
	tx, err = drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.MySQL, db)
	defer drv.Close()

	boom := errors.New("boom")
	mock.ExpectQuery("SELECT").WillReturnError(boom)
	rows := &Rows{}
	err = drv.Query(context.Background(), "SELECT 1", []any{}, rows)
	require.ErrorIs(t, err, boom)
}
