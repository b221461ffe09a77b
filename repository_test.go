package crud_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crud"
	"github.com/syssam/crud/dialect"
	"github.com/syssam/crud/dialect/sql"
	"github.com/syssam/crud/schema"
)

type testUser struct {
	ID    int64
	Email string
	Age   int64
}

var testUserDescriptor = schema.MustDescriptor("TestUser", []schema.Column{
	{Name: "id", PrimaryKey: true, AutoIncrement: true},
	{Name: "email"},
	{Name: "age"},
}, schema.WithTable("users"))

type testUserSchema struct{}

func (testUserSchema) Descriptor() *schema.Descriptor { return testUserDescriptor }

func (testUserSchema) Values(rec testUser) []any {
	return []any{rec.ID, rec.Email, rec.Age}
}

func (testUserSchema) PK(rec testUser) int64 { return rec.ID }

func (testUserSchema) WithPK(rec testUser, pk int64) testUser {
	rec.ID = pk
	return rec
}

func (testUserSchema) FromInsertID(id int64) int64 { return id }

func (testUserSchema) ScanRow(scan func(dest ...any) error) (testUser, error) {
	var rec testUser
	if err := scan(&rec.ID, &rec.Email, &rec.Age); err != nil {
		return testUser{}, err
	}
	return rec, nil
}

type testAccount struct {
	Code string
	Name string
}

var testAccountDescriptor = schema.MustDescriptor("TestAccount", []schema.Column{
	{Name: "code", PrimaryKey: true},
	{Name: "name"},
}, schema.WithTable("accounts"))

type testAccountSchema struct{}

func (testAccountSchema) Descriptor() *schema.Descriptor { return testAccountDescriptor }

func (testAccountSchema) Values(rec testAccount) []any { return []any{rec.Code, rec.Name} }

func (testAccountSchema) PK(rec testAccount) string { return rec.Code }

func (testAccountSchema) WithPK(rec testAccount, pk string) testAccount {
	rec.Code = pk
	return rec
}

func (testAccountSchema) FromInsertID(id int64) string {
	panic("testAccount: primary key is not database-generated")
}

func (testAccountSchema) ScanRow(scan func(dest ...any) error) (testAccount, error) {
	var rec testAccount
	if err := scan(&rec.Code, &rec.Name); err != nil {
		return testAccount{}, err
	}
	return rec, nil
}

func mockRepo[T any, K comparable](t *testing.T, dialectName string, sc crud.Schema[T, K]) (*crud.Repository[T, K], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo, err := crud.NewRepository[T, K](sql.OpenDB(dialectName, db), sc)
	require.NoError(t, err)
	return repo, mock
}

func TestNewRepositoryUnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	_, err = crud.NewRepository[testUser, int64](sql.OpenDB("oracle", db), testUserSchema{})
	require.ErrorContains(t, err, "unsupported dialect")
}

func TestCreateLastInsertID(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectExec("INSERT INTO users (email, age) VALUES (?, ?)").
		WithArgs("a@example.com", int64(30)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	u, err := repo.Create(context.Background(), testUser{Email: "a@example.com", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.Equal(t, "a@example.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturning(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.Postgres, testUserSchema{})
	mock.ExpectQuery("INSERT INTO users (email, age) VALUES ($1, $2) RETURNING id").
		WithArgs("a@example.com", int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	u, err := repo.Create(context.Background(), testUser{Email: "a@example.com", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNaturalKey(t *testing.T) {
	repo, mock := mockRepo[testAccount, string](t, dialect.MySQL, testAccountSchema{})
	mock.ExpectExec("INSERT INTO accounts (code, name) VALUES (?, ?)").
		WithArgs("acc-1", "savings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	a, err := repo.Create(context.Background(), testAccount{Code: "acc-1", Name: "savings"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", a.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateError(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	boom := errors.New("duplicate entry")
	mock.ExpectExec("INSERT INTO users (email, age) VALUES (?, ?)").
		WillReturnError(boom)

	_, err := repo.Create(context.Background(), testUser{Email: "a@example.com"})
	require.ErrorIs(t, err, boom)
	ce, ok := crud.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "users", ce.Table)
	assert.Equal(t, "create", ce.Op)
}

func TestGet(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectQuery("SELECT id, email, age FROM users WHERE id = ? LIMIT 1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "age"}).AddRow(5, "a@example.com", 30))

	u, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, testUser{ID: 5, Email: "a@example.com", Age: 30}, *u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAbsent(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectQuery("SELECT id, email, age FROM users WHERE id = ? LIMIT 1").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "age"}))

	u, err := repo.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBindsKeyLast(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectExec("UPDATE users SET email = ?, age = ? WHERE id = ?").
		WithArgs("b@example.com", int64(31), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := repo.Update(context.Background(), testUser{ID: 5, Email: "b@example.com", Age: 31})
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingKeyIsNotAnError(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectExec("UPDATE users SET email = ?, age = ? WHERE id = ?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), testUser{ID: 404, Email: "x@example.com"})
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	n, err = repo.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAll(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectQuery("SELECT id, email, age FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "age"}).
			AddRow(1, "a@example.com", 30).
			AddRow(2, "b@example.com", 31))

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b@example.com", all[1].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllEmpty(t *testing.T) {
	repo, mock := mockRepo[testUser, int64](t, dialect.MySQL, testUserSchema{})
	mock.ExpectQuery("SELECT id, email, age FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "age"}))

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestErrorString(t *testing.T) {
	err := &crud.Error{Table: "users", Op: "read", Err: errors.New("connection reset")}
	assert.Equal(t, "crud: read users: connection reset", err.Error())
	assert.Equal(t, "connection reset", errors.Unwrap(err).Error())
}
