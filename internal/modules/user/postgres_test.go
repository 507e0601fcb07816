package user

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, Repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewPostgresRepository(db)
}

func TestPostgresRepository_Create(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash)`)).
		WithArgs("B", "a@b.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(2, now, now))

	u := &User{Name: "B", Email: "a@b.com", PasswordHash: "hashed"}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &User{Name: "B", Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository_FindByEmail(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1 ORDER BY id`)).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "B", "a@b.com", "hashed", now, now).
			AddRow(5, "B2", "a@b.com", "hashed2", now, now))

	users, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].ID)
	assert.Equal(t, "hashed", users[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FindByEmail_NoRows(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1`)).
		WithArgs("ghost@b.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.FindByEmail(context.Background(), "ghost@b.com")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestPostgresRepository_FindByEmail_QueryError(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1`)).
		WillReturnError(errors.New("DB down"))

	_, err := repo.FindByEmail(context.Background(), "a@b.com")
	assert.EqualError(t, err, "DB down")
}

func TestPostgresRepository_List(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "A", "a@a.com", "h", now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "A", users[0].Name)
}

func TestPostgresRepository_Update(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("A", "a@a.com", "h", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	u := &User{ID: 1, Name: "A", Email: "a@a.com", PasswordHash: "h"}
	require.NoError(t, repo.Update(context.Background(), u))
	assert.Equal(t, now, u.UpdatedAt)
}

func TestPostgresRepository_Update_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), &User{ID: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository_Delete(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
