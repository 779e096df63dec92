package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultkeep/vaultkeep/internal/common"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	user := &User{Username: "JohnDoe", Salt: []byte{1}, MasterKey: []byte{2}}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("JohnDoe", []byte{1}, []byte{2}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))

	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := repo.Create(context.Background(), &User{Username: "JohnDoe"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresRepository_GetByUsername(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "salt", "master_key", "created_at"}).
		AddRow(int64(7), "JohnDoe", []byte{1}, []byte{2}, time.Now())

	mock.ExpectQuery("SELECT id, username, salt, master_key, created_at FROM users").
		WithArgs("JohnDoe").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "JohnDoe")
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe", user.Username)
	assert.Equal(t, []byte{2}, user.MasterKey)
}

func TestPostgresRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, username, salt, master_key, created_at FROM users").
		WithArgs("Ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "Ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_ExistsByUsername(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("JohnDoe").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "JohnDoe")
	require.NoError(t, err)
	assert.True(t, exists)
}
