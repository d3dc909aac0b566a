package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(users ...*models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "username", "hashed_password", "created_at", "updated_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.HashedPassword, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func TestUserRepositoryGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)
		now := time.Now()

		mock.ExpectQuery(`SELECT .* FROM "users" WHERE "users"\."id" = \$1`).
			WithArgs(1, 1).
			WillReturnRows(userRows(
				&models.User{ID: 1, Username: "alice", HashedPassword: "hash", CreatedAt: now, UpdatedAt: now},
			))

		user, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Absent row carries a NOT_FOUND code", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(userRows())

		user, err := repo.GetByID(context.Background(), 99)
		assert.Nil(t, user)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestUserRepositoryGetByUsername(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)
		now := time.Now()

		mock.ExpectQuery(`SELECT .* FROM "users" WHERE username = \$1`).
			WithArgs("alice", 1).
			WillReturnRows(userRows(
				&models.User{ID: 1, Username: "alice", HashedPassword: "hash", CreatedAt: now, UpdatedAt: now},
			))

		user, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("Absent username is nil without error", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)

		mock.ExpectQuery(`SELECT .* FROM "users" WHERE username = \$1`).
			WithArgs("nobody", 1).
			WillReturnRows(userRows())

		user, err := repo.GetByUsername(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepositoryCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectCommit()

		user := &models.User{Username: "carol", HashedPassword: "hash"}
		err := repo.Create(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("Unique violation becomes a conflict", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_username" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.User{Username: "alice", HashedPassword: "hash"})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
	assert.True(t, isUniqueConstraintError(errors.New("duplicate key value violates unique constraint")))
	assert.True(t, isUniqueConstraintError(errors.New("SQLSTATE 23505")))
}
