package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return gormDB, mock
}

func postRows(posts ...*models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "body", "tags", "user_id", "created_at", "updated_at"})
	for _, p := range posts {
		tags, _ := p.Tags.Value()
		rows.AddRow(p.ID, p.Title, p.Body, tags, p.UserID, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func TestPostRepositoryList(t *testing.T) {
	now := time.Now()

	t.Run("Unfiltered page", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewPostRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(`SELECT .* FROM "posts" ORDER BY posts\.id DESC LIMIT \$1`).
			WithArgs(10).
			WillReturnRows(postRows(
				&models.Post{ID: 12, Title: "Newest", Tags: models.Tags{"go"}, UserID: 1, CreatedAt: now, UpdatedAt: now},
				&models.Post{ID: 11, Title: "Older", Tags: models.Tags{}, UserID: 2, CreatedAt: now, UpdatedAt: now},
			))
		mock.ExpectQuery(`SELECT .* FROM "users" WHERE "users"\."id" IN \(\$1,\$2\)`).
			WithArgs(1, 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
				AddRow(1, "alice").AddRow(2, "bob"))

		posts, total, err := repo.List(context.Background(), PostFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, posts, 2)
		assert.Equal(t, uint(12), posts[0].ID)
		assert.Equal(t, "alice", posts[0].User.Username)
		assert.Equal(t, models.Tags{"go"}, posts[0].Tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Tag filter uses jsonb containment", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewPostRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE posts\.tags @> \$1`).
			WithArgs(`["go"]`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .* FROM "posts" WHERE posts\.tags @> \$1 ORDER BY posts\.id DESC LIMIT \$2`).
			WithArgs(`["go"]`, 10).
			WillReturnRows(postRows(
				&models.Post{ID: 3, Title: "Tagged", Tags: models.Tags{"go", "web"}, UserID: 1, CreatedAt: now, UpdatedAt: now},
			))
		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

		posts, total, err := repo.List(context.Background(), PostFilter{Tag: "go"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, posts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Username filter joins users", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewPostRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" JOIN users ON users\.id = posts\.user_id WHERE users\.username = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT .* FROM "posts" JOIN users ON users\.id = posts\.user_id WHERE users\.username = \$1`).
			WithArgs("alice", 10).
			WillReturnRows(postRows())

		posts, total, err := repo.List(context.Background(), PostFilter{Username: "alice"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Offset beyond the data is an empty page", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewPostRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		mock.ExpectQuery(`SELECT .* FROM "posts" ORDER BY posts\.id DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 90).
			WillReturnRows(postRows())

		posts, total, err := repo.List(context.Background(), PostFilter{}, 10, 90)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Empty(t, posts)
	})
}

func TestPostRepositoryGetByID(t *testing.T) {
	t.Run("Found with owner preloaded", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewPostRepository(gormDB)
		now := time.Now()

		mock.ExpectQuery(`SELECT .* FROM "posts" WHERE "posts"\."id" = \$1`).
			WithArgs(7, 1).
			WillReturnRows(postRows(
				&models.Post{ID: 7, Title: "Found", Body: "content", Tags: models.Tags{"a"}, UserID: 2, CreatedAt: now, UpdatedAt: now},
			))
		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))

		post, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Found", post.Title)
		assert.Equal(t, "bob", post.User.Username)
	})

	t.Run("Absent row", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewPostRepository(gormDB)

		mock.ExpectQuery(`SELECT .* FROM "posts"`).
			WillReturnRows(postRows())

		post, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, post)
	})
}

func TestPostRepositoryCreate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewPostRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	post := &models.Post{Title: "New", Body: "content", Tags: models.Tags{"x"}, UserID: 1}
	err := repo.Create(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryUpdate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewPostRepository(gormDB)

	// Only the posts row may be written, even when the owner association is
	// loaded; an upsert against users would fail the ordered expectations.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	post := &models.Post{
		ID:     7,
		Title:  "Changed",
		Body:   "content",
		Tags:   models.Tags{},
		UserID: 1,
		User:   models.User{ID: 1, Username: "alice"},
	}
	err := repo.Update(context.Background(), post)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryDelete(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewPostRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "posts" WHERE`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
