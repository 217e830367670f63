package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vidshare/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "should open sqlite test db")
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Video{}), "should migrate schema")
	return db
}

func TestVideoRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewVideoRepository(db)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, repo.Create(&model.Video{
			Title:     title,
			Filename:  title + ".mp4",
			UserID:    1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	videos, err := repo.ListNewestFirst()
	require.NoError(t, err)
	require.Len(t, videos, 3)
	require.Equal(t, "newest", videos[0].Title)
	require.Equal(t, "middle", videos[1].Title)
	require.Equal(t, "oldest", videos[2].Title)
}

func TestVideoRepository_GetByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewVideoRepository(db)

	created := &model.Video{Title: "clip", Filename: "clip.mp4", UserID: 7}
	require.NoError(t, repo.Create(created))

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "clip", got.Title)
		require.EqualValues(t, 7, got.UserID)
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		got, err := repo.GetByID(created.ID + 100)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestVideoRepository_IncrementViews(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewVideoRepository(db)

	video := &model.Video{Title: "popular", Filename: "popular.mp4", UserID: 1}
	require.NoError(t, repo.Create(video))

	require.NoError(t, repo.IncrementViews(video.ID))
	require.NoError(t, repo.IncrementViews(video.ID))

	got, err := repo.GetByID(video.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.Views)
}

func TestUserRepository(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&model.User{Username: "eve", PasswordHash: "hash"}))

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername("eve")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("unknown username returns nil", func(t *testing.T) {
		got, err := repo.GetByUsername("mallory")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("duplicate username violates unique index", func(t *testing.T) {
		err := repo.Create(&model.User{Username: "eve", PasswordHash: "other"})
		require.Error(t, err)
	})
}
