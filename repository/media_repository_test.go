package repository

import (
	"path/filepath"
	"testing"
	"time"

	"peako/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupGormDB 创建临时SQLite数据库并迁移模型
func setupGormDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.sqlite3")
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(&model.Media{}, &model.AboutSection{}))
	return gdb
}

func testMedia(key string) *model.Media {
	return &model.Media{
		Filename:     "press-photo-123-abc.jpg",
		OriginalName: "Press Photo.jpg",
		URL:          "https://cdn.example.com/peako/" + key,
		ObjectKey:    key,
		Size:         2048,
		MimeType:     "image/jpeg",
		Category:     model.CategoryImage,
		Folder:       "gallery",
	}
}

func TestCreateAndGetMedia(t *testing.T) {
	repo := NewMediaRepositoryWithDB(setupGormDB(t))

	media := testMedia("gallery/press-photo-123-abc.jpg")
	require.NoError(t, repo.CreateMedia(media))
	// ID为空时自动生成
	assert.NotEmpty(t, media.ID)

	got, err := repo.GetMediaByID(media.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, media.ObjectKey, got.ObjectKey)
	assert.Equal(t, model.CategoryImage, got.Category)
}

func TestGetMediaByIDNotFound(t *testing.T) {
	repo := NewMediaRepositoryWithDB(setupGormDB(t))

	got, err := repo.GetMediaByID("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateMediaDuplicateKey(t *testing.T) {
	repo := NewMediaRepositoryWithDB(setupGormDB(t))

	require.NoError(t, repo.CreateMedia(testMedia("gallery/same.jpg")))
	// object_key 有唯一索引
	assert.Error(t, repo.CreateMedia(testMedia("gallery/same.jpg")))
}

func TestListMediaFilters(t *testing.T) {
	repo := NewMediaRepositoryWithDB(setupGormDB(t))

	image := testMedia("gallery/a.jpg")
	require.NoError(t, repo.CreateMedia(image))

	audio := testMedia("audio/b.mp3")
	audio.Category = model.CategoryAudio
	audio.Folder = "audio"
	audio.MimeType = "audio/mpeg"
	require.NoError(t, repo.CreateMedia(audio))

	all, err := repo.ListMedia("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	images, err := repo.ListMedia(model.CategoryImage, "")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "gallery/a.jpg", images[0].ObjectKey)

	inFolder, err := repo.ListMedia("", "audio")
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	assert.Equal(t, model.CategoryAudio, inFolder[0].Category)

	none, err := repo.ListMedia(model.CategoryVideo, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListMediaNewestFirst(t *testing.T) {
	repo := NewMediaRepositoryWithDB(setupGormDB(t))

	older := testMedia("gallery/older.jpg")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.CreateMedia(older))

	newer := testMedia("gallery/newer.jpg")
	newer.CreatedAt = time.Now()
	require.NoError(t, repo.CreateMedia(newer))

	all, err := repo.ListMedia("", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "gallery/newer.jpg", all[0].ObjectKey)
}

func TestDeleteMedia(t *testing.T) {
	repo := NewMediaRepositoryWithDB(setupGormDB(t))

	media := testMedia("gallery/doomed.jpg")
	require.NoError(t, repo.CreateMedia(media))
	require.NoError(t, repo.DeleteMedia(media.ID))

	got, err := repo.GetMediaByID(media.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 删除不存在的记录不报错
	assert.NoError(t, repo.DeleteMedia("already-gone"))
}
