package repository

import (
	"errors"
	"fmt"

	"peako/db"
	"peako/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaRepository 媒体库记录的数据操作
type MediaRepository struct {
	DB *gorm.DB
}

// NewMediaRepository 创建媒体仓库，使用全局GORM连接
func NewMediaRepository() *MediaRepository {
	return &MediaRepository{DB: db.GormDB}
}

// NewMediaRepositoryWithDB 使用指定连接创建媒体仓库，测试用
func NewMediaRepositoryWithDB(gdb *gorm.DB) *MediaRepository {
	return &MediaRepository{DB: gdb}
}

// CreateMedia 保存一条媒体记录，ID为空时自动生成
func (r *MediaRepository) CreateMedia(media *model.Media) error {
	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	if err := r.DB.Create(media).Error; err != nil {
		return fmt.Errorf("failed to create media record: %w", err)
	}
	return nil
}

// GetMediaByID 按ID查询，未找到时返回 (nil, nil)
func (r *MediaRepository) GetMediaByID(id string) (*model.Media, error) {
	var media model.Media
	err := r.DB.First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get media by ID %s: %w", id, err)
	}
	return &media, nil
}

// ListMedia 按分类和目录过滤，新的在前
func (r *MediaRepository) ListMedia(category model.MediaCategory, folder string) ([]model.Media, error) {
	query := r.DB.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if folder != "" {
		query = query.Where("folder = ?", folder)
	}

	var items []model.Media
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return items, nil
}

// DeleteMedia 删除一条媒体记录
func (r *MediaRepository) DeleteMedia(id string) error {
	if err := r.DB.Delete(&model.Media{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete media record %s: %w", id, err)
	}
	return nil
}
