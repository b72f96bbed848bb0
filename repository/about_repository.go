package repository

import (
	"errors"
	"fmt"
	"time"

	"peako/db"
	"peako/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AboutRepository 关于页面区块的数据操作
type AboutRepository struct {
	DB *gorm.DB
}

// NewAboutRepository 创建关于页仓库，使用全局GORM连接
func NewAboutRepository() *AboutRepository {
	return &AboutRepository{DB: db.GormDB}
}

// NewAboutRepositoryWithDB 使用指定连接创建关于页仓库，测试用
func NewAboutRepositoryWithDB(gdb *gorm.DB) *AboutRepository {
	return &AboutRepository{DB: gdb}
}

// ListSections 返回所有区块，按显示顺序排列。
// visibleOnly 为 true 时只返回前台可见的区块。
func (r *AboutRepository) ListSections(visibleOnly bool) ([]model.AboutSection, error) {
	query := r.DB.Order("display_order ASC")
	if visibleOnly {
		query = query.Where("visible = ?", true)
	}

	var sections []model.AboutSection
	if err := query.Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("failed to list about sections: %w", err)
	}
	return sections, nil
}

// GetSectionByID 按ID查询，未找到时返回 (nil, nil)
func (r *AboutRepository) GetSectionByID(id string) (*model.AboutSection, error) {
	var section model.AboutSection
	err := r.DB.First(&section, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get about section %s: %w", id, err)
	}
	return &section, nil
}

// UpsertSection 按区块键写入：存在则更新内容，不存在则创建。
func (r *AboutRepository) UpsertSection(section *model.AboutSection) error {
	var existing model.AboutSection
	err := r.DB.First(&existing, "section = ?", section.Section).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up about section %s: %w", section.Section, err)
		}
		if section.ID == "" {
			section.ID = uuid.NewString()
		}
		section.UpdatedAt = time.Now()
		if err := r.DB.Create(section).Error; err != nil {
			return fmt.Errorf("failed to create about section %s: %w", section.Section, err)
		}
		return nil
	}

	updates := map[string]interface{}{
		"title":         section.Title,
		"content":       section.Content,
		"visible":       section.Visible,
		"display_order": section.Order,
		"updated_at":    time.Now(),
	}
	if err := r.DB.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update about section %s: %w", section.Section, err)
	}
	section.ID = existing.ID
	return nil
}

// DeleteSection 删除一个区块
func (r *AboutRepository) DeleteSection(id string) error {
	if err := r.DB.Delete(&model.AboutSection{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete about section %s: %w", id, err)
	}
	return nil
}
