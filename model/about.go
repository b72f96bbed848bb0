package model

import "time"

// AboutSection 关于页面的一个内容区块。
// Content 存储该区块的JSON文本，结构由前端区块类型决定，后端不解释。
type AboutSection struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Section   string    `json:"section" gorm:"size:64;uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"size:255"`
	Content   string    `json:"content" gorm:"type:text"`
	Visible   bool      `json:"visible" gorm:"default:true"`
	Order     int       `json:"order" gorm:"column:display_order;default:0"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (AboutSection) TableName() string {
	return "about_sections"
}
