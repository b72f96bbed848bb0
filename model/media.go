package model

import "time"

// MediaCategory 媒体分类
type MediaCategory string

const (
	CategoryImage    MediaCategory = "IMAGE"
	CategoryAudio    MediaCategory = "AUDIO"
	CategoryVideo    MediaCategory = "VIDEO"
	CategoryDocument MediaCategory = "DOCUMENT"
)

// CategoryFromForm 将表单里的小写分类转换为存储枚举，未知值按图片处理。
func CategoryFromForm(category string) MediaCategory {
	switch category {
	case "video":
		return CategoryVideo
	case "audio":
		return CategoryAudio
	case "document":
		return CategoryDocument
	default:
		return CategoryImage
	}
}

// Media 表示一个已上传到对象存储的文件记录。
// ObjectKey 是存储桶中的唯一路径，删除记录时凭它清理存储对象。
type Media struct {
	ID           string        `json:"id" gorm:"primaryKey;size:36"`
	Filename     string        `json:"filename" gorm:"size:255;not null"`
	OriginalName string        `json:"originalName" gorm:"size:255;not null"`
	URL          string        `json:"url" gorm:"size:512;not null"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty" gorm:"size:512"`
	ObjectKey    string        `json:"key" gorm:"column:object_key;size:512;uniqueIndex;not null"`
	Size         int64         `json:"size" gorm:"not null"`
	MimeType     string        `json:"mimeType" gorm:"size:100;not null"`
	Category     MediaCategory `json:"category" gorm:"size:16;not null;index"`
	Folder       string        `json:"folder,omitempty" gorm:"size:100;index"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// TableName 指定表名
func (Media) TableName() string {
	return "media"
}
