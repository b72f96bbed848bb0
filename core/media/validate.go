package media

import (
	"fmt"

	"peako/model"
)

const (
	// maxImageSize 图片上传上限
	maxImageSize = 10 << 20 // 10MB
	// maxFileSize 其他分类的上传上限
	maxFileSize = 50 << 20 // 50MB
)

// allowedTypes 每个分类允许的MIME类型
var allowedTypes = map[model.MediaCategory][]string{
	model.CategoryImage:    {"image/jpeg", "image/png", "image/webp", "image/gif"},
	model.CategoryVideo:    {"video/mp4", "video/webm", "video/mov", "video/avi", "video/quicktime"},
	model.CategoryAudio:    {"audio/mpeg", "audio/wav", "audio/mp3"},
	model.CategoryDocument: {"application/pdf", "text/plain"},
}

// ValidationError 上传校验失败。Constraint 标明违反的是 size 还是 type。
type ValidationError struct {
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUpload 在任何网络调用之前校验文件大小和类型。
func ValidateUpload(category model.MediaCategory, contentType string, size int64) error {
	limit := int64(maxFileSize)
	if category == model.CategoryImage {
		limit = maxImageSize
	}
	if size > limit {
		return &ValidationError{
			Constraint: "size",
			Message:    fmt.Sprintf("file size too large (max %dMB)", limit>>20),
		}
	}

	types, ok := allowedTypes[category]
	if !ok {
		return &ValidationError{
			Constraint: "type",
			Message:    fmt.Sprintf("unknown category: %s", category),
		}
	}
	for _, t := range types {
		if contentType == t {
			return nil
		}
	}
	return &ValidationError{
		Constraint: "type",
		Message:    fmt.Sprintf("invalid file type %s for category %s", contentType, category),
	}
}
