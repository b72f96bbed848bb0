package media

import (
	"context"

	"peako/logger"
	"peako/model"
	"peako/storage"
)

// UploadResult 一次上传的结果，直接序列化进API响应。
type UploadResult struct {
	Success      bool   `json:"success"`
	URL          string `json:"url,omitempty"`
	Key          string `json:"key,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Ingestor 串联校验、图片优化和对象存储上传。
// 所有失败都通过 UploadResult 上报，不会panic出边界。
type Ingestor struct {
	store storage.Store
}

// NewIngestor 创建上传协调器
func NewIngestor(store storage.Store) *Ingestor {
	return &Ingestor{store: store}
}

// Ingest 处理一次上传：先校验，再按分类处理。
// 图片走优化管线并额外上传缩略图（缩略图失败不影响主图），
// 其他分类原样上传。
func (i *Ingestor) Ingest(ctx context.Context, data []byte, originalName, contentType string, category model.MediaCategory, folder string) UploadResult {
	// 任何网络调用之前先做校验
	if err := ValidateUpload(category, contentType, int64(len(data))); err != nil {
		return UploadResult{Success: false, Error: err.Error()}
	}

	key := NewObjectKey(originalName, folder)

	if category == model.CategoryImage {
		return i.ingestImage(ctx, data, key)
	}

	url, err := i.store.Put(ctx, key, data, contentType)
	if err != nil {
		logger.Error("上传文件失败",
			logger.String("key", key),
			logger.ErrorField(err))
		return UploadResult{Success: false, Error: "upload failed"}
	}

	return UploadResult{Success: true, URL: url, Key: key}
}

// ingestImage 图片路径：优化 -> 上传主图 -> 上传缩略图
func (i *Ingestor) ingestImage(ctx context.Context, data []byte, key string) UploadResult {
	result, err := Optimize(data, DefaultOptimizeOptions())
	if err != nil {
		logger.Error("图片优化失败", logger.ErrorField(err))
		return UploadResult{Success: false, Error: "image processing failed"}
	}

	// 主图统一以JPEG存储
	url, err := i.store.Put(ctx, key, result.Optimized, "image/jpeg")
	if err != nil {
		logger.Error("上传主图失败",
			logger.String("key", key),
			logger.ErrorField(err))
		return UploadResult{Success: false, Error: "upload failed"}
	}

	// 缩略图上传失败可以容忍，响应里只是没有 thumbnailUrl
	thumbnailURL := ""
	if result.Thumbnail != nil {
		thumbKey := DeriveThumbnailKey(key)
		if turl, err := i.store.Put(ctx, thumbKey, result.Thumbnail, "image/jpeg"); err != nil {
			logger.Warn("上传缩略图失败",
				logger.String("key", thumbKey),
				logger.ErrorField(err))
		} else {
			thumbnailURL = turl
		}
	}

	return UploadResult{Success: true, URL: url, Key: key, ThumbnailURL: thumbnailURL}
}

// Remove 删除主对象，有缩略图时一并删除。
// 缩略图删除失败只记录日志；返回值表示主对象是否删除成功。
func (i *Ingestor) Remove(ctx context.Context, key string, hasThumbnail bool) bool {
	ok := i.store.Delete(ctx, key)

	if hasThumbnail {
		thumbKey := DeriveThumbnailKey(key)
		if !i.store.Delete(ctx, thumbKey) {
			logger.Warn("删除缩略图失败", logger.String("key", thumbKey))
		}
	}

	return ok
}
