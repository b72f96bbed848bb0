package server

import (
	"io"
	"net/http"
	"path"
	"time"

	"peako/core/media"
	"peako/logger"
	"peako/model"
)

// maxUploadRequestSize 上传请求体上限，留一点表单开销的余量
const maxUploadRequestSize = 52 << 20

// UploadMediaHandler 处理媒体文件上传：
// 校验 -> (图片)优化 -> 上传对象存储 -> 写入媒体记录。
func (h *APIHandler) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.Info("开始处理上传请求",
		logger.String("remoteAddr", r.RemoteAddr),
		logger.Int64("contentLength", r.ContentLength))

	if r.ContentLength > maxUploadRequestSize {
		respondError(w, http.StatusRequestEntityTooLarge, "Request too large (max 50MB)")
		return
	}

	if err := r.ParseMultipartForm(maxUploadRequestSize); err != nil {
		logger.Error("解析表单失败", logger.ErrorField(err))
		respondError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			respondError(w, http.StatusBadRequest, "No file provided")
		} else {
			respondError(w, http.StatusBadRequest, "Failed to process uploaded file")
		}
		return
	}
	defer file.Close()

	categoryForm := r.FormValue("category")
	if categoryForm == "" {
		categoryForm = "image"
	}
	folder := r.FormValue("folder")
	if folder == "" {
		folder = categoryForm
	}
	category := model.CategoryFromForm(categoryForm)
	contentType := header.Header.Get("Content-Type")

	// 校验失败是调用方的问题，返回400；进入管线后的失败是500
	if err := media.ValidateUpload(category, contentType, header.Size); err != nil {
		logger.Warn("上传校验失败",
			logger.String("filename", header.Filename),
			logger.ErrorField(err))
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("读取上传文件失败", logger.ErrorField(err))
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result := h.ingestor.Ingest(r.Context(), data, header.Filename, contentType, category, folder)
	if !result.Success {
		respondError(w, http.StatusInternalServerError, result.Error)
		return
	}

	// 上传成功后写媒体记录。记录写失败时存储对象成为孤儿，
	// 按既有行为接受，不做自动回收。
	record := &model.Media{
		Filename:     path.Base(result.Key),
		OriginalName: header.Filename,
		URL:          result.URL,
		ThumbnailURL: result.ThumbnailURL,
		ObjectKey:    result.Key,
		Size:         header.Size,
		MimeType:     contentType,
		Category:     category,
		Folder:       folder,
	}
	if err := h.mediaRepo.CreateMedia(record); err != nil {
		logger.Error("写入媒体记录失败",
			logger.String("key", result.Key),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to save media record")
		return
	}

	logger.Info("上传处理完成",
		logger.String("key", result.Key),
		logger.String("category", string(category)),
		logger.Duration("elapsed", time.Since(start)))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"url":          result.URL,
		"thumbnailUrl": result.ThumbnailURL,
		"key":          result.Key,
		"filename":     header.Filename,
		"size":         header.Size,
		"type":         contentType,
		"id":           record.ID,
	})
}

// ListMediaHandler 返回媒体库记录，支持按分类和目录过滤
func (h *APIHandler) ListMediaHandler(w http.ResponseWriter, r *http.Request) {
	var category model.MediaCategory
	if c := r.URL.Query().Get("category"); c != "" {
		category = model.CategoryFromForm(c)
	}
	folder := r.URL.Query().Get("folder")

	items, err := h.mediaRepo.ListMedia(category, folder)
	if err != nil {
		logger.Error("查询媒体记录失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch media")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"media":   items,
	})
}

// DeleteMediaHandler 删除一条媒体记录及其存储对象。
// 存储清理是尽力而为：对象删除失败只记录日志，不阻塞数据库删除。
func (h *APIHandler) DeleteMediaHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Media ID required")
		return
	}

	record, err := h.mediaRepo.GetMediaByID(id)
	if err != nil {
		logger.Error("查询媒体记录失败", logger.String("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch media record")
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "Media not found")
		return
	}

	// 先清理存储对象（含缩略图），失败不阻塞
	if ok := h.ingestor.Remove(r.Context(), record.ObjectKey, record.ThumbnailURL != ""); !ok {
		logger.Warn("存储对象删除失败，继续删除数据库记录",
			logger.String("key", record.ObjectKey))
	}

	if err := h.mediaRepo.DeleteMedia(id); err != nil {
		logger.Error("删除媒体记录失败", logger.String("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete media record")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteObjectHandler 旧版删除入口：直接按存储键删除对象，不touch数据库。
func (h *APIHandler) DeleteObjectHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "File key required")
		return
	}

	if ok := h.ingestor.Remove(r.Context(), key, false); !ok {
		respondError(w, http.StatusInternalServerError, "Delete failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
