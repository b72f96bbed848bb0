package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"peako/cache"
	"peako/core/soundcloud"
	"peako/logger"
)

// AnalyzeSoundcloudHandler 分析一个 SoundCloud 链接并返回曲目元数据。
// 结果缓存30分钟，缓存故障时直接走实时提取。
func (h *APIHandler) AnalyzeSoundcloudHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "SoundCloud URL is required")
		return
	}

	ctx := r.Context()

	// 缓存命中直接返回，缓存错误不阻塞提取
	if cached, err := cache.GetTrackMetadata(ctx, req.URL); err == nil && cached != nil {
		logger.Info("SoundCloud元数据缓存命中", logger.String("url", req.URL))
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"metadata": cached,
		})
		return
	}

	metadata, err := h.extractor.Extract(ctx, req.URL)
	if err != nil {
		var fetchErr *soundcloud.FetchError
		switch {
		case errors.Is(err, soundcloud.ErrInvalidURL):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &fetchErr):
			logger.Warn("抓取SoundCloud页面失败",
				logger.String("url", req.URL),
				logger.Int("status", fetchErr.Status))
			respondError(w, http.StatusBadRequest, fetchErr.Error())
		default:
			logger.Error("SoundCloud元数据提取失败",
				logger.String("url", req.URL),
				logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to extract metadata from this URL")
		}
		return
	}

	if err := cache.SetTrackMetadata(ctx, req.URL, metadata); err != nil {
		logger.Warn("写入元数据缓存失败", logger.ErrorField(err))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"metadata": metadata,
	})
}
