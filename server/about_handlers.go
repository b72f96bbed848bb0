package server

import (
	"encoding/json"
	"net/http"

	"peako/logger"
	"peako/model"

	"github.com/gorilla/mux"
)

// aboutRequest 创建/更新介绍区块的请求体
type aboutRequest struct {
	Section string `json:"section"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
	Visible *bool  `json:"visible"`
}

// GetAboutHandler 返回介绍区块列表。公开访问只含可见区块，
// 管理端带 ?all=true 返回全部。
func (h *APIHandler) GetAboutHandler(w http.ResponseWriter, r *http.Request) {
	// 隐藏区块只对管理端可见
	visibleOnly := !(r.URL.Query().Get("all") == "true" && requestAuthenticated(r))

	sections, err := h.aboutRepo.ListSections(visibleOnly)
	if err != nil {
		logger.Error("查询介绍区块失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch about sections")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"sections": sections,
	})
}

// UpsertAboutHandler 按区块键创建或更新介绍区块
func (h *APIHandler) UpsertAboutHandler(w http.ResponseWriter, r *http.Request) {
	var req aboutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Section == "" {
		respondError(w, http.StatusBadRequest, "Section key is required")
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	section := &model.AboutSection{
		Section: req.Section,
		Title:   req.Title,
		Content: req.Content,
		Order:   req.Order,
		Visible: visible,
	}

	if err := h.aboutRepo.UpsertSection(section); err != nil {
		logger.Error("保存介绍区块失败",
			logger.String("section", req.Section),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to save about section")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"section": section,
	})
}

// DeleteAboutHandler 删除一个介绍区块
func (h *APIHandler) DeleteAboutHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.aboutRepo.GetSectionByID(id)
	if err != nil {
		logger.Error("查询介绍区块失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch about section")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Section not found")
		return
	}

	if err := h.aboutRepo.DeleteSection(id); err != nil {
		logger.Error("删除介绍区块失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete about section")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
