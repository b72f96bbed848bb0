package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"peako/logger"
	"peako/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactRequest 公开联系表单的请求体
type contactRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Type          string `json:"type"`
	EventDate     string `json:"eventDate"`
	EventLocation string `json:"eventLocation"`
	Budget        string `json:"budget"`
}

func (req *contactRequest) validate() string {
	if len(req.Name) < 2 {
		return "Name must be at least 2 characters"
	}
	if !emailPattern.MatchString(req.Email) {
		return "Invalid email address"
	}
	if len(req.Subject) < 3 {
		return "Subject must be at least 3 characters"
	}
	if len(req.Message) < 10 {
		return "Message must be at least 10 characters"
	}
	if req.Type != "" && !model.ValidContactType(req.Type) {
		return "Invalid contact type"
	}
	return ""
}

// SubmitContactHandler 接收公开的联系/预约表单
func (h *APIHandler) SubmitContactHandler(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errMsg := req.validate(); errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	contactType := req.Type
	if contactType == "" {
		contactType = string(model.ContactGeneral)
	}

	msg := &model.ContactMessage{
		Reference:     uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       req.Subject,
		Message:       req.Message,
		Type:          model.ContactType(contactType),
		EventLocation: req.EventLocation,
		Budget:        req.Budget,
		Status:        model.MessageUnread,
	}

	if req.EventDate != "" {
		eventDate, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid event date format")
			return
		}
		msg.EventDate = &eventDate
	}

	id, err := h.contactRepo.CreateMessage(msg)
	if err != nil {
		logger.Error("保存联系消息失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}
	msg.ID = id

	logger.Info("收到联系消息",
		logger.String("reference", msg.Reference),
		logger.String("type", string(msg.Type)))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"reference": msg.Reference,
	})
}

// GetContactMessagesHandler 返回全部联系消息（管理端）
func (h *APIHandler) GetContactMessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactRepo.GetAllMessages()
	if err != nil {
		logger.Error("查询联系消息失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

// UpdateContactStatusHandler 更新联系消息的处理状态
func (h *APIHandler) UpdateContactStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !model.ValidMessageStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Invalid message status")
		return
	}

	if err := h.contactRepo.UpdateMessageStatus(id, model.MessageStatus(req.Status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Message not found")
			return
		}
		logger.Error("更新消息状态失败", logger.Int64("messageId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update message status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
