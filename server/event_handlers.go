package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"peako/logger"
	"peako/model"

	"github.com/gorilla/mux"
)

// eventRequest 创建/更新演出的请求体
type eventRequest struct {
	Name        string `json:"name"`
	Venue       string `json:"venue"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	TicketLink  string `json:"ticketLink"`
	CoverImage  string `json:"coverImage"`
	Status      string `json:"status"`
	Featured    bool   `json:"featured"`
}

func (req *eventRequest) toEvent() (*model.Event, string) {
	if req.Name == "" || req.Venue == "" || req.City == "" || req.Country == "" || req.Date == "" {
		return nil, "Name, venue, city, country and date are required"
	}

	status := req.Status
	if status == "" {
		status = string(model.EventConfirmed)
	}
	if !model.ValidEventStatus(status) {
		return nil, "Invalid event status"
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.Date); err != nil {
			return nil, "Invalid date format"
		}
	}

	return &model.Event{
		Name:        req.Name,
		Venue:       req.Venue,
		City:        req.City,
		Country:     req.Country,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
		TicketLink:  req.TicketLink,
		CoverImage:  req.CoverImage,
		Status:      model.EventStatus(status),
		Featured:    req.Featured,
	}, ""
}

// GetEventsHandler 返回演出列表。默认只返回即将到来的已确认演出，
// 管理端带 ?all=true 返回全部（按日期倒序）。
func (h *APIHandler) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		events []*model.Event
		err    error
	)
	// 完整列表（含历史和未确认的演出）只对管理端开放
	if r.URL.Query().Get("all") == "true" && requestAuthenticated(r) {
		events, err = h.eventRepo.GetAllEvents()
	} else {
		events, err = h.eventRepo.GetUpcomingEvents()
	}
	if err != nil {
		logger.Error("查询演出列表失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
	})
}

// CreateEventHandler 创建一条演出记录
func (h *APIHandler) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, errMsg := req.toEvent()
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	id, err := h.eventRepo.CreateEvent(event)
	if err != nil {
		logger.Error("创建演出失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	event.ID = id

	logger.Info("演出创建成功",
		logger.Int64("eventId", id),
		logger.String("name", event.Name))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// UpdateEventHandler 更新一条演出记录
func (h *APIHandler) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	existing, err := h.eventRepo.GetEventByID(id)
	if err != nil {
		logger.Error("查询演出失败", logger.Int64("eventId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, errMsg := req.toEvent()
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	event.ID = id

	if err := h.eventRepo.UpdateEvent(event); err != nil {
		logger.Error("更新演出失败", logger.Int64("eventId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// DeleteEventHandler 删除一条演出记录
func (h *APIHandler) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	existing, err := h.eventRepo.GetEventByID(id)
	if err != nil {
		logger.Error("查询演出失败", logger.Int64("eventId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	if err := h.eventRepo.DeleteEvent(id); err != nil {
		logger.Error("删除演出失败", logger.Int64("eventId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
