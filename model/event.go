package model

import "time"

// EventStatus 演出状态
type EventStatus string

const (
	EventConfirmed EventStatus = "CONFIRMED"
	EventPending   EventStatus = "PENDING"
	EventCancelled EventStatus = "CANCELLED"
	EventPostponed EventStatus = "POSTPONED"
)

// ValidEventStatus reports whether s is one of the known event statuses.
func ValidEventStatus(s string) bool {
	switch EventStatus(s) {
	case EventConfirmed, EventPending, EventCancelled, EventPostponed:
		return true
	}
	return false
}

// Event represents a live show or booking on the events page.
type Event struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Venue       string      `json:"venue"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Date        time.Time   `json:"date"`
	Time        string      `json:"time,omitempty"`
	Description string      `json:"description,omitempty"`
	TicketLink  string      `json:"ticketLink,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	Status      EventStatus `json:"status"`
	Featured    bool        `json:"featured"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
