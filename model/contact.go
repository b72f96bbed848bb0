package model

import "time"

// ContactType 联系请求类型
type ContactType string

const (
	ContactGeneral       ContactType = "GENERAL"
	ContactBooking       ContactType = "BOOKING"
	ContactCollaboration ContactType = "COLLABORATION"
	ContactPress         ContactType = "PRESS"
	ContactOther         ContactType = "OTHER"
)

// ValidContactType reports whether t is one of the known contact types.
func ValidContactType(t string) bool {
	switch ContactType(t) {
	case ContactGeneral, ContactBooking, ContactCollaboration, ContactPress, ContactOther:
		return true
	}
	return false
}

// MessageStatus 消息处理状态
type MessageStatus string

const (
	MessageUnread   MessageStatus = "UNREAD"
	MessageRead     MessageStatus = "READ"
	MessageReplied  MessageStatus = "REPLIED"
	MessageArchived MessageStatus = "ARCHIVED"
)

// ValidMessageStatus reports whether s is one of the known message statuses.
func ValidMessageStatus(s string) bool {
	switch MessageStatus(s) {
	case MessageUnread, MessageRead, MessageReplied, MessageArchived:
		return true
	}
	return false
}

// ContactMessage represents a message submitted through the contact form.
// Reference is the public id echoed back to the sender.
type ContactMessage struct {
	ID            int64         `json:"id"`
	Reference     string        `json:"reference"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	Subject       string        `json:"subject"`
	Message       string        `json:"message"`
	Type          ContactType   `json:"type"`
	EventDate     *time.Time    `json:"eventDate,omitempty"`
	EventLocation string        `json:"eventLocation,omitempty"`
	Budget        string        `json:"budget,omitempty"`
	Status        MessageStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}
