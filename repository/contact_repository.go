package repository

import (
	"database/sql"
	"fmt"
	"time"

	"peako/db"
	"peako/model"
)

// ContactRepository defines the interface for contact message operations.
type ContactRepository interface {
	CreateMessage(msg *model.ContactMessage) (int64, error)
	GetAllMessages() ([]*model.ContactMessage, error)
	UpdateMessageStatus(id int64, status model.MessageStatus) error
}

// mysqlContactRepository implements ContactRepository for MySQL.
type mysqlContactRepository struct {
	DB *sql.DB
}

// NewMySQLContactRepository creates a new instance of mysqlContactRepository.
func NewMySQLContactRepository() ContactRepository {
	return &mysqlContactRepository{DB: db.DB}
}

// CreateMessage stores a submitted contact form message.
func (r *mysqlContactRepository) CreateMessage(msg *model.ContactMessage) (int64, error) {
	query := `INSERT INTO contact_messages (reference, name, email, phone, subject, message,
		type, event_date, event_location, budget, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var eventDate interface{}
	if msg.EventDate != nil {
		eventDate = *msg.EventDate
	}

	res, err := r.DB.Exec(query, msg.Reference, msg.Name, msg.Email, msg.Phone, msg.Subject,
		msg.Message, msg.Type, eventDate, msg.EventLocation, msg.Budget, msg.Status, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateMessage: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateMessage: %w", err)
	}
	return id, nil
}

// GetAllMessages retrieves all contact messages, newest first.
func (r *mysqlContactRepository) GetAllMessages() ([]*model.ContactMessage, error) {
	query := `SELECT id, reference, name, email, phone, subject, message, type, event_date,
		event_location, budget, status, created_at FROM contact_messages ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*model.ContactMessage, 0)
	for rows.Next() {
		msg := &model.ContactMessage{}
		var eventDate sql.NullTime
		err := rows.Scan(&msg.ID, &msg.Reference, &msg.Name, &msg.Email, &msg.Phone,
			&msg.Subject, &msg.Message, &msg.Type, &eventDate, &msg.EventLocation,
			&msg.Budget, &msg.Status, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		if eventDate.Valid {
			msg.EventDate = &eventDate.Time
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllMessages: %w", err)
	}
	return messages, nil
}

// UpdateMessageStatus updates the processing status of a message.
func (r *mysqlContactRepository) UpdateMessageStatus(id int64, status model.MessageStatus) error {
	res, err := r.DB.Exec(`UPDATE contact_messages SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update message status for ID %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
