package repository

import (
	"database/sql"
	"fmt"
	"time"

	"peako/db"
	"peako/model"
)

// EventRepository defines the interface for event data operations.
type EventRepository interface {
	CreateEvent(event *model.Event) (int64, error)
	GetEventByID(id int64) (*model.Event, error)
	GetAllEvents() ([]*model.Event, error)
	GetUpcomingEvents() ([]*model.Event, error)
	UpdateEvent(event *model.Event) error
	DeleteEvent(id int64) error
}

// mysqlEventRepository implements EventRepository for MySQL.
type mysqlEventRepository struct {
	DB *sql.DB
}

// NewMySQLEventRepository creates a new instance of mysqlEventRepository.
func NewMySQLEventRepository() EventRepository {
	return &mysqlEventRepository{DB: db.DB}
}

const eventColumns = `id, name, venue, city, country, date, time, description, ticket_link,
	cover_image, status, featured, created_at, updated_at`

// CreateEvent adds a new event to the database.
func (r *mysqlEventRepository) CreateEvent(event *model.Event) (int64, error) {
	query := `INSERT INTO events (name, venue, city, country, date, time, description,
		ticket_link, cover_image, status, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateEvent: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(event.Name, event.Venue, event.City, event.Country, event.Date,
		event.Time, event.Description, event.TicketLink, event.CoverImage, event.Status,
		event.Featured, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateEvent: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateEvent: %w", err)
	}
	return id, nil
}

// GetEventByID retrieves an event by its ID. Returns (nil, nil) when not found.
func (r *mysqlEventRepository) GetEventByID(id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	event, err := scanEvent(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan event by ID %d: %w", id, err)
	}
	return event, nil
}

// GetAllEvents retrieves every event, for the admin area.
func (r *mysqlEventRepository) GetAllEvents() ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC`
	return r.queryEvents(query)
}

// GetUpcomingEvents retrieves confirmed events that have not happened yet,
// for the public events page.
func (r *mysqlEventRepository) GetUpcomingEvents() ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = ? AND date >= CURDATE() ORDER BY date ASC`
	return r.queryEvents(query, model.EventConfirmed)
}

func (r *mysqlEventRepository) queryEvents(query string, args ...interface{}) ([]*model.Event, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in queryEvents: %w", err)
	}
	return events, nil
}

// UpdateEvent updates all editable fields of an event.
func (r *mysqlEventRepository) UpdateEvent(event *model.Event) error {
	query := `UPDATE events SET name = ?, venue = ?, city = ?, country = ?, date = ?,
		time = ?, description = ?, ticket_link = ?, cover_image = ?, status = ?,
		featured = ?, updated_at = ? WHERE id = ?`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for UpdateEvent: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.Name, event.Venue, event.City, event.Country, event.Date,
		event.Time, event.Description, event.TicketLink, event.CoverImage, event.Status,
		event.Featured, time.Now(), event.ID)
	if err != nil {
		return fmt.Errorf("failed to execute UpdateEvent for ID %d: %w", event.ID, err)
	}
	return nil
}

// DeleteEvent removes an event record.
func (r *mysqlEventRepository) DeleteEvent(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}

func scanEvent(row rowScanner) (*model.Event, error) {
	event := &model.Event{}
	var description sql.NullString
	err := row.Scan(&event.ID, &event.Name, &event.Venue, &event.City, &event.Country,
		&event.Date, &event.Time, &description, &event.TicketLink, &event.CoverImage,
		&event.Status, &event.Featured, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		event.Description = description.String
	}
	return event, nil
}
