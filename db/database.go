package db

import (
	"database/sql"
	"fmt"
	"log"

	"peako/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createUsersTable(); err != nil {
		return err
	}
	if err := createTracksTable(); err != nil {
		return err
	}
	if err := createEventsTable(); err != nil {
		return err
	}
	if err := createContactMessagesTable(); err != nil {
		return err
	}

	log.Println("Database initialization completed.")
	return nil
}

func createUsersTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func createTracksTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS tracks (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		artist VARCHAR(255) NOT NULL DEFAULT 'Peak''O',
		featuring VARCHAR(255) NOT NULL DEFAULT '',
		release_date DATETIME NOT NULL,
		release_type VARCHAR(16) NOT NULL DEFAULT 'SINGLE',
		genre VARCHAR(100) NOT NULL DEFAULT 'Hardstyle',
		duration VARCHAR(16) NOT NULL DEFAULT '',
		cover_art VARCHAR(512) NOT NULL DEFAULT '',
		audio_file VARCHAR(512) NOT NULL DEFAULT '',
		soundcloud_url VARCHAR(512) NOT NULL DEFAULT '',
		soundcloud_id VARCHAR(64),
		spotify_url VARCHAR(512) NOT NULL DEFAULT '',
		apple_music_url VARCHAR(512) NOT NULL DEFAULT '',
		youtube_url VARCHAR(512) NOT NULL DEFAULT '',
		beatport_url VARCHAR(512) NOT NULL DEFAULT '',
		deezer_url VARCHAR(512) NOT NULL DEFAULT '',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_soundcloud_id (soundcloud_id)
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create tracks table: %w", err)
	}
	return nil
}

func createEventsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL,
		country VARCHAR(100) NOT NULL,
		date DATETIME NOT NULL,
		time VARCHAR(16) NOT NULL DEFAULT '',
		description TEXT,
		ticket_link VARCHAR(512) NOT NULL DEFAULT '',
		cover_image VARCHAR(512) NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL DEFAULT 'CONFIRMED',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	return nil
}

func createContactMessagesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS contact_messages (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reference VARCHAR(36) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		subject VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		type VARCHAR(16) NOT NULL DEFAULT 'GENERAL',
		event_date DATETIME,
		event_location VARCHAR(255) NOT NULL DEFAULT '',
		budget VARCHAR(100) NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL DEFAULT 'UNREAD',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create contact_messages table: %w", err)
	}
	return nil
}
