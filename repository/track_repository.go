package repository

import (
	"database/sql"
	"fmt"
	"time"

	"peako/db"
	"peako/model"
)

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	CreateTrack(track *model.Track) (int64, error)
	GetTrackByID(id int64) (*model.Track, error)
	GetAllTracks(includeHidden bool) ([]*model.Track, error)
	UpdateTrack(track *model.Track) error
	DeleteTrack(id int64) error
	NextDisplayOrder() (int, error)
}

// mysqlTrackRepository implements TrackRepository for MySQL.
type mysqlTrackRepository struct {
	DB *sql.DB
}

// NewMySQLTrackRepository creates a new instance of mysqlTrackRepository.
func NewMySQLTrackRepository() TrackRepository {
	return &mysqlTrackRepository{DB: db.DB}
}

const trackColumns = `id, title, artist, featuring, release_date, release_type, genre, duration,
	cover_art, audio_file, soundcloud_url, soundcloud_id, spotify_url, apple_music_url,
	youtube_url, beatport_url, deezer_url, featured, visible, display_order, created_at, updated_at`

// CreateTrack adds a new track to the database.
func (r *mysqlTrackRepository) CreateTrack(track *model.Track) (int64, error) {
	query := `INSERT INTO tracks (title, artist, featuring, release_date, release_type, genre, duration,
		cover_art, audio_file, soundcloud_url, soundcloud_id, spotify_url, apple_music_url,
		youtube_url, beatport_url, deezer_url, featured, visible, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateTrack: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(track.Title, track.Artist, track.Featuring, track.ReleaseDate,
		track.ReleaseType, track.Genre, track.Duration, track.CoverArt, track.AudioFile,
		track.SoundcloudURL, nullableString(track.SoundcloudID), track.SpotifyURL,
		track.AppleMusicURL, track.YoutubeURL, track.BeatportURL, track.DeezerURL,
		track.Featured, track.Visible, track.Order, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateTrack: %w", err)
	}
	return id, nil
}

// GetTrackByID retrieves a track by its ID. Returns (nil, nil) when not found.
func (r *mysqlTrackRepository) GetTrackByID(id int64) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	track, err := scanTrack(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan track by ID %d: %w", id, err)
	}
	return track, nil
}

// GetAllTracks retrieves tracks ordered for the music page:
// featured first, then manual order, then newest release.
func (r *mysqlTrackRepository) GetAllTracks(includeHidden bool) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks`
	if !includeHidden {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY featured DESC, display_order ASC, release_date DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetAllTracks: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllTracks: %w", err)
	}
	return tracks, nil
}

// UpdateTrack updates all editable fields of a track.
func (r *mysqlTrackRepository) UpdateTrack(track *model.Track) error {
	query := `UPDATE tracks SET title = ?, artist = ?, featuring = ?, release_date = ?,
		release_type = ?, genre = ?, duration = ?, cover_art = ?, audio_file = ?,
		soundcloud_url = ?, soundcloud_id = ?, spotify_url = ?, apple_music_url = ?,
		youtube_url = ?, beatport_url = ?, deezer_url = ?, featured = ?, visible = ?,
		display_order = ?, updated_at = ? WHERE id = ?`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for UpdateTrack: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(track.Title, track.Artist, track.Featuring, track.ReleaseDate,
		track.ReleaseType, track.Genre, track.Duration, track.CoverArt, track.AudioFile,
		track.SoundcloudURL, nullableString(track.SoundcloudID), track.SpotifyURL,
		track.AppleMusicURL, track.YoutubeURL, track.BeatportURL, track.DeezerURL,
		track.Featured, track.Visible, track.Order, time.Now(), track.ID)
	if err != nil {
		return fmt.Errorf("failed to execute UpdateTrack for ID %d: %w", track.ID, err)
	}
	return nil
}

// DeleteTrack removes a track record. Cover art and audio files are owned by
// the media library and are not touched here.
func (r *mysqlTrackRepository) DeleteTrack(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM tracks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete track %d: %w", id, err)
	}
	return nil
}

// NextDisplayOrder returns max(display_order)+1 for appending new tracks.
func (r *mysqlTrackRepository) NextDisplayOrder() (int, error) {
	var maxOrder sql.NullInt64
	if err := r.DB.QueryRow(`SELECT MAX(display_order) FROM tracks`).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("failed to query max display order: %w", err)
	}
	if !maxOrder.Valid {
		return 1, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

// rowScanner 兼容 *sql.Row 和 *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(row rowScanner) (*model.Track, error) {
	track := &model.Track{}
	var soundcloudID sql.NullString
	err := row.Scan(&track.ID, &track.Title, &track.Artist, &track.Featuring,
		&track.ReleaseDate, &track.ReleaseType, &track.Genre, &track.Duration,
		&track.CoverArt, &track.AudioFile, &track.SoundcloudURL, &soundcloudID,
		&track.SpotifyURL, &track.AppleMusicURL, &track.YoutubeURL, &track.BeatportURL,
		&track.DeezerURL, &track.Featured, &track.Visible, &track.Order,
		&track.CreatedAt, &track.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if soundcloudID.Valid {
		track.SoundcloudID = soundcloudID.String
	}
	return track, nil
}

// nullableString 空串转NULL，配合唯一索引使用
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
