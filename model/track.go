package model

import "time"

// ReleaseType 发行类型
type ReleaseType string

const (
	ReleaseSingle  ReleaseType = "SINGLE"
	ReleaseEP      ReleaseType = "EP"
	ReleaseAlbum   ReleaseType = "ALBUM"
	ReleaseRemix   ReleaseType = "REMIX"
	ReleaseBootleg ReleaseType = "BOOTLEG"
	ReleaseCollab  ReleaseType = "COLLAB"
)

// ValidReleaseType reports whether t is one of the known release types.
func ValidReleaseType(t string) bool {
	switch ReleaseType(t) {
	case ReleaseSingle, ReleaseEP, ReleaseAlbum, ReleaseRemix, ReleaseBootleg, ReleaseCollab:
		return true
	}
	return false
}

// Track represents a released track shown on the music page.
type Track struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Artist        string      `json:"artist"`
	Featuring     string      `json:"featuring,omitempty"`
	ReleaseDate   time.Time   `json:"releaseDate"`
	ReleaseType   ReleaseType `json:"releaseType"`
	Genre         string      `json:"genre"`
	Duration      string      `json:"duration,omitempty"` // MM:SS, may be empty
	CoverArt      string      `json:"coverArt,omitempty"`
	AudioFile     string      `json:"audioFile,omitempty"`
	SoundcloudURL string      `json:"soundcloudUrl,omitempty"`
	SoundcloudID  string      `json:"soundcloudId,omitempty"`
	SpotifyURL    string      `json:"spotifyUrl,omitempty"`
	AppleMusicURL string      `json:"appleMusicUrl,omitempty"`
	YoutubeURL    string      `json:"youtubeUrl,omitempty"`
	BeatportURL   string      `json:"beatportUrl,omitempty"`
	DeezerURL     string      `json:"deezerUrl,omitempty"`
	Featured      bool        `json:"featured"`
	Visible       bool        `json:"visible"`
	Order         int         `json:"order"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
