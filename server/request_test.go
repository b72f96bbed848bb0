package server

import (
	"testing"

	"peako/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackRequestDefaults(t *testing.T) {
	req := &trackRequest{
		Title:       "Euphoria",
		ReleaseDate: "2025-03-15",
	}

	track, errMsg := req.toTrack()
	require.Empty(t, errMsg)

	// 未填写的字段使用站点默认值
	assert.Equal(t, "Peak'O", track.Artist)
	assert.Equal(t, "Hardstyle", track.Genre)
	assert.Equal(t, model.ReleaseSingle, track.ReleaseType)
	assert.True(t, track.Visible)
	assert.False(t, track.Featured)
	assert.Equal(t, 2025, track.ReleaseDate.Year())
}

func TestTrackRequestValidation(t *testing.T) {
	tests := []struct {
		name string
		req  trackRequest
		want string
	}{
		{"missing title", trackRequest{ReleaseDate: "2025-01-01"}, "Title and release date are required"},
		{"missing date", trackRequest{Title: "X"}, "Title and release date are required"},
		{"bad release type", trackRequest{Title: "X", ReleaseDate: "2025-01-01", ReleaseType: "MIXTAPE"}, "Invalid release type"},
		{"bad date", trackRequest{Title: "X", ReleaseDate: "15.03.2025"}, "Invalid release date format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := tt.req.toTrack()
			assert.Equal(t, tt.want, errMsg)
		})
	}
}

func TestTrackRequestAcceptsRFC3339Date(t *testing.T) {
	req := &trackRequest{Title: "X", ReleaseDate: "2025-03-15T00:00:00Z"}
	track, errMsg := req.toTrack()
	require.Empty(t, errMsg)
	assert.Equal(t, 2025, track.ReleaseDate.Year())
}

func TestEventRequestValidation(t *testing.T) {
	valid := eventRequest{
		Name:    "Defqon.1",
		Venue:   "Evenemententerrein",
		City:    "Biddinghuizen",
		Country: "Netherlands",
		Date:    "2026-06-26",
	}

	event, errMsg := valid.toEvent()
	require.Empty(t, errMsg)
	assert.Equal(t, model.EventConfirmed, event.Status)
	assert.False(t, event.Featured)

	missing := valid
	missing.Venue = ""
	_, errMsg = missing.toEvent()
	assert.Equal(t, "Name, venue, city, country and date are required", errMsg)

	badStatus := valid
	badStatus.Status = "MAYBE"
	_, errMsg = badStatus.toEvent()
	assert.Equal(t, "Invalid event status", errMsg)
}

func TestContactRequestValidation(t *testing.T) {
	valid := contactRequest{
		Name:    "Promoter",
		Email:   "promoter@example.com",
		Subject: "Booking request",
		Message: "We would like to book you for our festival.",
		Type:    "BOOKING",
	}
	assert.Empty(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(*contactRequest)
		want   string
	}{
		{"short name", func(r *contactRequest) { r.Name = "A" }, "Name must be at least 2 characters"},
		{"bad email", func(r *contactRequest) { r.Email = "not-an-email" }, "Invalid email address"},
		{"short subject", func(r *contactRequest) { r.Subject = "Hi" }, "Subject must be at least 3 characters"},
		{"short message", func(r *contactRequest) { r.Message = "too short" }, "Message must be at least 10 characters"},
		{"bad type", func(r *contactRequest) { r.Type = "SPAM" }, "Invalid contact type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Equal(t, tt.want, req.validate())
		})
	}
}
