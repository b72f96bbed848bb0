package soundcloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hydrationPage = `<!DOCTYPE html>
<html>
<head><title>Test Track | Free Listening on SoundCloud</title></head>
<body>
<script>window.__sc_hydration = [{"hydratable":"anonymousId","data":"12345"},{"hydratable":"sound","data":{"id":987654321,"title":"Euphoria","description":"New hardstyle anthem","duration":260000,"artwork_url":"https://i1.sndcdn.com/artworks-abc123-large.jpg","permalink_url":"https://soundcloud.com/peako/euphoria","created_at":"2025-03-15T10:00:00Z","genre":"Hardstyle","tag_list":"hardstyle rawstyle","playback_count":15000,"user":{"username":"Peak'O","avatar_url":"https://i1.sndcdn.com/avatars-xyz-large.jpg"}}}];</script>
</body>
</html>`

const metaOnlyPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Song | Free Listening on SoundCloud</title>
<meta property="og:title" content="Fallback Song">
<meta property="og:description" content="A song without hydration data">
<meta property="og:image" content="https://i1.sndcdn.com/artworks-def456.jpg">
<meta property="og:url" content="https://soundcloud.com/peako/fallback-song">
</head>
<body></body>
</html>`

func TestExtractFromHydration(t *testing.T) {
	meta, ok := extractFromHydration(hydrationPage, "https://soundcloud.com/peako/euphoria")
	require.True(t, ok)

	assert.Equal(t, "Euphoria", meta.Title)
	assert.Equal(t, "Peak'O", meta.Artist)
	assert.Equal(t, "New hardstyle anthem", meta.Description)
	assert.Equal(t, "4:20", meta.Duration)
	assert.Equal(t, "https://i1.sndcdn.com/artworks-abc123-t500x500.jpg", meta.ArtworkURL)
	assert.Equal(t, "https://soundcloud.com/peako/euphoria", meta.PermalinkURL)
	assert.Equal(t, "Hardstyle", meta.Genre)
	assert.Equal(t, "hardstyle rawstyle", meta.TagList)
	assert.Equal(t, int64(15000), meta.PlaybackCount)
	assert.Equal(t, "987654321", meta.SoundcloudID)
	assert.Equal(t, 2025, meta.CreatedAt.Year())
}

func TestExtractFromHydrationFallsBackToAvatar(t *testing.T) {
	page := `<script>window.__sc_hydration = [{"hydratable":"sound","data":{"id":1,"title":"No Cover","duration":61000,"user":{"username":"Peak'O","avatar_url":"https://i1.sndcdn.com/avatars-xyz-large.jpg"}}}];</script>`

	meta, ok := extractFromHydration(page, "https://soundcloud.com/peako/no-cover")
	require.True(t, ok)
	assert.Equal(t, "https://i1.sndcdn.com/avatars-xyz-t500x500.jpg", meta.ArtworkURL)
	assert.Equal(t, "1:01", meta.Duration)
	// 页面没给流派时使用默认值
	assert.Equal(t, DefaultGenre, meta.Genre)
}

func TestExtractFromHydrationRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no hydration script", "<html><body>nothing here</body></html>"},
		{"malformed json", `<script>window.__sc_hydration = [{"hydratable":"sound","data":{broken];</script>`},
		{"no sound item", `<script>window.__sc_hydration = [{"hydratable":"user","data":{"id":5}}];</script>`},
		{"null sound data", `<script>window.__sc_hydration = [{"hydratable":"sound","data":null}];</script>`},
		{"empty sound data", `<script>window.__sc_hydration = [{"hydratable":"sound","data":{}}];</script>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := extractFromHydration(tt.html, "https://soundcloud.com/peako/x")
			assert.False(t, ok)
		})
	}
}

func TestExtractFromMetaTags(t *testing.T) {
	meta := extractFromMetaTags(metaOnlyPage, "https://soundcloud.com/peako/fallback-song")

	assert.Equal(t, "Fallback Song", meta.Title)
	assert.Equal(t, "A song without hydration data", meta.Description)
	assert.Equal(t, "https://soundcloud.com/peako/fallback-song", meta.PermalinkURL)
	assert.Equal(t, DefaultGenre, meta.Genre)
	// 降级路径拿不到时长
	assert.Equal(t, "", meta.Duration)
}

func TestExtractFromMetaTagsTitleFallback(t *testing.T) {
	page := `<html><head><title>Only Title | Free Listening on SoundCloud</title></head></html>`

	meta := extractFromMetaTags(page, "https://soundcloud.com/peako/only-title/123456")
	assert.Equal(t, "Only Title", meta.Title)
	assert.Equal(t, DefaultArtist, meta.Artist)
	assert.Equal(t, "123456", meta.SoundcloudID)
}

func TestExtractFromMetaTagsUpgradesArtwork(t *testing.T) {
	page := `<meta property="og:title" content="Art Test"><meta property="og:image" content="https://i1.sndcdn.com/artworks-abc.jpg">`
	meta := extractFromMetaTags(page, "https://soundcloud.com/peako/art")
	// sndcdn 域名不含 soundcloud.com，不做替换
	assert.Equal(t, "https://i1.sndcdn.com/artworks-abc.jpg", meta.ArtworkURL)

	page = `<meta property="og:title" content="Art Test"><meta property="og:image" content="https://soundcloud.com/images/artworks-abc.jpg">`
	meta = extractFromMetaTags(page, "https://soundcloud.com/peako/art")
	assert.Equal(t, "https://soundcloud.com/images/artworks-abc-t500x500.jpg", meta.ArtworkURL)
}

func TestExtractRejectsNonSoundcloudURL(t *testing.T) {
	extractor := NewExtractor()

	for _, rawURL := range []string{
		"https://example.com/track",
		"https://soundcloud.com.evil.com/track",
		"not a url at all://",
	} {
		_, err := extractor.Extract(context.Background(), rawURL)
		assert.ErrorIs(t, err, ErrInvalidURL, rawURL)
	}
}

func TestFetchPageStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	extractor := NewExtractor()
	_, err := extractor.fetchPage(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestFetchPageSendsBrowserHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, hydrationPage)
	}))
	defer srv.Close()

	extractor := NewExtractor()
	html, err := extractor.fetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "__sc_hydration")
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{260000, "4:20"},
		{61000, "1:01"},
		{5000, "0:05"},
		{600000, "10:00"},
		{999, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.ms))
	}
}

func TestUpgradeArtwork(t *testing.T) {
	assert.Equal(t, "", upgradeArtwork(""))
	assert.Equal(t,
		"https://i1.sndcdn.com/artworks-abc-t500x500.jpg",
		upgradeArtwork("https://i1.sndcdn.com/artworks-abc-large.jpg"))
	// 没有 -large 后缀时原样返回
	assert.Equal(t,
		"https://i1.sndcdn.com/artworks-abc-original.jpg",
		upgradeArtwork("https://i1.sndcdn.com/artworks-abc-original.jpg"))
}

func TestIsSoundcloudURL(t *testing.T) {
	assert.True(t, isSoundcloudURL("https://soundcloud.com/peako/track"))
	assert.True(t, isSoundcloudURL("https://on.soundcloud.com/abc"))
	assert.True(t, isSoundcloudURL("https://SOUNDCLOUD.com/peako/track"))
	assert.False(t, isSoundcloudURL("https://example.com/track"))
	assert.False(t, isSoundcloudURL("https://notsoundcloud.com/track"))
}
