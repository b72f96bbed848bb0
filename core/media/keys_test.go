package media

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Cool Photo.jpg", "my-cool-photo"},
		{"Straßenfest 2025!.png", "stra-enfest-2025-"},
		{"already-safe_name.webp", "already-safe_name"},
		{"../../etc/passwd", "passwd"},
		{".jpg", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeBaseName(tt.in), tt.in)
	}
}

func TestNewObjectKeyLayout(t *testing.T) {
	key := NewObjectKey("Press Photo.JPG", "gallery")

	assert.True(t, strings.HasPrefix(key, "gallery/press-photo-"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	// {folder}/{clean}-{timestamp}-{token}.{ext}
	layout := regexp.MustCompile(`^gallery/press-photo-\d+-[0-9a-f]{12}\.jpg$`)
	assert.Regexp(t, layout, key)
}

func TestNewObjectKeyWithoutFolder(t *testing.T) {
	key := NewObjectKey("track.mp3", "")
	assert.NotContains(t, key, "/")
	assert.True(t, strings.HasSuffix(key, ".mp3"), key)
}

func TestNewObjectKeyMissingExtension(t *testing.T) {
	key := NewObjectKey("noext", "docs")
	assert.True(t, strings.HasSuffix(key, ".dat"), key)
}

func TestNewObjectKeyUnique(t *testing.T) {
	a := NewObjectKey("same.jpg", "gallery")
	b := NewObjectKey("same.jpg", "gallery")
	assert.NotEqual(t, a, b)
}

func TestDeriveThumbnailKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gallery/press-photo-123-abc.jpg", "gallery/thumbnails/press-photo-123-abc-thumb.jpg"},
		{"press-photo-123-abc.png", "thumbnails/press-photo-123-abc-thumb.jpg"},
		{"a/b/c.webp", "a/b/thumbnails/c-thumb.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveThumbnailKey(tt.in))
	}
}
