package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReleaseType(t *testing.T) {
	for _, v := range []string{"SINGLE", "EP", "ALBUM", "REMIX", "BOOTLEG", "COLLAB"} {
		assert.True(t, ValidReleaseType(v), v)
	}
	assert.False(t, ValidReleaseType("single"))
	assert.False(t, ValidReleaseType(""))
	assert.False(t, ValidReleaseType("MIXTAPE"))
}

func TestValidEventStatus(t *testing.T) {
	for _, v := range []string{"CONFIRMED", "PENDING", "CANCELLED", "POSTPONED"} {
		assert.True(t, ValidEventStatus(v), v)
	}
	assert.False(t, ValidEventStatus("confirmed"))
	assert.False(t, ValidEventStatus("DONE"))
}

func TestValidContactType(t *testing.T) {
	for _, v := range []string{"GENERAL", "BOOKING", "COLLABORATION", "PRESS", "OTHER"} {
		assert.True(t, ValidContactType(v), v)
	}
	assert.False(t, ValidContactType("SPAM"))
}

func TestCategoryFromForm(t *testing.T) {
	assert.Equal(t, CategoryImage, CategoryFromForm("image"))
	assert.Equal(t, CategoryVideo, CategoryFromForm("video"))
	assert.Equal(t, CategoryAudio, CategoryFromForm("audio"))
	assert.Equal(t, CategoryDocument, CategoryFromForm("document"))
	// 未知分类按图片处理
	assert.Equal(t, CategoryImage, CategoryFromForm(""))
	assert.Equal(t, CategoryImage, CategoryFromForm("weird"))
}
