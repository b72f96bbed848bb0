package media

import (
	"testing"

	"peako/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadAcceptsAllowedTypes(t *testing.T) {
	tests := []struct {
		category    model.MediaCategory
		contentType string
		size        int64
	}{
		{model.CategoryImage, "image/jpeg", 5 << 20},
		{model.CategoryImage, "image/webp", 1 << 20},
		{model.CategoryAudio, "audio/mpeg", 40 << 20},
		{model.CategoryVideo, "video/mp4", 49 << 20},
		{model.CategoryDocument, "application/pdf", 1 << 20},
	}

	for _, tt := range tests {
		assert.NoError(t, ValidateUpload(tt.category, tt.contentType, tt.size))
	}
}

func TestValidateUploadSizeLimits(t *testing.T) {
	// 图片超过10MB
	err := ValidateUpload(model.CategoryImage, "image/jpeg", 10<<20+1)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "size", verr.Constraint)

	// 正好10MB的图片放行
	assert.NoError(t, ValidateUpload(model.CategoryImage, "image/jpeg", 10<<20))

	// 其他分类上限50MB
	err = ValidateUpload(model.CategoryAudio, "audio/mpeg", 50<<20+1)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "size", verr.Constraint)
	assert.NoError(t, ValidateUpload(model.CategoryAudio, "audio/mpeg", 50<<20))
}

func TestValidateUploadRejectsWrongType(t *testing.T) {
	var verr *ValidationError

	err := ValidateUpload(model.CategoryImage, "application/pdf", 1024)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Constraint)

	err = ValidateUpload(model.CategoryAudio, "image/png", 1024)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Constraint)

	err = ValidateUpload(model.MediaCategory("UNKNOWN"), "image/png", 1024)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Constraint)
}
