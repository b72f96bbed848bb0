package media

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage 生成指定尺寸的PNG测试图
func testImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestOptimizeResizesLargeImage(t *testing.T) {
	data := testImage(t, 4000, 3000)

	result, err := Optimize(data, DefaultOptimizeOptions())
	require.NoError(t, err)
	require.NotEmpty(t, result.Optimized)

	decoded, err := imaging.Decode(bytes.NewReader(result.Optimized))
	require.NoError(t, err)

	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 1920)
	assert.LessOrEqual(t, bounds.Dy(), 1080)
	// 等比缩放：4000x3000 受高度限制，缩到 1440x1080
	assert.Equal(t, 1440, bounds.Dx())
	assert.Equal(t, 1080, bounds.Dy())
}

func TestOptimizeDoesNotUpscale(t *testing.T) {
	data := testImage(t, 640, 480)

	result, err := Optimize(data, DefaultOptimizeOptions())
	require.NoError(t, err)

	decoded, err := imaging.Decode(bytes.NewReader(result.Optimized))
	require.NoError(t, err)
	assert.Equal(t, 640, decoded.Bounds().Dx())
	assert.Equal(t, 480, decoded.Bounds().Dy())
}

func TestOptimizeThumbnailDimensions(t *testing.T) {
	data := testImage(t, 1600, 900)

	result, err := Optimize(data, DefaultOptimizeOptions())
	require.NoError(t, err)
	require.NotEmpty(t, result.Thumbnail)

	thumb, err := imaging.Decode(bytes.NewReader(result.Thumbnail))
	require.NoError(t, err)
	// 缩略图固定为 300x300 的居中裁剪
	assert.Equal(t, 300, thumb.Bounds().Dx())
	assert.Equal(t, 300, thumb.Bounds().Dy())
}

func TestOptimizeWithoutThumbnail(t *testing.T) {
	data := testImage(t, 800, 600)

	opts := DefaultOptimizeOptions()
	opts.Thumbnail = false

	result, err := Optimize(data, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Optimized)
	assert.Nil(t, result.Thumbnail)
}

func TestOptimizeRejectsNonImage(t *testing.T) {
	_, err := Optimize([]byte("definitely not an image"), DefaultOptimizeOptions())
	assert.Error(t, err)
}
