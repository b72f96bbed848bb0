package media

import (
	"bytes"
	"fmt"

	"peako/logger"

	"github.com/disintegration/imaging"

	// 注册webp解码器，上传允许 image/webp
	_ "golang.org/x/image/webp"
)

const (
	thumbnailSize    = 300
	thumbnailQuality = 80
)

// OptimizeOptions 图片优化参数
type OptimizeOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
	Thumbnail bool
}

// DefaultOptimizeOptions 返回默认的优化参数
func DefaultOptimizeOptions() OptimizeOptions {
	return OptimizeOptions{
		MaxWidth:  1920,
		MaxHeight: 1080,
		Quality:   85,
		Thumbnail: true,
	}
}

// OptimizeResult 优化输出。Thumbnail 生成失败时为 nil，不影响主图。
type OptimizeResult struct {
	Optimized []byte
	Thumbnail []byte
}

// Optimize 压缩图片：等比缩放到最大尺寸以内（小图不放大），统一转成JPEG。
// 需要缩略图时额外生成 300x300 的居中裁剪版本。
func Optimize(data []byte, opts OptimizeOptions) (*OptimizeResult, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Fit 只缩小不放大
	resized := imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)

	var optimized bytes.Buffer
	if err := imaging.Encode(&optimized, resized, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	result := &OptimizeResult{Optimized: optimized.Bytes()}

	if opts.Thumbnail {
		// 缩略图失败不阻塞主图
		thumb := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos)
		var thumbBuf bytes.Buffer
		if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
			logger.Warn("生成缩略图失败", logger.ErrorField(err))
		} else {
			result.Thumbnail = thumbBuf.Bytes()
		}
	}

	return result, nil
}
