package soundcloud

import (
	"errors"
	"fmt"
	"time"
)

// 站点默认值：曲目没有带出艺人或流派信息时使用
const (
	DefaultArtist = "Peak'O"
	DefaultGenre  = "Hardstyle"
)

// TrackMetadata 从 SoundCloud 页面提取出的曲目元数据。
// 每次提取都重新生成，不做持久化，由调用方决定怎么存。
type TrackMetadata struct {
	Title         string    `json:"title"`
	Artist        string    `json:"artist"`
	Description   string    `json:"description"`
	Duration      string    `json:"duration"` // M:SS，结构化数据缺失时为空
	ArtworkURL    string    `json:"artworkUrl"`
	PermalinkURL  string    `json:"permalinkUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	Genre         string    `json:"genre"`
	TagList       string    `json:"tagList"`
	PlaybackCount int64     `json:"playbackCount"`
	SoundcloudID  string    `json:"soundcloudId"`
}

// ErrInvalidURL URL 不是 SoundCloud 链接
var ErrInvalidURL = errors.New("invalid URL: must be a soundcloud.com link")

// ErrExtractionFailed 两种提取策略都没有拿到可用数据
var ErrExtractionFailed = errors.New("failed to extract metadata from page")

// FetchError 抓取页面时收到非 2xx 响应
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("soundcloud page returned HTTP %d", e.Status)
}
