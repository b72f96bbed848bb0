package soundcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"peako/logger"
)

// hydrationPattern 匹配服务端渲染页面里内嵌的水合数据脚本。
// 页面结构不稳定，这里只假设这一个脚本标签存在，不做完整的HTML解析。
var hydrationPattern = regexp.MustCompile(`(?s)<script[^>]*>window\.__sc_hydration\s*=\s*(\[.*?\]);</script>`)

var (
	titleTagPattern   = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	titleSuffixClean  = regexp.MustCompile(`(?i)\s*\|\s*Free Listening on SoundCloud.*$`)
	numericIDPattern  = regexp.MustCompile(`"id":(\d+)`)
	trailingIDPattern = regexp.MustCompile(`/(\d+)(?:\?|$)`)
)

// Extractor 抓取 SoundCloud 曲目页面并提取元数据
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor 创建提取器
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Extract 提取指定曲目页面的元数据。
// 优先解析内嵌的水合JSON，失败时静默降级到meta标签抓取，
// 只有两种策略都拿不到标题才算提取失败。
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*TrackMetadata, error) {
	if !isSoundcloudURL(rawURL) {
		return nil, ErrInvalidURL
	}

	html, err := e.fetchPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	// 结构化数据优先
	if meta, ok := extractFromHydration(html, rawURL); ok {
		logger.Info("从水合数据提取元数据成功",
			logger.String("title", meta.Title),
			logger.String("url", rawURL))
		return meta, nil
	}

	// 降级：meta标签抓取
	logger.Warn("页面中未找到可用的水合数据，降级到meta标签提取", logger.String("url", rawURL))
	meta := extractFromMetaTags(html, rawURL)
	if meta.Title == "" {
		return nil, ErrExtractionFailed
	}

	logger.Info("从meta标签提取元数据成功",
		logger.String("title", meta.Title),
		logger.String("url", rawURL))
	return meta, nil
}

// isSoundcloudURL 校验URL属于soundcloud.com域名
func isSoundcloudURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == "soundcloud.com" || strings.HasSuffix(host, ".soundcloud.com")
}

// fetchPage 抓取页面HTML。SoundCloud 会拒绝非浏览器客户端，
// 所以带上浏览器的请求头。
func (e *Extractor) fetchPage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求页面失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取页面失败: %w", err)
	}
	return string(body), nil
}

// hydrationItem 水合数组中的一个元素
type hydrationItem struct {
	Hydratable string          `json:"hydratable"`
	Data       json.RawMessage `json:"data"`
}

// soundData 水合数据中的曲目信息
type soundData struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Duration      int64  `json:"duration"` // 毫秒
	ArtworkURL    string `json:"artwork_url"`
	PermalinkURL  string `json:"permalink_url"`
	CreatedAt     string `json:"created_at"`
	Genre         string `json:"genre"`
	TagList       string `json:"tag_list"`
	PlaybackCount int64  `json:"playback_count"`
	User          struct {
		Username  string `json:"username"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user"`
}

// extractFromHydration 尝试从水合JSON中提取元数据。
// JSON格式错误或没有sound元素时返回 (nil, false)，不报错，交给降级路径。
func extractFromHydration(html, rawURL string) (*TrackMetadata, bool) {
	match := hydrationPattern.FindStringSubmatch(html)
	if match == nil {
		return nil, false
	}

	var items []hydrationItem
	if err := json.Unmarshal([]byte(match[1]), &items); err != nil {
		return nil, false
	}

	for _, item := range items {
		if item.Hydratable != "sound" || emptyJSONObject(item.Data) {
			continue
		}

		var track soundData
		if err := json.Unmarshal(item.Data, &track); err != nil {
			continue
		}

		duration := ""
		if track.Duration > 0 {
			duration = formatDuration(track.Duration)
		}

		// 优先使用曲目封面，升级为高清版本；没有封面时退回用户头像
		artworkURL := upgradeArtwork(track.ArtworkURL)
		if artworkURL == "" && track.User.AvatarURL != "" {
			artworkURL = upgradeArtwork(track.User.AvatarURL)
		}

		artist := track.User.Username
		if artist == "" {
			artist = DefaultArtist
		}

		genre := track.Genre
		if genre == "" {
			genre = DefaultGenre
		}

		permalink := track.PermalinkURL
		if permalink == "" {
			permalink = rawURL
		}

		soundcloudID := ""
		if track.ID > 0 {
			soundcloudID = strconv.FormatInt(track.ID, 10)
		}

		createdAt := time.Now()
		if track.CreatedAt != "" {
			if parsed, err := time.Parse(time.RFC3339, track.CreatedAt); err == nil {
				createdAt = parsed
			}
		}

		return &TrackMetadata{
			Title:         track.Title,
			Artist:        artist,
			Description:   track.Description,
			Duration:      duration,
			ArtworkURL:    artworkURL,
			PermalinkURL:  permalink,
			CreatedAt:     createdAt,
			Genre:         genre,
			TagList:       track.TagList,
			PlaybackCount: track.PlaybackCount,
			SoundcloudID:  soundcloudID,
		}, true
	}

	return nil, false
}

// extractFromMetaTags 降级策略：从og/twitter meta标签和<title>提取。
// 时长没有结构化数据就拿不到，留空。
func extractFromMetaTags(html, rawURL string) *TrackMetadata {
	title := metaContent(html, "og:title")
	if title == "" {
		title = metaContent(html, "twitter:title")
	}
	if title == "" {
		if match := titleTagPattern.FindStringSubmatch(html); match != nil {
			title = strings.TrimSpace(titleSuffixClean.ReplaceAllString(match[1], ""))
		}
	}

	description := metaContent(html, "og:description")
	if description == "" {
		description = metaContent(html, "description")
	}

	artist := metaContent(html, "og:site_name")
	if artist == "" {
		artist = DefaultArtist
	}

	// id 从页面脚本或URL尾部数字里找
	soundcloudID := ""
	if match := numericIDPattern.FindStringSubmatch(html); match != nil {
		soundcloudID = match[1]
	} else if match := trailingIDPattern.FindStringSubmatch(rawURL); match != nil {
		soundcloudID = match[1]
	}

	artworkURL := metaContent(html, "og:image")
	if artworkURL == "" {
		artworkURL = metaContent(html, "twitter:image")
	}
	// meta标签里的封面通常不是高清版本，能升级就升级
	if artworkURL != "" && strings.Contains(artworkURL, "soundcloud.com") &&
		!strings.Contains(artworkURL, "-t500x500") && !strings.Contains(artworkURL, "-original") {
		artworkURL = strings.Replace(artworkURL, ".jpg", "-t500x500.jpg", 1)
	}

	permalink := metaContent(html, "og:url")
	if permalink == "" {
		permalink = rawURL
	}

	return &TrackMetadata{
		Title:         title,
		Artist:        artist,
		Description:   description,
		Duration:      "",
		ArtworkURL:    artworkURL,
		PermalinkURL:  permalink,
		CreatedAt:     time.Now(),
		Genre:         DefaultGenre,
		TagList:       "",
		PlaybackCount: 0,
		SoundcloudID:  soundcloudID,
	}
}

// metaContent 提取指定property/name的meta标签内容
func metaContent(html, property string) string {
	pattern := fmt.Sprintf(`(?i)<meta[^>]+(?:property|name)=["']%s["'][^>]+content=["']([^"']+)["']`, regexp.QuoteMeta(property))
	if match := regexp.MustCompile(pattern).FindStringSubmatch(html); match != nil {
		return match[1]
	}
	return ""
}

// formatDuration 毫秒转 M:SS，秒数补零
func formatDuration(milliseconds int64) string {
	seconds := milliseconds / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// upgradeArtwork 将封面URL中的 -large 替换为高清的 -t500x500。
// 纯字符串替换，不校验替换后的URL是否真实存在。
func upgradeArtwork(artworkURL string) string {
	if artworkURL == "" {
		return ""
	}
	return strings.Replace(artworkURL, "-large", "-t500x500", 1)
}

// emptyJSONObject 判断data字段是否为空（null、{}或缺失）
func emptyJSONObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}
