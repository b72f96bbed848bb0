package media

import (
	"crypto/rand"
	"encoding/hex"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// randomToken 生成随机后缀，避免并发上传时的键冲突
func randomToken() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// SafeBaseName 清洗文件名：去掉扩展名，非法字符换成连字符，转小写。
// 清洗的同时也挡掉了路径穿越字符。
func SafeBaseName(originalName string) string {
	base := strings.TrimSuffix(path.Base(originalName), path.Ext(originalName))
	base = unsafeChars.ReplaceAllString(base, "-")
	base = strings.ToLower(base)
	if base == "" {
		base = "file"
	}
	return base
}

// NewObjectKey 生成对象存储键：{folder}/{cleanName}-{毫秒时间戳}-{随机串}.{ext}
func NewObjectKey(originalName, folder string) string {
	ext := strings.ToLower(path.Ext(originalName))
	if ext == "" {
		ext = ".dat"
	}
	name := SafeBaseName(originalName) + "-" +
		strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + randomToken() + ext
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// DeriveThumbnailKey 由主图的键推导缩略图的键：
// 扩展名换成 -thumb.jpg，放到同目录的 thumbnails 子路径下。
func DeriveThumbnailKey(mainKey string) string {
	dir := path.Dir(mainKey)
	base := path.Base(mainKey)
	base = strings.TrimSuffix(base, path.Ext(base)) + "-thumb.jpg"
	if dir == "." {
		return "thumbnails/" + base
	}
	return dir + "/thumbnails/" + base
}
