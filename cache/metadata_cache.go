package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"peako/core/soundcloud"
	"peako/db"

	"github.com/redis/go-redis/v9"
)

// metadataTTL 提取结果的缓存时长。SoundCloud 页面内容变化不频繁，
// 30分钟内重复分析同一链接直接走缓存。
const metadataTTL = 30 * time.Minute

// metadataKey 根据轨道URL生成缓存键
func metadataKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return fmt.Sprintf("soundcloud:meta:%s", hex.EncodeToString(sum[:]))
}

// GetTrackMetadata 从缓存读取提取结果，未命中时返回 (nil, nil)。
func GetTrackMetadata(ctx context.Context, url string) (*soundcloud.TrackMetadata, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	data, err := db.RedisClient.Get(ctx, metadataKey(url)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached metadata: %w", err)
	}

	var meta soundcloud.TrackMetadata
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached metadata: %w", err)
	}
	return &meta, nil
}

// SetTrackMetadata 将提取结果写入缓存
func SetTrackMetadata(ctx context.Context, url string, meta *soundcloud.TrackMetadata) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := db.RedisClient.Set(ctx, metadataKey(url), data, metadataTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache metadata: %w", err)
	}
	return nil
}
