package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"peako/config"
	"peako/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// 上传后的资源视为不可变：内容变化时生成新的键，而不是原地覆盖，
// 因此可以放心设置一年的缓存。
const cacheControl = "public, max-age=31536000"

// Store 对象存储网关。上传返回公开URL，删除只返回是否成功，
// 传输层错误不会越过这一边界。
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) bool
	PublicURL(key string) string
}

// MinioStore 基于 MinIO / S3 兼容存储的 Store 实现
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore 创建并初始化 MinIO 客户端，确保存储桶存在。
// 配置缺失或连接失败时直接返回错误，由调用方决定是否终止进程。
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}

	logger.Info("正在连接对象存储",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.String("bucket", cfg.MinioBucket),
		logger.String("region", cfg.MinioRegion))

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 检查存储桶是否存在，不存在则创建
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
		logger.Info("成功创建存储桶", logger.String("bucket", cfg.MinioBucket))
	}

	logger.Info("对象存储客户端初始化成功")
	return &MinioStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}, nil
}

// Put 上传对象并返回公开URL
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return "", fmt.Errorf("上传对象失败 %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// Delete 删除对象。删除不存在的键不算失败，传输错误只记录日志并返回 false。
func (s *MinioStore) Delete(ctx context.Context, key string) bool {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		logger.Error("删除对象失败",
			logger.String("key", key),
			logger.ErrorField(err))
		return false
	}
	return true
}

// PublicURL 根据对象键拼出公开访问URL
func (s *MinioStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// Client 返回底层 MinIO 客户端，供运维命令使用。
func (s *MinioStore) Client() *minio.Client {
	return s.client
}

// Bucket 返回存储桶名称
func (s *MinioStore) Bucket() string {
	return s.bucket
}
