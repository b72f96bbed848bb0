package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"peako/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 内存对象存储，记录所有Put/Delete调用
type fakeStore struct {
	objects   map[string][]byte
	putErr    error
	deleteErr bool
	putCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.putCalls++
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = data
	return f.PublicURL(key), nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) bool {
	if f.deleteErr {
		return false
	}
	if _, ok := f.objects[key]; !ok {
		return true
	}
	delete(f.objects, key)
	return true
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/peako/" + key
}

func TestIngestImageUploadsMainAndThumbnail(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store)

	data := testImage(t, 1200, 800)
	result := ingestor.Ingest(context.Background(), data, "Press Photo.png", "image/png", model.CategoryImage, "gallery")

	require.True(t, result.Success, result.Error)
	assert.NotEmpty(t, result.Key)
	assert.True(t, strings.HasPrefix(result.Key, "gallery/press-photo-"), result.Key)
	assert.Equal(t, store.PublicURL(result.Key), result.URL)
	assert.Equal(t, store.PublicURL(DeriveThumbnailKey(result.Key)), result.ThumbnailURL)

	// 主图和缩略图都进了存储
	assert.Len(t, store.objects, 2)
	assert.Contains(t, store.objects, result.Key)
	assert.Contains(t, store.objects, DeriveThumbnailKey(result.Key))
}

func TestIngestRawUploadForNonImage(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store)

	data := []byte("fake mp3 bytes")
	result := ingestor.Ingest(context.Background(), data, "demo.mp3", "audio/mpeg", model.CategoryAudio, "audio")

	require.True(t, result.Success, result.Error)
	assert.Empty(t, result.ThumbnailURL)
	assert.Len(t, store.objects, 1)
	// 非图片原样上传，不做转码
	assert.Equal(t, data, store.objects[result.Key])
}

func TestIngestValidationBeforeUpload(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store)

	// 超大文件：校验失败时不允许有任何存储调用
	big := make([]byte, maxImageSize+1)
	result := ingestor.Ingest(context.Background(), big, "huge.jpg", "image/jpeg", model.CategoryImage, "gallery")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "file size too large")
	assert.Zero(t, store.putCalls)

	// 类型不匹配同理
	result = ingestor.Ingest(context.Background(), []byte("x"), "a.pdf", "application/pdf", model.CategoryImage, "gallery")
	assert.False(t, result.Success)
	assert.Zero(t, store.putCalls)
}

func TestIngestUploadFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("connection refused")
	ingestor := NewIngestor(store)

	result := ingestor.Ingest(context.Background(), testImage(t, 100, 100), "a.png", "image/png", model.CategoryImage, "gallery")
	assert.False(t, result.Success)
	assert.Equal(t, "upload failed", result.Error)
}

func TestIngestCorruptImage(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store)

	result := ingestor.Ingest(context.Background(), []byte("not an image"), "a.png", "image/png", model.CategoryImage, "gallery")
	assert.False(t, result.Success)
	assert.Equal(t, "image processing failed", result.Error)
	assert.Zero(t, len(store.objects))
}

func TestRemoveDeletesThumbnailToo(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store)

	result := ingestor.Ingest(context.Background(), testImage(t, 500, 500), "pic.png", "image/png", model.CategoryImage, "gallery")
	require.True(t, result.Success)
	require.Len(t, store.objects, 2)

	ok := ingestor.Remove(context.Background(), result.Key, true)
	assert.True(t, ok)
	assert.Empty(t, store.objects)

	// 重复删除同一个键不报错
	assert.True(t, ingestor.Remove(context.Background(), result.Key, true))
}

func TestRemoveReportsMainObjectFailure(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = true
	ingestor := NewIngestor(store)

	assert.False(t, ingestor.Remove(context.Background(), "gallery/x.jpg", false))
}
