package feeds

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"release-sync/core/reconcile"
	"release-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestNew(t *testing.T) {
	src, err := New("/data/feeds", nil, 3, nil)
	require.NoError(t, err)
	assert.IsType(t, &Dir{}, src)
	assert.Equal(t, "/data/feeds", src.Location())

	_, err = New("s3://release-data/feeds", nil, 3, nil)
	assert.Error(t, err)

	src, err = New("s3://release-data/feeds/", new(mocks.Client), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3://release-data/feeds", src.Location())

	_, err = New("s3:///feeds", new(mocks.Client), 3, nil)
	assert.Error(t, err)
}

func TestDir_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.json"), []byte(`{"1.0.1": "2024-01-02"}`), 0o644))
	src := NewDir(dir)

	feed, err := src.Load(context.Background(), "demo")
	require.NoError(t, err)
	assert.True(t, feed.Has("1.0.1"))
	assert.Equal(t, filepath.Join(dir, "demo.json"), feed.Location())

	_, err = src.Load(context.Background(), "missing")
	assert.True(t, errors.Is(err, reconcile.ErrFeedNotFound))
}

func TestDir_Products(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"beta.json", "alpha.json", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.json"), 0o755))

	names, err := NewDir(dir).Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	_, err = NewDir(filepath.Join(dir, "missing")).Products(context.Background())
	assert.Error(t, err)
}

func TestBucket_Load(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "release-data", "feeds/demo.json", minio.GetObjectOptions{}).
			Return(body(`{"1.0.1": "2024-01-02"}`), nil).Once()

		feed, err := NewBucket(client, "release-data", "/feeds/", 3, nil).Load(context.Background(), "demo")
		require.NoError(t, err)
		assert.Equal(t, "s3://release-data/feeds/demo.json", feed.Location())
		assert.True(t, feed.Has("1.0.1"))
		client.AssertExpectations(t)
	})

	t.Run("NotFoundIsNotRetried", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "release-data", "demo.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"}).Once()

		_, err := NewBucket(client, "release-data", "", 3, nil).Load(context.Background(), "demo")
		assert.True(t, errors.Is(err, reconcile.ErrFeedNotFound))
		client.AssertNumberOfCalls(t, "GetObject", 1)
	})

	t.Run("TransientErrorIsRetried", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "release-data", "demo.json", mock.Anything).
			Return(nil, errors.New("connection reset")).Once()
		client.On("GetObject", mock.Anything, "release-data", "demo.json", mock.Anything).
			Return(body(`{"2.0": "2024-05-01"}`), nil).Once()

		b := NewBucket(client, "release-data", "", 3, nil)
		b.delay = 0
		feed, err := b.Load(context.Background(), "demo")
		require.NoError(t, err)
		assert.True(t, feed.Has("2.0"))
		client.AssertNumberOfCalls(t, "GetObject", 2)
	})

	t.Run("GivesUp", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "release-data", "demo.json", mock.Anything).
			Return(nil, errors.New("connection reset"))

		b := NewBucket(client, "release-data", "", 2, nil)
		b.delay = 0
		_, err := b.Load(context.Background(), "demo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.False(t, errors.Is(err, reconcile.ErrFeedNotFound))
		client.AssertNumberOfCalls(t, "GetObject", 2)
	})
}

func TestBucket_Products(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 4)
	ch <- minio.ObjectInfo{Key: "feeds/alpha.json"}
	ch <- minio.ObjectInfo{Key: "feeds/readme.txt"}
	ch <- minio.ObjectInfo{Key: "feeds/old/beta.json"}
	ch <- minio.ObjectInfo{Key: "feeds/gamma.json"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "release-data", minio.ListObjectsOptions{Prefix: "feeds/"}).
		Return((<-chan minio.ObjectInfo)(ch))

	names, err := NewBucket(client, "release-data", "feeds", 1, nil).Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma"}, names)
}
