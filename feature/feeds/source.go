package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"release-sync/core/reconcile"
	"release-sync/core/storage"

	"github.com/avast/retry-go"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Extension is the file extension of a feed document.
const Extension = ".json"

// BucketScheme prefixes feed locations stored in object storage.
const BucketScheme = "s3://"

// Source loads the observation feed of a product.
type Source interface {
	// Load returns the feed of product. It returns an error matching
	// reconcile.ErrFeedNotFound when the product has no feed.
	Load(ctx context.Context, product string) (*reconcile.Feed, error)
	// Location describes where feeds are read from.
	Location() string
	// Products lists the products that have a feed.
	Products(ctx context.Context) ([]string, error)
}

// New returns the source for location: an s3://bucket/prefix URL or a directory.
// client is only required for bucket locations.
func New(location string, client storage.Client, attempts uint, logger *zap.Logger) (Source, error) {
	if !strings.HasPrefix(location, BucketScheme) {
		return NewDir(location), nil
	}
	if client == nil {
		return nil, fmt.Errorf("storage client required for %s", location)
	}
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(location, BucketScheme), "/")
	if bucket == "" {
		return nil, fmt.Errorf("invalid feed location %q", location)
	}
	return NewBucket(client, bucket, prefix, attempts, logger), nil
}

// Dir reads <dir>/<product>.json files.
type Dir struct {
	dir string
}

// NewDir creates a directory source.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

// Location returns the feed directory.
func (d *Dir) Location() string {
	return d.dir
}

// Load reads and decodes the feed of product.
func (d *Dir) Load(ctx context.Context, product string) (*reconcile.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := filepath.Join(d.dir, product+Extension)
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", file, reconcile.ErrFeedNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", file, err)
	}
	return Decode(product, file, data)
}

// Products lists the stems of the .json files in the directory.
func (d *Dir) Products(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds in %s: %w", d.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	return names, nil
}

// Bucket reads <prefix>/<product>.json objects from a bucket.
type Bucket struct {
	client   storage.Client
	bucket   string
	prefix   string
	attempts uint
	delay    time.Duration
	logger   *zap.Logger
}

// NewBucket creates a bucket source. Transient read errors are retried up to attempts times.
func NewBucket(client storage.Client, bucket, prefix string, attempts uint, logger *zap.Logger) *Bucket {
	if attempts == 0 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bucket{
		client:   client,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		attempts: attempts,
		delay:    500 * time.Millisecond,
		logger:   logger,
	}
}

// Location returns the s3:// URL of the source.
func (b *Bucket) Location() string {
	if b.prefix == "" {
		return BucketScheme + b.bucket
	}
	return BucketScheme + b.bucket + "/" + b.prefix
}

func (b *Bucket) key(product string) string {
	return path.Join(b.prefix, product+Extension)
}

// Load downloads and decodes the feed of product.
func (b *Bucket) Load(ctx context.Context, product string) (*reconcile.Feed, error) {
	key := b.key(product)
	location := BucketScheme + b.bucket + "/" + key

	var data []byte
	err := retry.Do(
		func() error {
			var err error
			data, err = b.read(ctx, key)
			return err
		},
		retry.Attempts(b.attempts),
		retry.Delay(b.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && !storage.IsNotFound(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			b.logger.Warn("Retrying feed download",
				zap.String("location", location),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if storage.IsNotFound(err) {
		return nil, fmt.Errorf("%s: %w", location, reconcile.ErrFeedNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download feed %s: %w", location, err)
	}
	return Decode(product, location, data)
}

func (b *Bucket) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// Products lists the products that have a feed in the bucket.
func (b *Bucket) Products(ctx context.Context) ([]string, error) {
	prefix := b.prefix
	if prefix != "" {
		prefix += "/"
	}
	var names []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, Extension))
	}
	return names, nil
}
