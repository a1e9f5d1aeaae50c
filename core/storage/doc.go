// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so observation feeds can be read from AWS S3 or a
// self-hosted MinIO instance instead of a local directory.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the feed bucket.
//   - GetObject: Retrieves a feed document as a stream.
//   - ListObjects: Lists feed documents under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "release-data")
package storage
