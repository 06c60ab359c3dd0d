// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the receiving sources can read manifest and pack
// JSON documents and archive finalized receipts. It works with both AWS S3 and
// self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the target bucket (see EnsureBucket).
//   - PutObject: uploads content (archived receipts).
//   - GetObject: retrieves content as a stream (manifests, pack contents).
//   - ListObjects: lists objects under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	created, err := storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
