// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the index publisher
// and the storage integrity check need. Both AWS S3 and self-hosted MinIO work.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket on first publication.
//   - PutObject: Uploads a built index artifact.
//   - StatObject: Reads size and modification time of the published artifact.
//
// core/storage/mocks holds a testify mock of Client.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
