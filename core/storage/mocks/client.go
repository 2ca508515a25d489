// Package mocks provides a testify mock of storage.Client.
package mocks

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client records calls made by the publisher and the storage check.
type Client struct {
	mock.Mock
}

// BucketExists returns the configured (bool, error).
func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	ret := m.Called(ctx, bucketName)
	return ret.Bool(0), ret.Error(1)
}

// MakeBucket returns the configured error.
func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

// PutObject returns the configured (minio.UploadInfo, error).
func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	ret := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return ret.Get(0).(minio.UploadInfo), ret.Error(1)
}

// StatObject returns the configured (minio.ObjectInfo, error).
func (m *Client) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	ret := m.Called(ctx, bucketName, objectName, opts)
	return ret.Get(0).(minio.ObjectInfo), ret.Error(1)
}
