package storage_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"mana-vault/core/storage"
	"mana-vault/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ storage.Client = (*mocks.Client)(nil)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"Plain Endpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "mana-vault"}},
		{"HTTP Scheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"HTTPS Scheme", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "us-east-1"}},
		{"Custom Timeout", storage.Config{Endpoint: "localhost:9000", TimeoutSeconds: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	client, err := storage.NewClient(storage.Config{Endpoint: "bad endpoint:9000/path"})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, storage.Config{}.Timeout())
	assert.Equal(t, 5*time.Second, storage.Config{TimeoutSeconds: 5}.Timeout())
}

func TestMockClient_PutObject(t *testing.T) {
	client := new(mocks.Client)
	ctx := context.Background()
	body := bytes.NewReader([]byte("index"))

	client.On("PutObject", ctx, "mana-vault", "index/card-index.sqlite", body, int64(5), mock.Anything).
		Return(minio.UploadInfo{Key: "index/card-index.sqlite", Size: 5}, nil)

	info, err := client.PutObject(ctx, "mana-vault", "index/card-index.sqlite", body, 5, minio.PutObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	client.AssertExpectations(t)
}
