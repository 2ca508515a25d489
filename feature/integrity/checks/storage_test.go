package checks

import (
	"testing"
	"time"

	"mana-vault/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testBucket = "mana-vault"
	testObject = "index/card-index.sqlite"
)

func TestCheckStorage_Published(t *testing.T) {
	client := new(mocks.Client)
	modified := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("StatObject", mock.Anything, testBucket, testObject, mock.Anything).Return(minio.ObjectInfo{
		Key:          testObject,
		Size:         4096,
		LastModified: modified,
		UserMetadata: map[string]string{"Run-Id": "run-42"},
	}, nil)

	report, err := CheckStorage(t.Context(), client, testBucket, testObject)
	require.NoError(t, err)

	assert.Equal(t, "ok", report.Status)
	assert.True(t, report.BucketExists)
	assert.True(t, report.ObjectPresent)
	assert.Equal(t, int64(4096), report.Size)
	require.NotNil(t, report.LastModified)
	assert.True(t, modified.Equal(*report.LastModified))
	assert.Equal(t, "run-42", report.RunID)
	client.AssertExpectations(t)
}

func TestCheckStorage_MissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, testBucket).Return(false, nil)

	report, err := CheckStorage(t.Context(), client, testBucket, testObject)
	require.NoError(t, err)

	assert.Equal(t, "missing_bucket", report.Status)
	assert.False(t, report.BucketExists)
	client.AssertNotCalled(t, "StatObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckStorage_MissingObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("StatObject", mock.Anything, testBucket, testObject, mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", Message: "not found"})

	report, err := CheckStorage(t.Context(), client, testBucket, testObject)
	require.NoError(t, err)

	assert.Equal(t, "missing_object", report.Status)
	assert.True(t, report.BucketExists)
	assert.False(t, report.ObjectPresent)
}

func TestCheckStorage_Errors(t *testing.T) {
	t.Run("BucketExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, testBucket).Return(false, assert.AnError)

		_, err := CheckStorage(t.Context(), client, testBucket, testObject)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("StatObject", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
		client.On("StatObject", mock.Anything, testBucket, testObject, mock.Anything).
			Return(minio.ObjectInfo{}, assert.AnError)

		_, err := CheckStorage(t.Context(), client, testBucket, testObject)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
