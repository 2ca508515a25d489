package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mana-vault/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Publisher uploads a consistent copy of the index store to object storage.
type Publisher struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	object string
	logger *zap.Logger
}

// NewPublisher creates a publisher for the index store db.
func NewPublisher(db *gorm.DB, client storage.Client, bucket, object string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{db: db, client: client, bucket: bucket, object: object, logger: logger}
}

// Object returns the object name artifacts are published under.
func (p *Publisher) Object() string {
	return p.object
}

// Publish snapshots the index store with VACUUM INTO and uploads the copy.
// The snapshot reads one committed state, so a rebuild running concurrently is never
// half-published.
func (p *Publisher) Publish(ctx context.Context, runID string) (minio.UploadInfo, error) {
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("card-index-%s.sqlite", uuid.NewString()))
	defer os.Remove(tmp)

	if err := p.db.WithContext(ctx).Exec("VACUUM INTO ?", tmp).Error; err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to snapshot index: %w", err)
	}

	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to check bucket %s: %w", p.bucket, err)
	}
	if !exists {
		p.logger.Info("Creating publication bucket", zap.String("bucket", p.bucket))
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return minio.UploadInfo{}, fmt.Errorf("failed to create bucket %s: %w", p.bucket, err)
		}
	}

	f, err := os.Open(tmp)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	info, err := p.client.PutObject(ctx, p.bucket, p.object, f, stat.Size(), minio.PutObjectOptions{
		ContentType:  "application/vnd.sqlite3",
		UserMetadata: map[string]string{"run-id": runID},
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload index: %w", err)
	}

	p.logger.Info("Index published",
		zap.String("bucket", p.bucket),
		zap.String("object", p.object),
		zap.Int64("size", stat.Size()),
	)
	return info, nil
}
