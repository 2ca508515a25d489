package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mana-vault/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the published index artifact.
type StorageReport struct {
	Status        string     `json:"status" yaml:"status"` // "ok", "missing_bucket", "missing_object"
	Bucket        string     `json:"bucket" yaml:"bucket"`
	BucketExists  bool       `json:"bucketExists" yaml:"bucket_exists"`
	Object        string     `json:"object" yaml:"object"`
	ObjectPresent bool       `json:"objectPresent" yaml:"object_present"`
	Size          int64      `json:"size,omitempty" yaml:"size,omitempty"`
	LastModified  *time.Time `json:"lastModified,omitempty" yaml:"last_modified,omitempty"`
	RunID         string     `json:"runId,omitempty" yaml:"run_id,omitempty"`
}

// CheckStorage verifies the publication bucket and reads the metadata of the
// published artifact.
func CheckStorage(ctx context.Context, client storage.Client, bucket, object string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Object: object}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		report.Status = "missing_bucket"
		return report, nil
	}

	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			report.Status = "missing_object"
			return report, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}

	report.Status = "ok"
	report.ObjectPresent = true
	report.Size = info.Size
	modified := info.LastModified
	report.LastModified = &modified
	for k, v := range info.UserMetadata {
		if strings.EqualFold(k, "run-id") || strings.EqualFold(k, "X-Amz-Meta-Run-Id") {
			report.RunID = v
		}
	}
	return report, nil
}
