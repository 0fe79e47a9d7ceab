package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AttachmentStore is a blob writer/reader addressed by stored name. Files are
// written once by the relay and later served over the uploads endpoint.
type AttachmentStore interface {
	Write(ctx context.Context, name, contentType string, data []byte) error
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

// MinioStore implements AttachmentStore on a single MinIO bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	slog.Info("connected to MinIO", "endpoint", endpoint, "bucket", bucket)
	return &MinioStore{client: client, bucket: bucket}, nil
}

func (m *MinioStore) Write(ctx context.Context, name, contentType string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload attachment %s: %w", name, err)
	}
	return nil
}

func (m *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	object, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open attachment %s: %w", name, err)
	}
	// GetObject is lazy; Stat forces the request so a missing object
	// surfaces here instead of on first read.
	info, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, 0, fmt.Errorf("failed to stat attachment %s: %w", name, err)
	}
	return object, info.Size, nil
}
