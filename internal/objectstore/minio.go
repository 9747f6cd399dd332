package objectstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docsearch/internal/contextutil"
)

// MinioStore implements ObjectStore on a MinIO (or S3-compatible) server.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates a MinIO-backed object store.
func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &MinioStore{client: client}, nil
}

// EnsureBucket creates the bucket if it does not exist.
func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if exists {
		return nil
	}

	logger := contextutil.LoggerFromContext(ctx)
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		// A concurrent ingest may have created it between the two calls.
		exists, checkErr := s.client.BucketExists(ctx, bucket)
		if checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create bucket %q: %w", bucket, err)
	}
	logger.InfoContext(ctx, "created bucket", "bucket", bucket)
	return nil
}

// Put stores content under bucket/key and returns the storage path.
func (s *MinioStore) Put(ctx context.Context, bucket, key string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to put object %s/%s: %w", bucket, key, err)
	}
	return bucket + "/" + key, nil
}
